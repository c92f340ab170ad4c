package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Provider.Mode == "" {
		cfg.Provider.Mode = "reducer"
	}
	if cfg.Provider.TimeoutSeconds == 0 {
		cfg.Provider.TimeoutSeconds = 30
	}
	if cfg.Gesture.MinScale == 0 {
		cfg.Gesture.MinScale = 0.5
	}
	if cfg.Gesture.MaxScale == 0 {
		cfg.Gesture.MaxScale = 2.0
	}
	if cfg.Gesture.Threshold == 0 {
		cfg.Gesture.Threshold = 0.15
	}
	if cfg.Gesture.DebounceMs == 0 {
		cfg.Gesture.DebounceMs = 100
	}
	if cfg.Gesture.CooldownMs == 0 {
		cfg.Gesture.CooldownMs = 300
	}
	if cfg.Animation.LargeThreshold == 0 {
		cfg.Animation.LargeThreshold = 3000
	}
	if cfg.Animation.ViewportMargin == 0 {
		cfg.Animation.ViewportMargin = 200
	}
	if cfg.Animation.OutAddedRate == 0 {
		cfg.Animation.OutAddedRate = 1.0
	}
	if cfg.Animation.OutKeptRate == 0 {
		cfg.Animation.OutKeptRate = 0.7
	}
	if cfg.Animation.InAddedRate == 0 {
		cfg.Animation.InAddedRate = 0.5
	}
	// InKeptRate defaults to 0: kept words do not animate when detailing.
	if cfg.Documents.Extensions == nil {
		cfg.Documents.Extensions = []string{".txt", ".md", ".rst", ".pdf", ".docx", ".rtf", ".odt"}
	}
	if len(cfg.Documents.Directories) > 0 && cfg.Documents.Recursive == nil {
		t := true
		cfg.Documents.Recursive = &t
	}
}
