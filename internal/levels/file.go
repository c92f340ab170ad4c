package levels

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pinchlab/yoyak/internal/models"
	"github.com/pinchlab/yoyak/internal/textstruct"
)

// FileProvider serves precomputed level variants from a directory. Files
// are named "<hash>.level<N>.txt" where <hash> is Hash(sourceText). Level 0
// always returns the normalized source, so only levels 1-3 need files.
type FileProvider struct {
	dir        string
	structurer *textstruct.Structurer
}

// NewFileProvider creates a provider reading precomputed files from dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir, structurer: textstruct.NewStructurer()}
}

// Name identifies the provider in level metadata.
func (p *FileProvider) Name() string { return "file" }

// LevelPath returns the expected file path for a source hash and level.
func (p *FileProvider) LevelPath(hash string, level int) string {
	return filepath.Join(p.dir, fmt.Sprintf("%s.level%d.txt", hash, level))
}

// Fetch reads the precomputed variant for level. A missing file is an
// error; the caller decides whether to fall back to another provider.
func (p *FileProvider) Fetch(ctx context.Context, level int, sourceText string) (*models.TextLevel, error) {
	if !models.ValidLevel(level) {
		return nil, fmt.Errorf("invalid level %d", level)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if level == 0 {
		st := p.structurer.Structure(sourceText)
		return &models.TextLevel{
			Level:   0,
			Content: st.Text,
			Metadata: models.LevelMetadata{
				CompressionRate: 1.0,
				WordCount:       len(st.Words),
				SentenceCount:   st.SentenceCount,
				Provider:        p.Name(),
			},
		}, nil
	}

	path := p.LevelPath(Hash(sourceText), level)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %d file: %w", level, err)
	}
	st := p.structurer.Structure(string(content))
	meta := models.LevelMetadata{
		WordCount:     len(st.Words),
		SentenceCount: st.SentenceCount,
		Provider:      p.Name(),
	}
	if srcWords := len(p.structurer.Structure(sourceText).Words); srcWords > 0 {
		meta.CompressionRate = float64(len(st.Words)) / float64(srcWords)
	}
	return &models.TextLevel{Level: level, Content: st.Text, Metadata: meta}, nil
}
