package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pinchlab/yoyak/internal/config"
	"github.com/pinchlab/yoyak/internal/diff"
	"github.com/pinchlab/yoyak/internal/docstore"
	"github.com/pinchlab/yoyak/internal/models"
	"github.com/pinchlab/yoyak/internal/tfidf"
)

type structureRequest struct {
	Text string `json:"text"`
}

type structureResponse struct {
	Words          []models.Word   `json:"words"`
	ParagraphCount int             `json:"paragraph_count"`
	SentenceCount  int             `json:"sentence_count"`
	Keywords       []tfidf.Keyword `json:"keywords"`
}

// handleStructure runs the full scoring pipeline on one text: structure,
// TF-IDF, then priority. The response carries every word with its scores.
func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	var req structureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		s.respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	st := s.structurer.Structure(req.Text)
	scores := s.scorer.Score(st)
	scores.Annotate(st.Words)
	s.calc.Score(st.Words)

	s.logger.Debug("structure request",
		zap.Int("words", len(st.Words)),
		zap.Int("paragraphs", st.ParagraphCount))
	s.respondJSON(w, http.StatusOK, structureResponse{
		Words:          st.Words,
		ParagraphCount: st.ParagraphCount,
		SentenceCount:  st.SentenceCount,
		Keywords:       scores.TopPercent(0.1),
	})
}

type diffResponse struct {
	Diff      *models.TransitionDiff `json:"diff"`
	Projected *models.ProjectedDiff  `json:"projected"`
}

// handleDiff computes the word-level transition diff between two texts and
// its projection onto the rendered token lists.
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req models.DiffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var d *models.TransitionDiff
	if req.Detailed {
		d = s.differ.DiffDetailed(req.FromText, req.ToText)
	} else {
		d = s.differ.Diff(req.FromText, req.ToText)
	}
	projected := diff.ProjectDiff(d, diff.Tokenize(req.FromText), diff.Tokenize(req.ToText))

	s.logger.Debug("diff request",
		zap.Int("kept", len(d.Kept)),
		zap.Int("removed", len(d.Removed)),
		zap.Int("added", len(d.Added)),
		zap.Int("morphed", len(d.Morphed)))
	s.respondJSON(w, http.StatusOK, diffResponse{Diff: d, Projected: projected})
}

func (s *Server) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	var input models.DocumentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	doc, err := s.store.Add(input)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents": s.store.List(),
	})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.store.Get(id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}
	s.respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "document not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleGetLevel serves one detail variant of a document, computing and
// caching it on first request.
func (s *Server) handleGetLevel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil || !models.ValidLevel(level) {
		s.respondError(w, http.StatusBadRequest, "level must be 0-3")
		return
	}
	lv, err := s.store.Level(r.Context(), id, level)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "document not found")
			return
		}
		s.logger.Error("level fetch failed", zap.String("id", id), zap.Int("level", level), zap.Error(err))
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, lv)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusConfigResponse echoes the tuning a client needs to mirror server
// behavior (gesture thresholds and animation rates).
type statusConfigResponse struct {
	ProviderMode   string  `json:"provider_mode"`
	GestureMin     float64 `json:"gesture_min_scale"`
	GestureMax     float64 `json:"gesture_max_scale"`
	GestureThresh  float64 `json:"gesture_threshold"`
	LargeThreshold int     `json:"animation_large_threshold"`
	ViewportMargin float64 `json:"animation_viewport_margin"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.store.Stats()
	resp := map[string]interface{}{
		"documents":      stats.Documents,
		"cached_levels":  stats.CachedLevels,
		"cache_hit_rate": stats.CacheHitRate,
		"provider":       s.provider.Name(),
	}
	if s.config != nil {
		resp["config"] = statusConfigResponse{
			ProviderMode:   s.config.Provider.Mode,
			GestureMin:     s.config.Gesture.MinScale,
			GestureMax:     s.config.Gesture.MaxScale,
			GestureThresh:  s.config.Gesture.Threshold,
			LargeThreshold: s.config.Animation.LargeThreshold,
			ViewportMargin: s.config.Animation.ViewportMargin,
		}
	}
	if s.watch != nil {
		resp["directories"] = s.watch.Directories()
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDirectoriesList(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, http.StatusNotImplemented, "directory ingestion not enabled")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"directories": s.watch.Directories()})
}

type directoryAddRequest struct {
	Path string `json:"path"`
	Sync *bool  `json:"sync,omitempty"`
}

func (s *Server) handleDirectoriesAdd(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, http.StatusNotImplemented, "directory ingestion not enabled")
		return
	}
	var req directoryAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	abs, err := filepath.Abs(req.Path)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid path")
		return
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			s.respondError(w, http.StatusNotFound, "directory not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !info.IsDir() {
		s.respondError(w, http.StatusBadRequest, "path is not a directory")
		return
	}
	syncExisting := true
	if req.Sync != nil {
		syncExisting = *req.Sync
	}
	if err := s.watch.AddDirectory(abs, syncExisting); err != nil {
		s.logger.Error("add directory failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.persistDirectories()
	s.respondJSON(w, http.StatusCreated, map[string]string{"path": abs, "status": "added"})
}

func (s *Server) handleDirectoriesRemove(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, http.StatusNotImplemented, "directory ingestion not enabled")
		return
	}
	path := r.URL.Query().Get("path")
	if path == "" {
		var body struct {
			Path string `json:"path"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.Path != "" {
			path = body.Path
		}
	}
	if path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required (query or body)")
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid path")
		return
	}
	if err := s.watch.RemoveDirectory(abs); err != nil {
		s.logger.Error("remove directory failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.persistDirectories()
	s.respondJSON(w, http.StatusOK, map[string]string{"path": abs, "status": "removed"})
}

// persistDirectories saves the current watch roots back to the config file
// so they survive a restart.
func (s *Server) persistDirectories() {
	if s.configPath == "" || s.config == nil {
		return
	}
	s.configMu.Lock()
	s.config.Documents.Directories = s.watch.Directories()
	err := config.Save(s.configPath, s.config)
	s.configMu.Unlock()
	if err != nil {
		s.logger.Warn("failed to persist directories", zap.Error(err))
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
