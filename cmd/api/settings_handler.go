package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RuntimeSettings holds AI settings that can change while the server runs
type RuntimeSettings struct {
	mu            sync.RWMutex
	ollamaBaseURL string
	ollamaModel   string
}

func NewRuntimeSettings(ollamaBaseURL, ollamaModel string) *RuntimeSettings {
	return &RuntimeSettings{ollamaBaseURL: ollamaBaseURL, ollamaModel: ollamaModel}
}

// OllamaBaseURL is passed to the completion service as a getter.
func (s *RuntimeSettings) OllamaBaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ollamaBaseURL
}

func (s *RuntimeSettings) OllamaModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ollamaModel
}

// SetOllama replaces the base URL and, when model is non-empty, the model.
func (s *RuntimeSettings) SetOllama(baseURL, model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ollamaBaseURL = strings.TrimRight(baseURL, "/")
	if model != "" {
		s.ollamaModel = model
	}
}

// UpdateOllamaSettingsRequest represents the request body for updating Ollama settings
type UpdateOllamaSettingsRequest struct {
	OllamaBaseURL string `json:"ollama_base_url" binding:"required,url"`
	OllamaModel   string `json:"ollama_model,omitempty"`
}

type SettingsHandler struct {
	settings *RuntimeSettings
	client   *http.Client
	logger   *zap.Logger
}

func NewSettingsHandler(settings *RuntimeSettings, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		client:   &http.Client{Timeout: 5 * time.Second},
		logger:   logger.Named("settings"),
	}
}

// GetOllamaSettings returns current Ollama configuration
// GET /api/settings/ollama
func (h *SettingsHandler) GetOllamaSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ollama_base_url": h.settings.OllamaBaseURL(),
		"ollama_model":    h.settings.OllamaModel(),
	})
}

// UpdateOllamaSettings updates Ollama configuration at runtime
// PUT /api/settings/ollama
func (h *SettingsHandler) UpdateOllamaSettings(c *gin.Context) {
	var req UpdateOllamaSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.settings.SetOllama(req.OllamaBaseURL, req.OllamaModel)
	h.logger.Info("ollama settings updated",
		zap.String("base_url", h.settings.OllamaBaseURL()),
		zap.String("model", h.settings.OllamaModel()),
	)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Ollama settings updated successfully",
		"ollama_base_url": h.settings.OllamaBaseURL(),
		"ollama_model":    h.settings.OllamaModel(),
	})
}

// CheckOllamaConnection probes the Ollama server's /api/tags endpoint
// POST /api/settings/ollama/test
func (h *SettingsHandler) CheckOllamaConnection(c *gin.Context) {
	var req struct {
		OllamaBaseURL string `json:"ollama_base_url"`
	}
	// An empty body means "test the current setting".
	_ = c.ShouldBindJSON(&req)
	baseURL := strings.TrimRight(req.OllamaBaseURL, "/")
	if baseURL == "" {
		baseURL = h.settings.OllamaBaseURL()
	}
	if baseURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"connected": false, "error": "no Ollama base URL configured"})
		return
	}

	probe, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, baseURL+"/api/tags", nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"connected": false, "error": err.Error()})
		return
	}
	resp, err := h.client.Do(probe)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"connected": false,
			"error":     err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"connected":   false,
			"status_code": resp.StatusCode,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"connected":       true,
		"ollama_base_url": baseURL,
	})
}
