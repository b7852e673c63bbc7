package handler

import (
	"net/http"

	"hindsight/internal/api/response"
	"hindsight/internal/strategy"
)

// StrategyInfo describes one registered strategy.
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StrategiesHandler lists the registered strategies.
type StrategiesHandler struct {
	registry *strategy.Registry
}

// NewStrategiesHandler creates a new strategies handler.
func NewStrategiesHandler(registry *strategy.Registry) *StrategiesHandler {
	return &StrategiesHandler{registry: registry}
}

// List returns all registered strategies sorted by name.
func (h *StrategiesHandler) List(w http.ResponseWriter, r *http.Request) {
	sources := h.registry.GetAll()
	infos := make([]StrategyInfo, 0, len(sources))
	for _, s := range sources {
		infos = append(infos, StrategyInfo{
			Name:        s.Name(),
			Description: s.Description(),
		})
	}
	response.JSON(w, http.StatusOK, map[string]any{"strategies": infos})
}
