package entity

// ModelInfo describes one loaded model pipeline
type ModelInfo struct {
	Name   string `json:"name"`
	Task   string `json:"task"`
	Status string `json:"status"`
}

// ModelCatalog is the read-only description of every pipeline the service
// loaded at startup. It is assembled once during wiring and shared by the
// health and model-info endpoints.
type ModelCatalog struct {
	Service string
	Version string
	Models  map[string]ModelInfo
}

// StatusMap flattens the catalog into per-model status flags for /health
func (c ModelCatalog) StatusMap() map[string]string {
	status := make(map[string]string, len(c.Models))
	for key, m := range c.Models {
		status[key] = m.Status
	}
	return status
}

// Loaded reports whether every model in the catalog is loaded
func (c ModelCatalog) Loaded() bool {
	for _, m := range c.Models {
		if m.Status != "loaded" {
			return false
		}
	}
	return len(c.Models) > 0
}
