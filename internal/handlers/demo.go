package handlers

import (
	"net/http"
	"strconv"

	"github.com/greenstrikas/platform/internal/demo"
	pkghttp "github.com/greenstrikas/platform/pkg/http"
)

const (
	defaultProjectCount     = 25
	defaultTransactionCount = 50
	maxListCount            = 200
)

// DemoHandler serves the fabricated dashboard content: projects, ledger
// transactions, advisory insights and platform metrics.
type DemoHandler struct {
	generator *demo.Generator
}

// NewDemoHandler creates a new DemoHandler.
func NewDemoHandler(generator *demo.Generator) *DemoHandler {
	return &DemoHandler{generator: generator}
}

// ListProjects returns a batch of mock investment projects
func (h *DemoHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	count := parseCount(r, defaultProjectCount)
	pkghttp.WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"projects": h.generator.Projects(count),
	})
}

// ListTransactions returns a batch of fabricated ledger transactions
func (h *DemoHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	count := parseCount(r, defaultTransactionCount)
	pkghttp.WriteJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"transactions": h.generator.Transactions(count),
	})
}

// ListInsights returns the canned advisory insights
func (h *DemoHandler) ListInsights(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"insights": h.generator.Insights(),
	})
}

// ListMetrics returns the headline platform metrics
func (h *DemoHandler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"metrics": h.generator.Metrics(),
	})
}

func parseCount(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("count")
	if raw == "" {
		return fallback
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 1 || count > maxListCount {
		return fallback
	}
	return count
}
