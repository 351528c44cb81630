// Package httpadapter exposes the REST surface of the service.
package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/plainbrief/plainbrief/internal/core/scoring"
	"github.com/plainbrief/plainbrief/internal/core/usecase"
	"github.com/plainbrief/plainbrief/internal/export"
	"github.com/plainbrief/plainbrief/internal/observability/metrics"
)

const serviceName = "plainbrief-api"

type Router struct {
	simplifyUC *usecase.SimplifyUseCase
	dashboard  *usecase.DashboardUseCase
	posts      *usecase.PostUseCase
	scorer     *scoring.Scorer
	exporter   *export.Service
	metrics    *metrics.HTTPServerMetrics
	traffic    *TrafficControl
}

func NewRouter(
	simplifyUC *usecase.SimplifyUseCase,
	dashboard *usecase.DashboardUseCase,
	posts *usecase.PostUseCase,
	scorer *scoring.Scorer,
	exporter *export.Service,
	httpMetrics *metrics.HTTPServerMetrics,
	traffic *TrafficControl,
) *Router {
	rt := &Router{
		simplifyUC: simplifyUC,
		dashboard:  dashboard,
		posts:      posts,
		scorer:     scorer,
		exporter:   exporter,
		metrics:    httpMetrics,
		traffic:    traffic,
	}
	if rt.metrics != nil {
		simplifyUC.OnPublishFailure(func() {
			rt.metrics.RecordPublishFailure(serviceName)
		})
	}
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	mux.HandleFunc("/api/simplify", rt.simplifyText)
	mux.HandleFunc("/api/simplify-file", rt.simplifyFile)
	mux.HandleFunc("/api/analyze-complexity", rt.analyzeComplexity)
	mux.HandleFunc("/api/briefs/", rt.getBrief)

	mux.HandleFunc("/api/history", rt.historyCollection)
	mux.HandleFunc("/api/history/export", rt.exportHistory)
	mux.HandleFunc("/api/history/", rt.historyItem)

	mux.HandleFunc("/api/saved", rt.savedCollection)
	mux.HandleFunc("/api/saved/", rt.savedItem)

	mux.HandleFunc("/api/settings", rt.settings)

	mux.HandleFunc("/create-post", rt.createPost)
	mux.HandleFunc("/get-posts", rt.getPosts)
	mux.HandleFunc("/uploads/", rt.getPostImage)

	var handler http.Handler = mux
	handler = corsMiddleware(handler)
	if rt.traffic != nil {
		handler = rt.traffic.Middleware(handler)
	}
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, mapErrorToHTTPStatus(err), err.Error())
}

func outcomeForStatus(status int) string {
	if status < 400 {
		return "ok"
	}
	if status < 500 {
		return "client_error"
	}
	return "server_error"
}
