package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/nmoreyra/docsort/internal/config"
	"github.com/nmoreyra/docsort/internal/core/domain"
	"github.com/nmoreyra/docsort/internal/core/metadata"
	"github.com/nmoreyra/docsort/internal/core/ports"
	"github.com/nmoreyra/docsort/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg        config.Config
	ingest     ports.DocumentIngestor
	docs       ports.DocumentReader
	classifier ports.Classifier
	metrics    *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	ingest ports.DocumentIngestor,
	docs ports.DocumentReader,
	classifier ports.Classifier,
) *Router {
	return &Router{
		cfg:        cfg,
		ingest:     ingest,
		docs:       docs,
		classifier: classifier,
	}
}

// WithMetrics attaches the Prometheus collectors; nil metrics means the
// router serves without instrumentation (tests mostly).
func (rt *Router) WithMetrics(m *metrics.HTTPServerMetrics) *Router {
	rt.metrics = m
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.getDocumentByID)
	mux.HandleFunc("/v1/classify", rt.classifyText)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	if rt.cfg.APIMaxConcurrent > 0 {
		wait := time.Duration(rt.cfg.APIBackpressureWaitMs) * time.Millisecond
		handler = backpressureMiddleware(handler, rt.cfg.APIMaxConcurrent, wait)
	}
	if rt.cfg.APIRateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	}
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	doc, err := rt.ingest.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	doc, err := rt.docs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// classifyText classifies raw text synchronously without persisting
// anything. It exists for dry runs and for callers that extract text
// themselves.
func (rt *Router) classifyText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Text     string `json:"text"`
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	decision := rt.classifier.Classify(domain.ClassificationInput{
		Text:     req.Text,
		Filename: req.Filename,
	})
	meta := metadata.Extract(req.Text)

	if rt.metrics != nil {
		rt.metrics.RecordDecision(serviceName, string(decision.Type), decision.Confidence)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"decision": decision,
		"metadata": meta,
	})
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
