package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/rental-analysis/internal/analysis"
	"github.com/iwvelando/rental-analysis/internal/config"
	"github.com/iwvelando/rental-analysis/internal/forecast"
	"github.com/iwvelando/rental-analysis/internal/metrics"
	"github.com/iwvelando/rental-analysis/internal/optimizer"
	"github.com/iwvelando/rental-analysis/internal/tracing"
	"github.com/iwvelando/rental-analysis/pkg/constants"
	"github.com/iwvelando/rental-analysis/pkg/optimization"
	"github.com/iwvelando/rental-analysis/pkg/output"
	"github.com/iwvelando/rental-analysis/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultScenarioName names the scenario written by the config export.
const DefaultScenarioName = "Base"

// Options configures the API handler.
type Options struct {
	// MaxBodySize limits request bodies in bytes.
	MaxBodySize int64
	Version     string
	// Rates serves /api/rate; nil disables the endpoint.
	Rates forecast.RateSource
	// Limiter, when set, applies per-client rate limiting to /api routes.
	Limiter *RateLimiter
	// Now supplies the current time; the purchase year of every analysis
	// is taken from it.
	Now func() time.Time
}

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	rates       forecast.RateSource
	now         func() time.Time
}

// NewHandler constructs the HTTP handler that serves the analysis API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: opts.MaxBodySize,
		version:     trimmedVersion,
		rates:       opts.Rates,
		now:         opts.Now,
	}

	api := func(endpoint string, fn http.HandlerFunc) http.Handler {
		wrapped := instrument(endpoint, fn)
		if opts.Limiter != nil {
			wrapped = RateLimitMiddleware(logger, opts.Limiter, wrapped)
		}
		return wrapped
	}

	mux := http.NewServeMux()

	// Full analysis of one property
	mux.Handle("/api/analysis", api("/api/analysis", h.handleAnalysis))

	// Config serialization endpoint for downloads
	mux.Handle("/api/analysis/export", api("/api/analysis/export", h.handleConfigExport))

	// Current market interest rate
	mux.Handle("/api/rate", api("/api/rate", h.handleRate))

	mux.Handle("/api/version", api("/api/version", h.handleVersion))

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// instrument wraps an endpoint with a server span and request metrics.
func instrument(endpoint string, fn http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracing.Tracer().Start(r.Context(), endpoint, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		fn(rec, r.WithContext(ctx))

		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.Int("http.status_code", rec.status),
		)
		if rec.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rec.status))
		}
		metrics.Requests.WithLabelValues(endpoint, strconv.Itoa(rec.status)).Inc()
	})
}

type analysisRequest struct {
	Property    *analysis.PropertyData     `json:"property"`
	Assumptions config.AssumptionOverrides `json:"assumptions"`
	Expand      bool                       `json:"expand"`
	Optimize    []config.OptimizerConfig   `json:"optimize"`
}

type tierSummary struct {
	CashOnCash  output.Tier `json:"cashOnCash"`
	Year1Return output.Tier `json:"year1Return"`
}

type analysisResponse struct {
	Results  analysis.Results      `json:"results"`
	Tiers    tierSummary           `json:"tiers"`
	Yearly   []analysis.YearlyRow  `json:"yearly"`
	Display  []output.DisplayRow   `json:"display"`
	Chart    []analysis.ChartPoint `json:"chart"`
	Warnings []string              `json:"warnings,omitempty"`
	// Optimizations echoes the requested optimize directives, solved.
	Optimizations []optimization.Summary `json:"optimizations,omitempty"`
	Duration      string                 `json:"duration"`
}

func (h *handler) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAnalysis"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var req analysisRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}
	if req.Property == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing property", op)
		return
	}

	property := *req.Property
	if err := validation.CheckLoanTermRange(property.LoanTerm); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	assumptions := req.Assumptions.Apply(analysis.DefaultAssumptions())
	projection := analysis.Project(property, assumptions, h.now().Year())
	if !projection.Results.Finite() {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, "analysis produced non-finite results", op)
		return
	}

	summaries, err := optimizer.NewRunner(h.logger).Run("Property", property, assumptions, req.Optimize)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	elapsed := time.Since(start)
	metrics.AnalysisDuration.Observe(elapsed.Seconds())
	metrics.Analyses.WithLabelValues("api").Inc()

	response := analysisResponse{
		Results: projection.Results,
		Tiers: tierSummary{
			CashOnCash:  output.CashOnCashTier(projection.Results.CashOnCashReturn),
			Year1Return: output.Year1ReturnTier(projection.Results.Year1Return),
		},
		Yearly:        projection.Yearly,
		Display:       output.DisplayRows(projection.Yearly, req.Expand),
		Chart:         projection.Chart,
		Warnings:      config.PropertyWarnings("Property", property),
		Optimizations: summaries,
		Duration:      elapsed.String(),
	}

	h.logger.Info("analysis computed",
		zap.String("op", op),
		zap.Float64("purchasePrice", property.PurchasePrice),
		zap.Int("rows", len(response.Yearly)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

type exportRequest struct {
	Name        string                      `json:"name"`
	Property    *analysis.PropertyData      `json:"property"`
	Assumptions *config.AssumptionOverrides `json:"assumptions"`
	Output      *config.OutputConfig        `json:"output"`
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req exportRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}
	if req.Property == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing property", op)
		return
	}

	yamlBytes, err := marshalConfigYAML(req)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// marshalConfigYAML writes a loadable configuration document with the
// sections in reading order.
func marshalConfigYAML(req exportRequest) ([]byte, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = DefaultScenarioName
	}

	common := config.Common{Property: *req.Property}
	if req.Assumptions != nil {
		common.Assumptions = *req.Assumptions
	}

	items := make([]orderedItem, 0, 3)
	if req.Output != nil {
		items = append(items, orderedItem{key: "output", value: req.Output})
	}
	items = append(items,
		orderedItem{key: "common", value: common},
		orderedItem{key: "scenarios", value: []config.Scenario{{Name: name, Active: true}}},
	)

	return yaml.Marshal(orderedConfig{items: items})
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) handleRate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRate"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if h.rates == nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, "rate lookup is not enabled", op)
		return
	}

	term := 30
	if raw := strings.TrimSpace(r.URL.Query().Get("term")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid term %q", raw), op)
			return
		}
		term = parsed
	}

	quote, err := h.rates.Current(r.Context(), term)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadGateway, fmt.Sprintf("rate lookup failed: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, quote)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeBody reads a size-limited JSON body into v. It writes the error
// response itself and reports whether decoding succeeded.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes before writing the header so an unencodable payload
// becomes a 500 rather than a 200 with an empty body.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
