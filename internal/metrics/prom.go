package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Prom holds the service collectors. A nil *Prom records nothing.
type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	AuthOutcomes *prometheus.CounterVec
	LedgerWrites *prometheus.CounterVec
	ToolCalls    *prometheus.CounterVec
	LLMDuration  prometheus.Histogram
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eduai",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "eduai",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "eduai",
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method"},
		),
		AuthOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eduai",
				Subsystem: "auth",
				Name:      "outcomes_total",
				Help:      "Sign-in attempts by provider and outcome.",
			},
			[]string{"provider", "outcome"}, // outcome=ok|<auth error kind>
		),
		LedgerWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eduai",
				Subsystem: "ledger",
				Name:      "writes_total",
				Help:      "Ledger writes by kind and result.",
			},
			[]string{"kind", "result"}, // kind=completion|usage, result=ok|duplicate|error
		),
		ToolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eduai",
				Subsystem: "tools",
				Name:      "calls_total",
				Help:      "Tool completions by tool and result.",
			},
			[]string{"tool", "result"},
		),
		LLMDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "eduai",
				Subsystem: "llm",
				Name:      "request_duration_seconds",
				Help:      "Completion request latency.",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
			},
		),
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight,
		p.AuthOutcomes, p.LedgerWrites, p.ToolCalls, p.LLMDuration)

	return p
}

func (p *Prom) AuthOutcome(provider, outcome string) {
	if p == nil {
		return
	}
	p.AuthOutcomes.WithLabelValues(provider, outcome).Inc()
}

func (p *Prom) LedgerWrite(kind, result string) {
	if p == nil {
		return
	}
	p.LedgerWrites.WithLabelValues(kind, result).Inc()
}

func (p *Prom) ToolCall(tool, result string) {
	if p == nil {
		return
	}
	p.ToolCalls.WithLabelValues(tool, result).Inc()
}

func (p *Prom) ObserveLLM(d time.Duration) {
	if p == nil {
		return
	}
	p.LLMDuration.Observe(d.Seconds())
}

// Middleware records request counts and latency by chi route pattern.
func (p *Prom) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		method := r.Method

		p.InFlight.WithLabelValues(method).Inc()
		defer p.InFlight.WithLabelValues(method).Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// route pattern is only complete after routing
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		code := strconv.Itoa(status)

		p.RequestsTotal.WithLabelValues(method, route, code).Inc()
		p.RequestsDuration.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())
	})
}
