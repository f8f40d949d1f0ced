// Package http adapts the call-flow controller to the telephony platform's
// webhooks: it parses request state (path, query parameters, posted form
// fields), invokes the matching controller entrypoint and writes the
// serialized voice response.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dialplan/dialplan/internal/flow"
	"github.com/dialplan/dialplan/internal/logging"
	"github.com/dialplan/dialplan/internal/metrics"
	"github.com/dialplan/dialplan/internal/twiml"
	"github.com/dialplan/dialplan/pkg/ivr"
)

// Form fields posted by the telephony platform.
const (
	formDigits          = "Digits"
	formDialCallStatus  = "DialCallStatus"
	formRecordingURL    = "RecordingUrl"
	formRecordingStatus = "RecordingStatus"
)

// Server exposes the IVR webhook endpoints.
type Server struct {
	controller *flow.Controller
	logger     *slog.Logger
	metrics    *metrics.Metrics
	registry   *prometheus.Registry
	loc        *time.Location
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the server's structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithLocation sets the timezone reported by the ping endpoint.
func WithLocation(loc *time.Location) Option {
	return func(s *Server) {
		s.loc = loc
	}
}

// WithRegistry sets the prometheus registry backing /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// NewHandler builds the webhook router over a controller.
func NewHandler(controller *flow.Controller, opts ...Option) http.Handler {
	s := &Server{
		controller: controller,
		logger:     logging.NewNop(),
		loc:        time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = metrics.New(s.registry)

	r := chi.NewRouter()
	r.Use(s.instrument)

	r.Get("/health", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	webhook(r, "/ping", s.ping)
	webhook(r, "/ivr", s.welcome)
	webhook(r, flow.PathHangup, s.hangup)
	webhook(r, flow.PathMenu, s.menu)
	webhook(r, flow.PathMenu+"/{option}", s.menuOption)
	webhook(r, "/ivr/action/{action}", s.action)
	r.Post(flow.PathForwardStatusCallback, s.forwardCallStatus)
	r.Post(flow.PathVoicemailAlertCallback, s.voicemailAlertSMS)
	webhook(r, flow.PathVoicemailHangupCallback, s.voicemailHangup)

	return r
}

// webhook registers a handler for both methods the platform may use.
func webhook(r chi.Router, pattern string, h http.HandlerFunc) {
	r.Get(pattern, h)
	r.Post(pattern, h)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		s.metrics.Requests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		s.metrics.Durations.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"name":      "ping",
		"invokedAt": time.Now().In(s.loc).Format(time.RFC3339),
	})
}

func (s *Server) welcome(w http.ResponseWriter, r *http.Request) {
	doc, err := s.controller.Welcome()
	s.writeVoice(w, r, doc, err)
}

func (s *Server) hangup(w http.ResponseWriter, r *http.Request) {
	s.writeVoice(w, r, s.controller.Hangup(), nil)
}

func (s *Server) menu(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeVoice(w, r, nil, err)
		return
	}

	loopCount := 0
	if raw := r.URL.Query().Get(flow.QueryLoopCount); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			loopCount = n
		}
	}

	doc, err := s.controller.Menu(r.PostFormValue(formDigits), loopCount)
	s.writeVoice(w, r, doc, err)
}

func (s *Server) menuOption(w http.ResponseWriter, r *http.Request) {
	doc, err := s.controller.MenuOption(chi.URLParam(r, "option"))
	s.writeVoice(w, r, doc, err)
}

func (s *Server) action(w http.ResponseWriter, r *http.Request) {
	doc, err := s.controller.Action(chi.URLParam(r, "action"))
	s.writeVoice(w, r, doc, err)
}

func (s *Server) forwardCallStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeVoice(w, r, nil, err)
		return
	}

	doc, err := s.controller.ForwardCallStatus(
		r.PostFormValue(formDialCallStatus),
		r.URL.Query().Get(flow.QueryInitiatedBySection),
	)
	s.writeVoice(w, r, doc, err)
}

func (s *Server) voicemailAlertSMS(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.Warn("voicemail alert callback with unparsable form", "err", err)
	} else if err := s.controller.VoicemailAlertSMS(r.Context(),
		r.PostFormValue(formRecordingURL),
		r.PostFormValue(formRecordingStatus),
		r.URL.Query().Get(flow.QueryInitiatedBySection),
	); err != nil {
		s.logger.Error("voicemail alert dispatch failed", "err", err)
	} else if r.PostFormValue(formRecordingStatus) == flow.RecordingStatusCompleted {
		s.metrics.SMSAlerts.Inc()
	}

	// The platform only needs an acknowledgement here.
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) voicemailHangup(w http.ResponseWriter, r *http.Request) {
	doc, err := s.controller.VoicemailHangup(r.URL.Query().Get(flow.QueryInitiatedBySection))
	s.writeVoice(w, r, doc, err)
}

// writeVoice serializes and writes a voice document. Any error from the
// controller degrades to the spoken invalid-selection redirect instead of a
// raw failure so the call never terminates abruptly.
func (s *Server) writeVoice(w http.ResponseWriter, r *http.Request, doc *ivr.Document, err error) {
	if err != nil {
		s.logger.Warn("degrading to invalid-selection redirect",
			"path", r.URL.Path, "err", err)
		doc = s.controller.InvalidSelection()
	}

	body, err := twiml.Encode(doc, baseURL(r))
	if err != nil {
		s.logger.Error("voice response serialization failed", "err", err)
		http.Error(w, "serialization failure", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	if _, err := w.Write([]byte(body)); err != nil {
		s.logger.Error("voice response write failed", "err", err)
	}
}

// baseURL reconstructs the externally visible origin of a request so rooted
// instruction paths become absolute callback URLs. An empty result leaves
// paths relative; the platform resolves those against the webhook URL.
func baseURL(r *http.Request) string {
	host := r.Host
	if host == "" {
		return ""
	}

	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		if r.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}

	return scheme + "://" + host
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
