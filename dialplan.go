// Package dialplan is the high-level entry point of the IVR call-flow
// interpreter: it loads a declarative phone-tree configuration once at
// startup and answers each telephony webhook with the next voice-response
// document.
//
// Every request is a stateless evaluation over the immutable configuration;
// the only state that survives between requests is whatever the telephony
// platform round-trips in URLs (menu loop counters, callback correlation
// tags).
package dialplan

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	httpadapter "github.com/dialplan/dialplan/internal/adapters/http"
	twilioadapter "github.com/dialplan/dialplan/internal/adapters/twilio"
	"github.com/dialplan/dialplan/internal/config"
	"github.com/dialplan/dialplan/internal/flow"
	"github.com/dialplan/dialplan/internal/keepwarm"
	"github.com/dialplan/dialplan/internal/logging"
)

// App wires the loaded configuration, section factory and controller into
// one immutable context object, constructed once at startup.
type App struct {
	store      *config.Store
	settings   *config.Settings
	factory    *flow.Factory
	controller *flow.Controller
	registry   *prometheus.Registry

	logger   *slog.Logger
	clock    flow.Clock
	notifier flow.Notifier
}

// Option configures the App.
type Option func(*App)

// WithLogger sets the structured logger used across the application.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithClock overrides the time source used for hours gating.
func WithClock(clock flow.Clock) Option {
	return func(a *App) {
		a.clock = clock
	}
}

// WithNotifier overrides the voicemail SMS notifier. Without it, a Twilio
// notifier is built from the configured credentials when present.
func WithNotifier(n flow.Notifier) Option {
	return func(a *App) {
		a.notifier = n
	}
}

// New loads and validates the configuration at path and builds the
// interpreter around it. Load failures are fatal; the caller must not serve
// traffic on error.
func New(path string, opts ...Option) (*App, error) {
	a := &App{
		logger: logging.NewNop(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	store, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings(store)
	if err != nil {
		return nil, err
	}

	a.store = store
	a.settings = settings
	a.registry = prometheus.NewRegistry()
	a.factory = flow.NewFactory(store, settings.Location, flow.WithClock(a.clock))

	if a.notifier == nil && settings.Twilio.AccountSID != "" {
		a.notifier = twilioadapter.NewNotifier(settings.Twilio.AccountSID, settings.Twilio.AuthToken, a.logger)
	}

	controllerOpts := []flow.ControllerOption{flow.WithLogger(a.logger)}
	if a.notifier != nil {
		controllerOpts = append(controllerOpts, flow.WithNotifier(a.notifier))
	}
	a.controller = flow.NewController(a.factory, controllerOpts...)

	return a, nil
}

// Handler returns the webhook HTTP handler.
func (a *App) Handler() http.Handler {
	return httpadapter.NewHandler(a.controller,
		httpadapter.WithLogger(a.logger),
		httpadapter.WithLocation(a.settings.Location),
		httpadapter.WithRegistry(a.registry),
	)
}

// ListenAddr returns the configured HTTP listen address.
func (a *App) ListenAddr() string {
	return a.settings.Server.Listen
}

// Validate dry-tests every section the configuration declares. report, when
// non-nil, receives each section name before it is checked.
func (a *App) Validate(report func(sectionName string)) error {
	return a.factory.Validate(report)
}

// StartKeepWarm starts the scheduled self-ping when one is configured.
// It returns a stop function, or nil when the feature is disabled.
func (a *App) StartKeepWarm() (stop func(), err error) {
	kw := a.settings.KeepWarm
	if kw.PingIntervalMinutes == 0 {
		return nil, nil
	}

	pinger, err := keepwarm.New(kw.PingEndpoint, kw.PingIntervalMinutes, a.logger)
	if err != nil {
		return nil, err
	}

	pinger.Start()
	a.logger.Info("keep-warm ping scheduled",
		"endpoint", kw.PingEndpoint, "interval_minutes", kw.PingIntervalMinutes)

	return pinger.Stop, nil
}
