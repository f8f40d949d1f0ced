// Package keepwarm periodically pings a configured endpoint so upstream
// infrastructure that idles out cold instances keeps one warm. It is a
// plain scheduled side effect; the interpreter never depends on it.
package keepwarm

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dialplan/dialplan/internal/logging"
)

// Pinger drives the scheduled self-ping.
type Pinger struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
	cron     *cron.Cron
}

// New builds a pinger that hits endpoint every interval minutes once
// started.
func New(endpoint string, intervalMinutes int, logger *slog.Logger) (*Pinger, error) {
	if intervalMinutes < 1 || intervalMinutes > 60 {
		return nil, fmt.Errorf("ping interval must be between 1 and 60 minutes, got %d", intervalMinutes)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	p := &Pinger{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
		cron:     cron.New(),
	}

	if _, err := p.cron.AddFunc(fmt.Sprintf("@every %dm", intervalMinutes), p.ping); err != nil {
		return nil, fmt.Errorf("schedule keep-warm ping: %w", err)
	}

	return p, nil
}

// Start begins the schedule in its own goroutine.
func (p *Pinger) Start() {
	p.cron.Start()
}

// Stop halts the schedule and waits for an in-flight ping to finish.
func (p *Pinger) Stop() {
	<-p.cron.Stop().Done()
}

func (p *Pinger) ping() {
	resp, err := p.client.Get(p.endpoint)
	if err != nil {
		p.logger.Warn("keep-warm ping failed", "endpoint", p.endpoint, "err", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	p.logger.Debug("keep-warm ping", "endpoint", p.endpoint, "status", resp.StatusCode)
}
