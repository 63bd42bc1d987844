package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Five-field expressions only; seconds and descriptors are rejected.
var standardCronParser = cron.NewParser(
	cron.Minute |
		cron.Hour |
		cron.Dom |
		cron.Month |
		cron.Dow,
)

// ParseCronExpressionUTC parses a standard 5-field cron expression. All
// schedules run in UTC; timezone prefixes are rejected so that a monitor's
// firing times never depend on host-local configuration.
func ParseCronExpressionUTC(expr string) (cron.Schedule, error) {
	clean := strings.TrimSpace(expr)
	if clean == "" {
		return nil, errors.New("booking: cron expression is required")
	}

	upper := strings.ToUpper(clean)
	if strings.Contains(upper, "CRON_TZ=") || strings.Contains(upper, "TZ=") {
		return nil, errors.New("booking: cron expression must be UTC-only (timezone prefixes are not allowed)")
	}

	schedule, err := standardCronParser.Parse(clean)
	if err != nil {
		return nil, fmt.Errorf("booking: invalid cron expression: %w", err)
	}
	return schedule, nil
}

// ProbeEvent captures one upstream reachability check.
type ProbeEvent struct {
	At       time.Time
	Healthy  bool
	Duration time.Duration
	Error    error
}

// ProbeEventHandler handles monitor probe events.
type ProbeEventHandler func(event ProbeEvent)

// MonitorConfig controls background upstream monitoring.
type MonitorConfig struct {
	Client *Client
	// Schedule is a 5-field UTC cron expression, e.g. "*/15 * * * *".
	Schedule string
	// Path is probed with a GET; response bodies are discarded.
	Path    string
	Logger  *slog.Logger
	Now     func() time.Time
	OnEvent ProbeEventHandler
}

// Monitor periodically probes the RapidAPI upstream so operators learn about
// credential or connectivity problems before a traveler does. It only
// observes; it never changes what tools are exposed.
type Monitor struct {
	client   *Client
	schedule cron.Schedule
	path     string
	logger   *slog.Logger
	now      func() time.Time
	onEvent  ProbeEventHandler

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates an upstream monitor from config.
func NewMonitor(cfg MonitorConfig) (*Monitor, error) {
	if cfg.Client == nil {
		return nil, errors.New("booking: monitor client is nil")
	}
	schedule, err := ParseCronExpressionUTC(cfg.Schedule)
	if err != nil {
		return nil, err
	}
	if cfg.Path == "" {
		cfg.Path = "/searchHotelsByCoordinates"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	if cfg.OnEvent == nil {
		cfg.OnEvent = func(ProbeEvent) {}
	}

	return &Monitor{
		client:   cfg.Client,
		schedule: schedule,
		path:     cfg.Path,
		logger:   cfg.Logger,
		now:      cfg.Now,
		onEvent:  cfg.OnEvent,
	}, nil
}

// Start begins monitoring. Calling Start on a running monitor is a no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return
	}
	loopCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done
	m.mu.Unlock()

	go func() {
		defer close(done)
		for {
			next := m.schedule.Next(m.now().UTC())
			timer := time.NewTimer(time.Until(next))
			select {
			case <-loopCtx.Done():
				timer.Stop()
				return
			case <-timer.C:
				m.RunOnce(loopCtx)
			}
		}
	}()
}

// Stop halts monitoring and waits for the loop to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// RunOnce performs a single probe and reports the outcome.
func (m *Monitor) RunOnce(ctx context.Context) ProbeEvent {
	start := m.now()
	err := m.client.GetJSON(ctx, m.path, nil, nil)

	// A 4xx still proves the upstream is reachable and answering; only
	// transport-level failures and 5xx count against health.
	healthy := err == nil
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Code < 500 {
		healthy = true
	}

	event := ProbeEvent{
		At:       start,
		Healthy:  healthy,
		Duration: m.now().Sub(start),
		Error:    err,
	}

	if healthy {
		m.logger.Debug("upstream probe ok", "path", m.path, "duration_ms", event.Duration.Milliseconds())
	} else {
		m.logger.Error("upstream probe failed", "path", m.path, "error", err)
	}
	m.onEvent(event)
	return event
}
