package metrics

import (
	"context"
	"time"

	"riftstats/internal/models"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	pushJob     = "riftstats"
	pushTimeout = 10 * time.Second
)

type Logger interface {
	Warn(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Recorder updates the collectors after each run and, when a Pushgateway
// URL is set, pushes them since runs are short-lived.
type Recorder struct {
	pusher *push.Pusher
	clock  clockwork.Clock
	logger Logger
}

func NewRecorder(pushgatewayURL string, clock clockwork.Clock, logger Logger) *Recorder {
	r := &Recorder{clock: clock, logger: logger}
	if pushgatewayURL != "" {
		r.pusher = push.New(pushgatewayURL, pushJob).Gatherer(Registry)
	}
	return r
}

func (r *Recorder) ObserveIngest(res models.IngestResult, elapsed time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	} else {
		IngestLastSuccess.Set(float64(r.clock.Now().Unix()))
	}
	IngestRuns.WithLabelValues(result).Inc()
	IngestRows.WithLabelValues("matches").Add(float64(res.NewMatches))
	IngestRows.WithLabelValues("player_rows").Add(float64(res.NewPlayerRows))
	IngestRows.WithLabelValues("skipped_by_queue").Add(float64(res.SkippedByQueue))
	IngestRows.WithLabelValues("skipped_not_participant").Add(float64(res.SkippedNotParticipant))
	IngestFailedPlayers.Add(float64(res.FailedPlayers))
	IngestDuration.Observe(elapsed.Seconds())

	r.Push()
}

func (r *Recorder) ObserveReport(kind string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	ReportsPublished.WithLabelValues(kind, result).Inc()
	r.Push()
}

// Push failures are logged and never fail a run.
func (r *Recorder) Push() {
	if r.pusher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()
	if err := r.pusher.PushContext(ctx); err != nil {
		r.logger.Warn("failed to push metrics: %v", err)
		return
	}
	r.logger.Debug("metrics pushed")
}
