package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"riftstats/internal/models"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

func TestRecorder_ObserveIngest(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0))
	r := NewRecorder("", clock, nopLogger{})

	before := testutil.ToFloat64(IngestRows.WithLabelValues("matches"))
	r.ObserveIngest(models.IngestResult{NewMatches: 3, FailedPlayers: 1}, time.Second, nil)

	assert.Equal(t, before+3, testutil.ToFloat64(IngestRows.WithLabelValues("matches")))
	assert.Equal(t, float64(1_700_000_000), testutil.ToFloat64(IngestLastSuccess))

	errBefore := testutil.ToFloat64(IngestRuns.WithLabelValues("error"))
	r.ObserveIngest(models.IngestResult{}, time.Second, errors.New("boom"))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(IngestRuns.WithLabelValues("error")))
}

func TestRecorder_PushesToGateway(t *testing.T) {
	var pushes int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&pushes, 1)
		assert.True(t, strings.HasPrefix(r.URL.Path, "/metrics/job/riftstats"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	r := NewRecorder(server.URL, clockwork.NewFakeClock(), nopLogger{})
	r.ObserveReport("weekly", nil)

	assert.Equal(t, int32(1), atomic.LoadInt32(&pushes))
}
