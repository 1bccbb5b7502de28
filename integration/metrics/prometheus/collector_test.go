package prometheus_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakospeter91/appleremote/core/remote"
	appleprom "github.com/lakospeter91/appleremote/integration/metrics/prometheus"
)

type staticStats struct {
	stats remote.Stats
}

func (s *staticStats) Stats() remote.Stats { return s.stats }

func gather(t *testing.T, c prometheus.Collector) map[string]*dto.Metric {
	t.Helper()

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.Metric, len(families))
	for _, mf := range families {
		require.Len(t, mf.GetMetric(), 1)
		out[mf.GetName()] = mf.GetMetric()[0]
	}
	return out
}

func labelValue(m *dto.Metric, name string) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}

func TestCollector_ExportsStats(t *testing.T) {
	t.Parallel()

	last := time.Unix(1700000000, 0)
	src := &staticStats{stats: remote.Stats{
		ID:               "r1",
		State:            remote.StateRunning,
		Listeners:        2,
		LinesRead:        10,
		LinesSkipped:     3,
		EventsDispatched: 7,
		HandlerFailures:  1,
		LastEventAt:      last,
	}}

	metrics := gather(t, appleprom.NewCollector(src, appleprom.WithConstLabels(prometheus.Labels{"room": "den"})))

	assert.Equal(t, 1.0, metrics["appleremote_up"].GetGauge().GetValue())
	assert.Equal(t, 2.0, metrics["appleremote_listeners"].GetGauge().GetValue())
	assert.Equal(t, 10.0, metrics["appleremote_lines_read_total"].GetCounter().GetValue())
	assert.Equal(t, 3.0, metrics["appleremote_lines_skipped_total"].GetCounter().GetValue())
	assert.Equal(t, 7.0, metrics["appleremote_events_dispatched_total"].GetCounter().GetValue())
	assert.Equal(t, 1.0, metrics["appleremote_handler_failures_total"].GetCounter().GetValue())
	assert.Equal(t, 1700000000.0, metrics["appleremote_last_event_timestamp_seconds"].GetGauge().GetValue())

	up := metrics["appleremote_up"]
	assert.Equal(t, "r1", labelValue(up, "remote_id"))
	assert.Equal(t, "den", labelValue(up, "room"))
}

func TestCollector_TracksStateChanges(t *testing.T) {
	t.Parallel()

	src := &staticStats{stats: remote.Stats{ID: "r2", State: remote.StateCreated}}
	c := appleprom.NewCollector(src, appleprom.WithNamespace("den_remote"))

	metrics := gather(t, c)
	assert.Equal(t, 0.0, metrics["den_remote_up"].GetGauge().GetValue())
	assert.Equal(t, 0.0, metrics["den_remote_last_event_timestamp_seconds"].GetGauge().GetValue())

	src.stats.State = remote.StateRunning
	metrics = gather(t, c)
	assert.Equal(t, 1.0, metrics["den_remote_up"].GetGauge().GetValue())
}

func TestCollector_WithRemote(t *testing.T) {
	t.Parallel()

	r, err := remote.New("/opt/iremotepipe")
	require.NoError(t, err)

	metrics := gather(t, appleprom.NewCollector(r))
	assert.Equal(t, r.ID(), labelValue(metrics["appleremote_listeners"], "remote_id"))
	assert.Equal(t, 0.0, metrics["appleremote_up"].GetGauge().GetValue())
}

func TestHandler(t *testing.T) {
	t.Parallel()

	src := &staticStats{stats: remote.Stats{ID: "r3", State: remote.StateRunning, EventsDispatched: 4}}

	rec := httptest.NewRecorder()
	appleprom.Handler(appleprom.NewCollector(src)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `appleremote_events_dispatched_total{remote_id="r3"} 4`)
	assert.Contains(t, body, `appleremote_up{remote_id="r3"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
