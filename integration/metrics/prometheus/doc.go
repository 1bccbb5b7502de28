// Package prometheus exports Apple Remote statistics as Prometheus metrics.
//
//	r, err := remote.New(path)
//	if err != nil {
//		return err
//	}
//	prometheus.MustRegister(appleprom.NewCollector(r, appleprom.WithConstLabels(prometheus.Labels{"room": "den"})))
//
// Exported metrics (default namespace "appleremote"):
//
//   - appleremote_up
//   - appleremote_listeners
//   - appleremote_lines_read_total
//   - appleremote_lines_skipped_total
//   - appleremote_events_dispatched_total
//   - appleremote_handler_failures_total
//   - appleremote_last_event_timestamp_seconds
//
// Every metric carries a remote_id label with the remote's ID.
package prometheus
