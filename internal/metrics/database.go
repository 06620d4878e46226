package metrics

import (
	"database/sql"
	"strings"
	"time"
)

// UpdateDBStats publishes a connection pool snapshot. The wait counters in
// sql.DBStats are cumulative since the pool was opened, so only the delta
// from the previous snapshot is added.
func (m *Metrics) UpdateDBStats(statsInterface interface{}) {
	m.safeExecute("UpdateDBStats", func() {
		stats, ok := statsInterface.(sql.DBStats)
		if !ok {
			return
		}
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))

		m.statsMu.Lock()
		waitDelta := stats.WaitCount - m.lastWaitCount
		durationDelta := stats.WaitDuration - m.lastWaitDuration
		if waitDelta < 0 || durationDelta < 0 {
			// counters restarted, the background reconnect replaced the pool
			waitDelta = stats.WaitCount
			durationDelta = stats.WaitDuration
		}
		m.lastWaitCount = stats.WaitCount
		m.lastWaitDuration = stats.WaitDuration
		m.statsMu.Unlock()

		m.DBConnectionWaitTotal.Add(float64(waitDelta))
		m.DBConnectionWaitDuration.Add(durationDelta.Seconds())
	})
}

// RecordDBQuery records one gorm operation routed through the query callbacks.
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		operation = strings.ToLower(operation)
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

		if err != nil {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}
