package monitoring

import (
	"context"
	"database/sql"
	"runtime"
	"time"
)

// Service aggregates in-process runtime metrics, HTTP counters, pool
// statistics and basic table counts for the monitoring endpoint.
type Service struct {
	startedAt time.Time
	db        *sql.DB
}

// NewService creates a monitoring service over the given database handle.
func NewService(db *sql.DB, startedAt time.Time) *Service {
	return &Service{startedAt: startedAt, db: db}
}

// Snapshot returns the current metrics as a JSON-serializable map.
func (s *Service) Snapshot(ctx context.Context) map[string]any {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	active, total, errCount := getHTTPStats()
	pool := s.db.Stats()

	snapshot := map[string]any{
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
		"runtime": map[string]any{
			"goroutines":       runtime.NumGoroutine(),
			"heap_alloc_mb":    float64(mem.HeapAlloc) / (1024 * 1024),
			"total_alloc_mb":   float64(mem.TotalAlloc) / (1024 * 1024),
			"gc_cycles":        mem.NumGC,
			"last_gc_pause_us": float64(mem.PauseNs[(mem.NumGC+255)%256]) / 1000.0,
		},
		"http": map[string]any{
			"active_requests": active,
			"total_requests":  total,
			"total_errors":    errCount,
		},
		"database": map[string]any{
			"open_connections": pool.OpenConnections,
			"in_use":           pool.InUse,
			"idle":             pool.Idle,
			"wait_count":       pool.WaitCount,
		},
	}

	var userCount int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&userCount); err == nil {
		snapshot["users_total"] = userCount
	}

	return snapshot
}
