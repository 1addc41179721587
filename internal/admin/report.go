// AngelaMos | 2026
// report.go

package admin

import (
	"database/sql"
	"runtime"

	"github.com/redis/go-redis/v9"

	"github.com/amontalvo1020/rentalspro/internal/status"
)

type OccupancySummary struct {
	Properties ScopeSummary `json:"properties"`
	Units      ScopeSummary `json:"units"`
}

// ScopeSummary breaks one scope down by status name. VacancyRate is the
// Vacant share of the total, 0 when there is nothing to count.
type ScopeSummary struct {
	Total       int64            `json:"total"`
	ByStatus    map[string]int64 `json:"by_status"`
	ByPayment   map[string]int64 `json:"by_payment"`
	VacancyRate float64          `json:"vacancy_rate"`
}

func newScopeSummary() ScopeSummary {
	return ScopeSummary{
		ByStatus:  make(map[string]int64),
		ByPayment: make(map[string]int64),
	}
}

func summarize(counts []status.OccupancyCount) OccupancySummary {
	out := OccupancySummary{
		Properties: newScopeSummary(),
		Units:      newScopeSummary(),
	}

	for _, c := range counts {
		scope := &out.Properties
		if c.Scope == "unit" {
			scope = &out.Units
		}
		scope.Total += c.Total
		scope.ByStatus[status.Occupancy(c.StatusID).String()] += c.Total
		scope.ByPayment[status.Payment(c.PaymentStatus).String()] += c.Total
	}

	for _, scope := range []*ScopeSummary{&out.Properties, &out.Units} {
		if scope.Total > 0 {
			vacant := scope.ByStatus[status.Vacant.String()]
			scope.VacancyRate = float64(vacant) / float64(scope.Total)
		}
	}

	return out
}

type SystemStatsResponse struct {
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
	Settings Settings       `json:"settings"`
}

// Settings echoes the limits that shape cascade behavior.
type Settings struct {
	UnitCacheTTL string `json:"unit_cache_ttl"`
	QueryTimeout string `json:"query_timeout"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	NumGC        uint32 `json:"num_gc"`
}

func dbPoolStats(read func() sql.DBStats) *DBPoolStats {
	if read == nil {
		return nil
	}
	s := read()
	return &DBPoolStats{
		MaxOpenConnections: s.MaxOpenConnections,
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		WaitCount:          s.WaitCount,
		WaitDuration:       s.WaitDuration.String(),
	}
}

func redisPoolStats(read func() *redis.PoolStats) *RedisPoolStats {
	if read == nil {
		return nil
	}
	s := read()
	if s == nil {
		return nil
	}
	return &RedisPoolStats{
		Hits:       s.Hits,
		Misses:     s.Misses,
		Timeouts:   s.Timeouts,
		TotalConns: s.TotalConns,
		IdleConns:  s.IdleConns,
	}
}

func readRuntimeStats() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		MemAlloc:     mem.Alloc,
		NumGC:        mem.NumGC,
	}
}
