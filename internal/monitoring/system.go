package monitoring

import (
	"context"
	"fmt"
	"time"

	"labo-backend/internal/cache"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemStats is the admin dashboard snapshot: host resource usage plus the
// health of the backing services.
type SystemStats struct {
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
	MemoryUsed    string  `json:"memoryUsed"`
	MemoryTotal   string  `json:"memoryTotal"`
	DiskPercent   float64 `json:"diskPercent"`
	DiskUsed      string  `json:"diskUsed"`
	DiskTotal     string  `json:"diskTotal"`

	DatabaseStatus    string `json:"databaseStatus"`
	DatabaseSize      string `json:"databaseSize"`
	ActiveConnections int    `json:"activeConnections"`
	DatabaseUptime    string `json:"databaseUptime"`
	RedisStatus       string `json:"redisStatus"`

	CollectedAt time.Time `json:"collectedAt"`
}

// Collector samples host and dependency stats for /api/monitoring/system.
type Collector struct {
	db *pgxpool.Pool
}

func NewCollector(db *pgxpool.Pool) *Collector {
	return &Collector{db: db}
}

// Collect gathers a snapshot. Individual probe failures degrade the snapshot
// instead of failing it.
func (c *Collector) Collect(ctx context.Context) SystemStats {
	stats := SystemStats{CollectedAt: time.Now()}

	cpuPercents, _ := cpu.Percent(time.Second, false)
	if len(cpuPercents) > 0 {
		stats.CPUPercent = cpuPercents[0]
	}

	if memStats, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = memStats.UsedPercent
		stats.MemoryUsed = formatBytes(memStats.Used)
		stats.MemoryTotal = formatBytes(memStats.Total)
	}

	if diskStats, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = diskStats.UsedPercent
		stats.DiskUsed = formatBytes(diskStats.Used)
		stats.DiskTotal = formatBytes(diskStats.Total)
	}

	stats.DatabaseStatus = "down"
	if err := c.db.Ping(ctx); err == nil {
		stats.DatabaseStatus = "up"

		var dbSizeBytes int64
		c.db.QueryRow(ctx, "SELECT pg_database_size(current_database())").Scan(&dbSizeBytes)
		stats.DatabaseSize = formatBytes(uint64(dbSizeBytes))

		c.db.QueryRow(ctx, "SELECT count(*) FROM pg_stat_activity").Scan(&stats.ActiveConnections)

		var uptimeSec int
		c.db.QueryRow(ctx, "SELECT EXTRACT(EPOCH FROM (NOW() - pg_postmaster_start_time()))::int").Scan(&uptimeSec)
		stats.DatabaseUptime = formatUptime(uptimeSec)
	}

	stats.RedisStatus = "down"
	if cache.IsHealthy() {
		stats.RedisStatus = "up"
	}

	return stats
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

func formatUptime(seconds int) string {
	d := seconds / 86400
	h := (seconds % 86400) / 3600
	m := (seconds % 3600) / 60
	if d > 0 {
		return fmt.Sprintf("%dd %dh %dm", d, h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
