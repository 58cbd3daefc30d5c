// Package handlers provides the HTTP API handlers of akina-halo.
package handlers

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hmwm/akina-halo/internal/content"
	"github.com/hmwm/akina-halo/pkg/httpclient"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"gorm.io/gorm"
)

// circuitReporter is implemented by providers guarded by a circuit breaker.
type circuitReporter interface {
	CircuitState() httpclient.CircuitState
}

// HealthHandler serves the health endpoint.
type HealthHandler struct {
	version   string
	startTime time.Time
	db        *gorm.DB
	provider  content.Provider
}

// NewHealthHandler creates a health handler reporting version.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		version:   version,
		startTime: time.Now(),
	}
}

// WithDB sets the database checked by the endpoint.
func (h *HealthHandler) WithDB(db *gorm.DB) *HealthHandler {
	h.db = db
	return h
}

// WithProvider sets the content provider reported by the endpoint.
func (h *HealthHandler) WithProvider(p content.Provider) *HealthHandler {
	h.provider = p
	return h
}

// CPUInfo holds host load figures.
type CPUInfo struct {
	Cores              int     `json:"cores"`
	Load1Min           float64 `json:"load_1min"`
	Load5Min           float64 `json:"load_5min"`
	Load15Min          float64 `json:"load_15min"`
	LoadPercentage1Min float64 `json:"load_percentage_1min"`
}

// MemoryInfo holds host and process memory figures in megabytes.
type MemoryInfo struct {
	TotalMemoryMB     float64 `json:"total_memory_mb"`
	UsedMemoryMB      float64 `json:"used_memory_mb"`
	AvailableMemoryMB float64 `json:"available_memory_mb"`
	ProcessMemoryMB   float64 `json:"process_memory_mb"`
}

// DatabaseHealth reports database reachability.
type DatabaseHealth struct {
	Status            string  `json:"status" enum:"ok,error,unknown"`
	ResponseTimeMS    float64 `json:"response_time_ms"`
	ActiveConnections int     `json:"active_connections"`
	IdleConnections   int     `json:"idle_connections"`
}

// ProviderHealth reports the content provider.
type ProviderHealth struct {
	Name    string `json:"name"`
	Circuit string `json:"circuit,omitempty" doc:"Circuit breaker state of remote providers"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status        string            `json:"status" enum:"healthy,degraded"`
	Timestamp     string            `json:"timestamp"`
	Version       string            `json:"version"`
	Uptime        string            `json:"uptime"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	CPUInfo       CPUInfo           `json:"cpu_info"`
	Memory        MemoryInfo        `json:"memory"`
	Database      DatabaseHealth    `json:"database"`
	Provider      *ProviderHealth   `json:"provider,omitempty"`
	Checks        map[string]string `json:"checks"`
}

// HealthInput is the input for the health endpoint.
type HealthInput struct{}

// HealthOutput is the output for the health endpoint.
type HealthOutput struct {
	Body HealthResponse
}

// Register registers the health route.
func (h *HealthHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getHealth",
		Method:      "GET",
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns service health with host CPU and memory figures",
		Tags:        []string{"System"},
	}, h.GetHealth)
}

// GetHealth returns the health of the service.
func (h *HealthHandler) GetHealth(ctx context.Context, _ *HealthInput) (*HealthOutput, error) {
	now := time.Now()
	uptime := now.Sub(h.startTime)

	db := h.databaseHealth(ctx)
	resp := HealthResponse{
		Status:        "healthy",
		Timestamp:     now.UTC().Format(time.RFC3339),
		Version:       h.version,
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: uptime.Seconds(),
		CPUInfo:       cpuInfo(),
		Memory:        memoryInfo(),
		Database:      db,
		Checks:        map[string]string{"database": db.Status},
	}

	if h.provider != nil {
		ph := &ProviderHealth{Name: h.provider.Name()}
		resp.Checks["provider"] = "ok"
		if cr, ok := h.provider.(circuitReporter); ok {
			state := cr.CircuitState()
			ph.Circuit = state.String()
			if state == httpclient.CircuitOpen {
				resp.Checks["provider"] = "error"
			}
		}
		resp.Provider = ph
	}

	for _, status := range resp.Checks {
		if status == "error" {
			resp.Status = "degraded"
		}
	}
	return &HealthOutput{Body: resp}, nil
}

func cpuInfo() CPUInfo {
	info := CPUInfo{Cores: runtime.NumCPU()}
	if avg, err := load.Avg(); err == nil && avg != nil {
		info.Load1Min = avg.Load1
		info.Load5Min = avg.Load5
		info.Load15Min = avg.Load15
		if info.Cores > 0 {
			info.LoadPercentage1Min = avg.Load1 / float64(info.Cores) * 100
		}
	}
	return info
}

const megabyte = 1024 * 1024

func memoryInfo() MemoryInfo {
	var info MemoryInfo
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		info.TotalMemoryMB = float64(vm.Total) / megabyte
		info.UsedMemoryMB = float64(vm.Used) / megabyte
		info.AvailableMemoryMB = float64(vm.Available) / megabyte
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if pm, err := proc.MemoryInfo(); err == nil && pm != nil {
			info.ProcessMemoryMB = float64(pm.RSS) / megabyte
		}
	}
	return info
}

func (h *HealthHandler) databaseHealth(ctx context.Context) DatabaseHealth {
	if h.db == nil {
		return DatabaseHealth{Status: "unknown"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return DatabaseHealth{Status: "error"}
	}

	stats := sqlDB.Stats()
	health := DatabaseHealth{
		Status:            "ok",
		ActiveConnections: stats.InUse,
		IdleConnections:   stats.Idle,
	}
	start := time.Now()
	if err := sqlDB.PingContext(ctx); err != nil {
		health.Status = "error"
	}
	health.ResponseTimeMS = float64(time.Since(start).Microseconds()) / 1000
	return health
}
