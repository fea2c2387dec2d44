package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/adapter/http/middleware"
)

const (
	StatusOk   = "ok"
	StatusDown = "down"

	healthPingTimeout = 2 * time.Second
)

// Pinger is satisfied by *sqlx.DB and *mongodb.Store.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthInfo struct {
	AppName    string
	AppVersion string
	Driver     string
}

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type DatabaseStatus struct {
	Driver    string `json:"driver"`
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	Database          DatabaseStatus `json:"database"`
}

type HealthHandler struct {
	info  HealthInfo
	store Pinger
	now   func() time.Time
}

func NewHealthHandler(info HealthInfo, store Pinger) *HealthHandler {
	if info.AppVersion == "" {
		info.AppVersion = "dev"
	}
	return &HealthHandler{info: info, store: store, now: time.Now}
}

// CheckHealth answers 500 when the store does not respond, so it can back a
// container liveness probe.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	db := h.pingDatabase(c.Request.Context())

	statusCode := http.StatusOK
	if db.Status != StatusOk {
		statusCode = http.StatusInternalServerError
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           h.info.AppName,
		AppVersion:        h.info.AppVersion,
		CurrentSystemTime: h.now().Format(time.DateTime),
		Message:           db.Status,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	c.JSON(http.StatusOK, HealthAdvanced{
		AppName:           h.info.AppName,
		AppVersion:        h.info.AppVersion,
		CurrentSystemTime: h.now().Format(time.DateTime),
		Language:          middleware.GetLang(c),
		Database:          h.pingDatabase(c.Request.Context()),
	})
}

func (h *HealthHandler) pingDatabase(ctx context.Context) DatabaseStatus {
	status := DatabaseStatus{Driver: h.info.Driver, Status: StatusDown}
	if h.store == nil {
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	start := h.now()
	err := h.store.PingContext(ctx)
	status.LatencyMs = h.now().Sub(start).Milliseconds()
	if err == nil {
		status.Status = StatusOk
	}
	return status
}
