package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Records   int       `json:"records"`
}

type HealthController struct {
	serviceName string
	version     string
	records     int
}

func NewHealthController(serviceName, version string, records int) *HealthController {
	return &HealthController{serviceName: serviceName, version: version, records: records}
}

func (h *HealthController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Records:   h.records,
	})
}
