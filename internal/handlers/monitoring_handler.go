package handlers

import (
	"net/http"

	"labo-backend/internal/hub"
	"labo-backend/internal/monitoring"
	"labo-backend/pkg/utils"
)

// MonitoringHandler serves the admin system stats dashboard.
type MonitoringHandler struct {
	collector *monitoring.Collector
	hub       *hub.Hub
}

func NewMonitoringHandler(collector *monitoring.Collector, h *hub.Hub) *MonitoringHandler {
	return &MonitoringHandler{collector: collector, hub: h}
}

// System handles GET /api/monitoring/system
func (h *MonitoringHandler) System(w http.ResponseWriter, r *http.Request) {
	stats := h.collector.Collect(r.Context())
	resp := struct {
		monitoring.SystemStats
		WebsocketClients int `json:"websocketClients"`
	}{stats, h.hub.ClientCount()}
	utils.JSON(w, http.StatusOK, resp)
}
