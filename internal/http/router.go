package http

import (
	"net/http"

	"labo-backend/internal/handlers"
	"labo-backend/internal/hub"
	"labo-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	eventHandler *handlers.EventHandler,
	catalogHandler *handlers.CatalogHandler,
	authHandler *handlers.AuthHandler,
	totpHandler *handlers.TOTPHandler,
	documentHandler *handlers.DocumentHandler,
	presetHandler *handlers.PresetHandler,
	preferenceHandler *handlers.PreferenceHandler,
	draftHandler *handlers.DraftHandler,
	reportHandler *handlers.ReportHandler,
	monitoringHandler *handlers.MonitoringHandler,
	healthHandler *handlers.HealthHandler,
	calendarHub *hub.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Per-route metrics sit inside the mux chain so the route template is
	// available as the path label.
	r.Use(middleware.MetricsMiddleware)

	// Public routes
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/2fa/verify", totpHandler.Verify).Methods("POST")

	// Websocket: change notifications for connected calendars
	r.Handle("/ws/calendar", calendarHub).Methods("GET")

	// Calendar. Order matters: fixed paths before the bare resource.
	calendarAPI := r.PathPrefix("/api/calendrier").Subrouter()
	calendarAPI.Use(authMiddleware.Authenticate)
	calendarAPI.HandleFunc("/move-event", eventHandler.Move).Methods("PUT")
	calendarAPI.HandleFunc("/state-change", authMiddleware.RequireValidationRights(http.HandlerFunc(eventHandler.ChangeState)).ServeHTTP).Methods("PUT")
	calendarAPI.HandleFunc("/approve-timeslots", eventHandler.ApproveTimeslots).Methods("POST")
	calendarAPI.HandleFunc("/reject-timeslots", eventHandler.RejectTimeslots).Methods("POST")
	calendarAPI.HandleFunc("/confirm-modification", eventHandler.ConfirmModification).Methods("PUT")
	calendarAPI.HandleFunc("/forecast", catalogHandler.Forecast).Methods("GET")
	calendarAPI.HandleFunc("/export.ics", reportHandler.ExportICS).Methods("GET")
	calendarAPI.HandleFunc("", eventHandler.Get).Methods("GET")
	calendarAPI.HandleFunc("", eventHandler.Create).Methods("POST")
	calendarAPI.HandleFunc("", eventHandler.Update).Methods("PUT")
	calendarAPI.HandleFunc("", eventHandler.Delete).Methods("DELETE")

	// Catalogs (read)
	catalogRead := r.PathPrefix("/api").Subrouter()
	catalogRead.Use(authMiddleware.Authenticate)
	catalogRead.HandleFunc("/materiel", catalogHandler.Materials).Methods("GET")
	catalogRead.HandleFunc("/chemicals", catalogHandler.Chemicals).Methods("GET")
	catalogRead.HandleFunc("/physique/equipement", catalogHandler.Equipment).Methods("GET")
	catalogRead.HandleFunc("/physique/consommables", catalogHandler.Consumables).Methods("GET")
	catalogRead.HandleFunc("/salles", catalogHandler.Rooms).Methods("GET")
	catalogRead.HandleFunc("/rooms", catalogHandler.Rooms).Methods("GET")
	catalogRead.HandleFunc("/classes", catalogHandler.Classes).Methods("GET")

	// Catalog writes are for lab staff
	catalogWrite := r.PathPrefix("/api/catalog").Subrouter()
	catalogWrite.Use(authMiddleware.Authenticate)
	catalogWrite.HandleFunc("", authMiddleware.RequireValidationRights(http.HandlerFunc(catalogHandler.CreateItem)).ServeHTTP).Methods("POST")
	catalogWrite.HandleFunc("", authMiddleware.RequireValidationRights(http.HandlerFunc(catalogHandler.UpdateItem)).ServeHTTP).Methods("PUT")
	catalogWrite.HandleFunc("", authMiddleware.RequireValidationRights(http.HandlerFunc(catalogHandler.DeleteItem)).ServeHTTP).Methods("DELETE")

	// Presets
	eventsAPI := r.PathPrefix("/api/events").Subrouter()
	eventsAPI.Use(authMiddleware.Authenticate)
	eventsAPI.HandleFunc("/{id}/documents", documentHandler.UploadForEvent).Methods("POST")

	presetsAPI := r.PathPrefix("/api/event-presets").Subrouter()
	presetsAPI.Use(authMiddleware.Authenticate)
	presetsAPI.HandleFunc("", presetHandler.List).Methods("GET")
	presetsAPI.HandleFunc("", presetHandler.Create).Methods("POST")
	presetsAPI.HandleFunc("/{id}", presetHandler.Get).Methods("GET")
	presetsAPI.HandleFunc("/{id}", presetHandler.Delete).Methods("DELETE")
	presetsAPI.HandleFunc("/{id}/documents", documentHandler.UploadForPreset).Methods("POST")

	// Documents
	documentsAPI := r.PathPrefix("/api/documents").Subrouter()
	documentsAPI.Use(authMiddleware.Authenticate)
	documentsAPI.HandleFunc("/{id}", documentHandler.Delete).Methods("DELETE")

	// Wizard drafts
	draftsAPI := r.PathPrefix("/api/drafts").Subrouter()
	draftsAPI.Use(authMiddleware.Authenticate)
	draftsAPI.HandleFunc("", draftHandler.List).Methods("GET")
	draftsAPI.HandleFunc("", draftHandler.Save).Methods("POST")
	draftsAPI.HandleFunc("/{id}", draftHandler.Get).Methods("GET")
	draftsAPI.HandleFunc("/{id}", draftHandler.Save).Methods("PUT")
	draftsAPI.HandleFunc("/{id}", draftHandler.Delete).Methods("DELETE")

	// Preferences
	prefsAPI := r.PathPrefix("/api/preferences").Subrouter()
	prefsAPI.Use(authMiddleware.Authenticate)
	prefsAPI.HandleFunc("/tab", preferenceHandler.Get).Methods("GET")
	prefsAPI.HandleFunc("/tab", preferenceHandler.Set).Methods("PUT")

	// Users
	userAPI := r.PathPrefix("/api").Subrouter()
	userAPI.Use(authMiddleware.Authenticate)
	userAPI.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	userAPI.HandleFunc("/user/{id}", authHandler.GetUser).Methods("GET")
	userAPI.HandleFunc("/auth/2fa/setup", totpHandler.Setup).Methods("POST")
	userAPI.HandleFunc("/auth/2fa/enable", totpHandler.Enable).Methods("POST")
	userAPI.HandleFunc("/auth/2fa/disable", totpHandler.Disable).Methods("POST")
	userAPI.HandleFunc("/auth/2fa/status", totpHandler.Status).Methods("GET")

	// Reports (lab staff)
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/week.pdf", authMiddleware.RequireValidationRights(http.HandlerFunc(reportHandler.WeekPDF)).ServeHTTP).Methods("GET")

	// Admin
	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(authMiddleware.Authenticate)
	adminAPI.HandleFunc("/users", authMiddleware.RequireAdmin(http.HandlerFunc(authHandler.ListUsers)).ServeHTTP).Methods("GET")
	adminAPI.HandleFunc("/users/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(authHandler.UpdateUser)).ServeHTTP).Methods("PUT")
	adminAPI.HandleFunc("/users/{id}/active", authMiddleware.RequireAdmin(http.HandlerFunc(authHandler.SetUserActive)).ServeHTTP).Methods("PUT")

	monitoringAPI := r.PathPrefix("/api/monitoring").Subrouter()
	monitoringAPI.Use(authMiddleware.Authenticate)
	monitoringAPI.HandleFunc("/system", authMiddleware.RequireAdmin(http.HandlerFunc(monitoringHandler.System)).ServeHTTP).Methods("GET")

	return r
}
