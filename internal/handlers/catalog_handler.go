package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"labo-backend/internal/models"
	"labo-backend/internal/repositories"
	"labo-backend/internal/services"
	"labo-backend/pkg/utils"
)

// CatalogHandler serves the inventory catalogs, rooms, classes and the stock
// forecast endpoint.
type CatalogHandler struct {
	service *services.CatalogService
}

func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Materials handles GET /api/materiel?discipline=chimie|physique
func (h *CatalogHandler) Materials(w http.ResponseWriter, r *http.Request) {
	discipline := r.URL.Query().Get("discipline")
	if discipline != "" && !models.ValidDiscipline(discipline) {
		utils.Error(w, http.StatusBadRequest, "unknown discipline")
		return
	}
	items, err := h.service.ListMaterials(r.Context(), discipline)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, emptyIfNil(items))
}

// Chemicals handles GET /api/chemicals
func (h *CatalogHandler) Chemicals(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListChemicals(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, emptyIfNil(items))
}

// Equipment handles GET /api/physique/equipement
func (h *CatalogHandler) Equipment(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListEquipment(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, emptyIfNil(items))
}

// Consumables handles GET /api/physique/consommables
func (h *CatalogHandler) Consumables(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListConsumables(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, emptyIfNil(items))
}

// Rooms handles GET /api/salles
func (h *CatalogHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.ListRooms(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	utils.JSON(w, http.StatusOK, rooms)
}

// Classes handles GET /api/classes
func (h *CatalogHandler) Classes(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.ListClasses(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if classes == nil {
		classes = []models.Class{}
	}
	utils.JSON(w, http.StatusOK, classes)
}

// catalogCategoryFromQuery maps the ?catalog= parameter onto a storage
// category for the admin write endpoints.
func catalogCategoryFromQuery(r *http.Request) (string, bool) {
	switch r.URL.Query().Get("catalog") {
	case "materiel":
		return repositories.CatalogMateriel, true
	case "chemicals":
		return repositories.CatalogChemicals, true
	case "equipement":
		return repositories.CatalogEquipment, true
	case "consommables":
		return repositories.CatalogConsumables, true
	}
	return "", false
}

// CreateItem handles POST /api/catalog?catalog=...
func (h *CatalogHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	category, ok := catalogCategoryFromQuery(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "unknown catalog")
		return
	}

	var item models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if item.Name == "" {
		utils.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.service.CreateItem(r.Context(), category, &item); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/catalog?id=N
func (h *CatalogHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var item models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item.ID = id

	if err := h.service.UpdateItem(r.Context(), &item); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/catalog?id=N
func (h *CatalogHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid item id")
		return
	}
	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Forecast handles GET /api/calendrier/forecast?id=N: the advisory stock
// projection for an event's catalog-backed resources.
func (h *CatalogHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	forecasts, err := h.service.ForecastForEvent(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if forecasts == nil {
		forecasts = []models.StockForecast{}
	}
	utils.JSON(w, http.StatusOK, forecasts)
}

func emptyIfNil(items []models.CatalogItem) []models.CatalogItem {
	if items == nil {
		return []models.CatalogItem{}
	}
	return items
}
