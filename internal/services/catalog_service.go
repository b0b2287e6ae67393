package services

import (
	"context"
	"encoding/json"
	"log"

	"labo-backend/internal/cache"
	"labo-backend/internal/models"
	"labo-backend/internal/repositories"
	"labo-backend/internal/timeslot"
)

// CatalogService serves the inventory catalogs (materiel, chemicals, physique
// equipement and consommables), rooms and classes, with Redis caching in front
// of Postgres, plus the advisory stock forecasts.
type CatalogService struct {
	CatalogRepo *repositories.CatalogRepository
	RoomRepo    *repositories.RoomRepository
	ClassRepo   *repositories.ClassRepository
	EventRepo   *repositories.EventRepository
}

func NewCatalogService(
	catalogRepo *repositories.CatalogRepository,
	roomRepo *repositories.RoomRepository,
	classRepo *repositories.ClassRepository,
	eventRepo *repositories.EventRepository,
) *CatalogService {
	return &CatalogService{
		CatalogRepo: catalogRepo,
		RoomRepo:    roomRepo,
		ClassRepo:   classRepo,
		EventRepo:   eventRepo,
	}
}

// ListMaterials returns the materiel catalog for a discipline.
func (s *CatalogService) ListMaterials(ctx context.Context, discipline string) ([]models.CatalogItem, error) {
	return s.cachedCatalog(ctx, cache.MaterialsKey(discipline), repositories.CatalogMateriel, discipline)
}

// ListChemicals returns the chemicals catalog (chimie only).
func (s *CatalogService) ListChemicals(ctx context.Context) ([]models.CatalogItem, error) {
	return s.cachedCatalog(ctx, cache.ChemicalsKey, repositories.CatalogChemicals, models.DisciplineChimie)
}

// ListEquipment returns the physique equipment catalog.
func (s *CatalogService) ListEquipment(ctx context.Context) ([]models.CatalogItem, error) {
	return s.cachedCatalog(ctx, cache.EquipmentKey, repositories.CatalogEquipment, models.DisciplinePhysique)
}

// ListConsumables returns the physique consumables catalog.
func (s *CatalogService) ListConsumables(ctx context.Context) ([]models.CatalogItem, error) {
	return s.cachedCatalog(ctx, cache.ConsumablesKey, repositories.CatalogConsumables, models.DisciplinePhysique)
}

// ListRooms returns the room catalog.
func (s *CatalogService) ListRooms(ctx context.Context) ([]models.Room, error) {
	if data, ok := cache.GetCached(ctx, cache.RoomsKey); ok {
		var rooms []models.Room
		if json.Unmarshal(data, &rooms) == nil {
			return rooms, nil
		}
	}
	rooms, err := s.RoomRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, cache.RoomsKey, rooms)
	return rooms, nil
}

// ListClasses returns the class catalog.
func (s *CatalogService) ListClasses(ctx context.Context) ([]models.Class, error) {
	if data, ok := cache.GetCached(ctx, cache.ClassesKey); ok {
		var classes []models.Class
		if json.Unmarshal(data, &classes) == nil {
			return classes, nil
		}
	}
	classes, err := s.ClassRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, cache.ClassesKey, classes)
	return classes, nil
}

// CreateItem adds a catalog item and drops the catalog caches.
func (s *CatalogService) CreateItem(ctx context.Context, category string, item *models.CatalogItem) error {
	if err := s.CatalogRepo.Create(ctx, category, item); err != nil {
		return err
	}
	cache.InvalidateCatalogCaches(ctx)
	log.Printf("[Catalog] created %s item #%d %q", category, item.ID, item.Name)
	return nil
}

// UpdateItem rewrites a catalog item and drops the catalog caches.
func (s *CatalogService) UpdateItem(ctx context.Context, item *models.CatalogItem) error {
	if err := s.CatalogRepo.Update(ctx, item); err != nil {
		return err
	}
	cache.InvalidateCatalogCaches(ctx)
	return nil
}

// DeleteItem removes a catalog item and drops the catalog caches. Events that
// referenced it keep their denormalized resource names.
func (s *CatalogService) DeleteItem(ctx context.Context, id int) error {
	if err := s.CatalogRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateCatalogCaches(ctx)
	return nil
}

// ForecastForEvent projects stock for every catalog-backed resource of an
// event. Custom resources carry no stock and are skipped; so are references to
// since-deleted catalog items.
func (s *CatalogService) ForecastForEvent(ctx context.Context, eventID int) ([]models.StockForecast, error) {
	resources, err := s.EventRepo.ListResources(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var refs []models.ResourceRef
	for _, category := range resources {
		refs = append(refs, category...)
	}
	return s.ForecastForRefs(ctx, refs)
}

// ForecastForRefs projects stock for a set of resource refs, e.g. the wizard's
// in-flight selection before the event is saved.
func (s *CatalogService) ForecastForRefs(ctx context.Context, refs []models.ResourceRef) ([]models.StockForecast, error) {
	requested := make(map[int]int)
	var ids []int
	for _, ref := range refs {
		if ref.Kind != models.ResourceKindCatalog || ref.CatalogID == nil {
			continue
		}
		if _, seen := requested[*ref.CatalogID]; !seen {
			ids = append(ids, *ref.CatalogID)
		}
		requested[*ref.CatalogID] += ref.RequestedQuantity
	}

	items, err := s.CatalogRepo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	forecasts := make([]models.StockForecast, 0, len(ids))
	for _, id := range ids {
		item, ok := items[id]
		if !ok {
			continue
		}
		forecasts = append(forecasts, timeslot.Forecast(item, requested[id]))
	}
	return forecasts, nil
}

func (s *CatalogService) cachedCatalog(ctx context.Context, key, category, discipline string) ([]models.CatalogItem, error) {
	if data, ok := cache.GetCached(ctx, key); ok {
		var items []models.CatalogItem
		if json.Unmarshal(data, &items) == nil {
			return items, nil
		}
	}
	items, err := s.CatalogRepo.List(ctx, category, discipline)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, items)
	return items, nil
}

func (s *CatalogService) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	cache.SetCached(ctx, key, data, cache.CatalogTTL)
}
