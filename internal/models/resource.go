package models

import "time"

// Resource reference kinds. The union is decided once at ingestion; nothing
// downstream sniffs field presence.
const (
	ResourceKindCatalog = "catalog"
	ResourceKindCustom  = "custom"
)

// CustomIDSuffix marks synthetic ids of non-inventoried resources.
const CustomIDSuffix = "_CUSTOM"

// ResourceRef is a resolved resource request attached to an event: either a
// catalog item (stock-tracked) or a custom entry (no stock accounting).
type ResourceRef struct {
	Kind              string `json:"kind"`
	ID                string `json:"id"`
	CatalogID         *int   `json:"catalogId,omitempty"`
	Name              string `json:"name"`
	RequestedQuantity int    `json:"requestedQuantity"`
	Unit              string `json:"unit,omitempty"`
	IsCustom          bool   `json:"isCustom"`
}

// ResourceInput is the wire form of a resource request. A zero CatalogID with a
// non-empty Name is ingested as a custom entry.
type ResourceInput struct {
	CatalogID         int    `json:"id,omitempty"`
	Name              string `json:"name,omitempty"`
	RequestedQuantity int    `json:"requestedQuantity"`
	Unit              string `json:"unit,omitempty"`
	IsCustom          bool   `json:"isCustom,omitempty"`
}

// CatalogItem is one row of an inventory catalog (materiel, chemicals,
// physique equipement, physique consommables).
type CatalogItem struct {
	ID                int        `json:"id"`
	Name              string     `json:"name"`
	Quantity          float64    `json:"quantity"`
	QuantityPrevision *float64   `json:"quantityPrevision,omitempty"` // Forecast stock, falls back to Quantity
	MinQuantity       float64    `json:"minQuantity"`
	Unit              string     `json:"unit,omitempty"`
	Discipline        string     `json:"discipline"`
	CasNumber         string     `json:"casNumber,omitempty"` // Chemicals only
	ExpirationDate    *time.Time `json:"expirationDate,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// StockForecast is the advisory stock derivation for one requested catalog
// item. It never blocks a save.
type StockForecast struct {
	ItemID            int     `json:"itemId"`
	Name              string  `json:"name"`
	Requested         int     `json:"requested"`
	StockAfterRequest float64 `json:"stockAfterRequest"`
	Insufficient      bool    `json:"insufficient"` // StockAfterRequest < 0
	BelowMinimum      bool    `json:"belowMinimum"` // StockAfterRequest < MinQuantity
}
