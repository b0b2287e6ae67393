package models

import "time"

// Preset is a reusable event template (title, resources, documents) used to
// pre-fill the creation wizard.
type Preset struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Type        string        `json:"type"`
	Discipline  string        `json:"discipline"`
	Remarks     string        `json:"remarks,omitempty"`
	Materials   []ResourceRef `json:"materials,omitempty"`
	Chemicals   []ResourceRef `json:"chemicals,omitempty"`
	Consumables []ResourceRef `json:"consommables,omitempty"`
	Documents   []Document    `json:"files,omitempty"`
	CreatedBy   int           `json:"createdBy"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// CreatePresetRequest represents the request body for creating a preset
type CreatePresetRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Discipline  string          `json:"discipline"`
	Remarks     string          `json:"remarks"`
	Materials   []ResourceInput `json:"materials"`
	Chemicals   []ResourceInput `json:"chemicals"`
	Consumables []ResourceInput `json:"consommables"`
}
