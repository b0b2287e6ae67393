package repositories

import (
	"context"
	"encoding/json"
	"time"

	"labo-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TimeSlotRepository persists event time slots. The per-slot audit trail is a
// JSONB column, appended to on every write; slot rows are never deleted, only
// flipped to status=deleted.
type TimeSlotRepository struct {
	DB *pgxpool.Pool
}

func NewTimeSlotRepository(db *pgxpool.Pool) *TimeSlotRepository {
	return &TimeSlotRepository{DB: db}
}

// ListByEvent returns every slot of the event, active and superseded, oldest
// first. Callers filter to active where needed.
func (r *TimeSlotRepository) ListByEvent(ctx context.Context, eventID int) ([]models.TimeSlot, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, event_id, start_date, end_date, status, created_by, modified_by, created_at
         FROM time_slots WHERE event_id=$1 ORDER BY created_at ASC, id ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []models.TimeSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// ListActiveBetween returns active slots overlapping [from, to) with their
// event ids, for calendar range queries and exports.
func (r *TimeSlotRepository) ListActiveBetween(ctx context.Context, from, to time.Time) ([]models.TimeSlot, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, event_id, start_date, end_date, status, created_by, modified_by, created_at
         FROM time_slots
         WHERE status='active' AND start_date < $2 AND end_date > $1
         ORDER BY start_date ASC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []models.TimeSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// Insert stores a net-new slot inside tx, assigning its uuid.
func (r *TimeSlotRepository) Insert(ctx context.Context, tx pgx.Tx, eventID int, slot *models.TimeSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	slot.EventID = eventID

	audit, err := json.Marshal(slot.ModifiedBy)
	if err != nil {
		return err
	}
	return tx.QueryRow(ctx,
		`INSERT INTO time_slots(id, event_id, start_date, end_date, status, created_by, modified_by)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING created_at`,
		slot.ID, eventID, slot.StartDate, slot.EndDate, slot.Status, slot.CreatedBy, audit,
	).Scan(&slot.CreatedAt)
}

// Update rewrites a slot's bounds, status and audit trail inside tx.
func (r *TimeSlotRepository) Update(ctx context.Context, tx pgx.Tx, slot *models.TimeSlot) error {
	audit, err := json.Marshal(slot.ModifiedBy)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`UPDATE time_slots SET start_date=$1, end_date=$2, status=$3, modified_by=$4 WHERE id=$5`,
		slot.StartDate, slot.EndDate, slot.Status, audit, slot.ID)
	return err
}

type slotScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row slotScanner) (models.TimeSlot, error) {
	var slot models.TimeSlot
	var audit []byte
	err := row.Scan(&slot.ID, &slot.EventID, &slot.StartDate, &slot.EndDate,
		&slot.Status, &slot.CreatedBy, &audit, &slot.CreatedAt)
	if err != nil {
		return slot, err
	}
	if len(audit) > 0 {
		if err := json.Unmarshal(audit, &slot.ModifiedBy); err != nil {
			return slot, err
		}
	}
	return slot, nil
}
