package repositories

import (
	"context"
	"errors"
	"time"

	"labo-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrVersionConflict is returned when an update carries a stale version
// number: someone else saved the event since the client loaded it.
var ErrVersionConflict = errors.New("event was modified by someone else")

// Resource categories as stored in event_resources.category
const (
	ResourceCategoryMaterials   = "materials"
	ResourceCategoryChemicals   = "chemicals"
	ResourceCategoryConsumables = "consommables"
)

type EventRepository struct {
	DB *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{DB: db}
}

// Create inserts the event row inside tx and fills in id and timestamps.
func (r *EventRepository) Create(ctx context.Context, tx pgx.Tx, ev *models.Event) error {
	return tx.QueryRow(ctx,
		`INSERT INTO events(title, description, type, state, discipline, created_by, remarks, class_id, room_id, version)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
         RETURNING id, version, created_at, updated_at`,
		ev.Title, ev.Description, ev.Type, ev.State, ev.Discipline,
		ev.CreatedBy, ev.Remarks, ev.ClassID, ev.RoomID,
	).Scan(&ev.ID, &ev.Version, &ev.CreatedAt, &ev.UpdatedAt)
}

// Get returns the event row plus the creator's name and email. Slots, logs and
// resources are loaded by their own repositories.
func (r *EventRepository) Get(ctx context.Context, id int) (*models.Event, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT e.id, e.title, e.description, e.type, e.state, e.discipline,
		        e.created_by, u.name, u.email, e.remarks, e.class_id, e.room_id,
		        e.version, e.created_at, e.updated_at
         FROM events e
         JOIN users u ON u.id = e.created_by
         WHERE e.id=$1`, id)

	var ev models.Event
	err := row.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Type, &ev.State, &ev.Discipline,
		&ev.CreatedBy, &ev.CreatorName, &ev.CreatorEmail, &ev.Remarks, &ev.ClassID, &ev.RoomID,
		&ev.Version, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// List returns all event rows, newest first.
func (r *EventRepository) List(ctx context.Context) ([]*models.Event, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT e.id, e.title, e.description, e.type, e.state, e.discipline,
		        e.created_by, u.name, u.email, e.remarks, e.class_id, e.room_id,
		        e.version, e.created_at, e.updated_at
         FROM events e
         JOIN users u ON u.id = e.created_by
         ORDER BY e.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var ev models.Event
		err := rows.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Type, &ev.State, &ev.Discipline,
			&ev.CreatedBy, &ev.CreatorName, &ev.CreatorEmail, &ev.Remarks, &ev.ClassID, &ev.RoomID,
			&ev.Version, &ev.CreatedAt, &ev.UpdatedAt)
		if err != nil {
			return nil, err
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

// Update writes the editable fields, bumping the version. The WHERE clause
// checks the expected version; zero rows means a concurrent save won.
func (r *EventRepository) Update(ctx context.Context, tx pgx.Tx, ev *models.Event, expectedVersion int) error {
	err := tx.QueryRow(ctx,
		`UPDATE events
         SET title=$1, description=$2, remarks=$3, class_id=$4, room_id=$5, state=$6,
             version=version+1, updated_at=CURRENT_TIMESTAMP
         WHERE id=$7 AND version=$8
         RETURNING version, updated_at`,
		ev.Title, ev.Description, ev.Remarks, ev.ClassID, ev.RoomID, ev.State,
		ev.ID, expectedVersion,
	).Scan(&ev.Version, &ev.UpdatedAt)
	if err == pgx.ErrNoRows {
		return ErrVersionConflict
	}
	return err
}

// UpdateState flips only the state column, without a version check. Used by
// validation/cancellation flows and the background roller, which act on the
// current row rather than on a client-held copy.
func (r *EventRepository) UpdateState(ctx context.Context, tx pgx.Tx, eventID int, state string) error {
	_, err := tx.Exec(ctx,
		`UPDATE events SET state=$1, version=version+1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		state, eventID)
	return err
}

// Delete removes the event. Slots, logs, resources and documents go with it
// through ON DELETE CASCADE.
func (r *EventRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	return err
}

// AppendModification records one touch of the event in its append-only trail.
func (r *EventRepository) AppendModification(ctx context.Context, tx pgx.Tx, eventID int, mod models.Modification) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO event_modifications(event_id, user_id, date) VALUES($1, $2, $3)`,
		eventID, mod.UserID, mod.Date)
	return err
}

// ListModifications returns the event's modification trail, oldest first.
func (r *EventRepository) ListModifications(ctx context.Context, eventID int) ([]models.Modification, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT user_id, date FROM event_modifications WHERE event_id=$1 ORDER BY date ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mods []models.Modification
	for rows.Next() {
		var m models.Modification
		if err := rows.Scan(&m.UserID, &m.Date); err != nil {
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, rows.Err()
}

// ReplaceResources swaps the event's resource rows of one category for the
// given set. Resources have no history requirement, so a delete+insert is fine.
func (r *EventRepository) ReplaceResources(ctx context.Context, tx pgx.Tx, eventID int, category string, refs []models.ResourceRef) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM event_resources WHERE event_id=$1 AND category=$2`, eventID, category); err != nil {
		return err
	}
	for _, ref := range refs {
		_, err := tx.Exec(ctx,
			`INSERT INTO event_resources(event_id, category, kind, resource_id, catalog_id, name, requested_quantity, unit, is_custom)
             VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			eventID, category, ref.Kind, ref.ID, ref.CatalogID, ref.Name, ref.RequestedQuantity, ref.Unit, ref.IsCustom)
		if err != nil {
			return err
		}
	}
	return nil
}

// ListResources returns the event's resource rows grouped by category.
func (r *EventRepository) ListResources(ctx context.Context, eventID int) (map[string][]models.ResourceRef, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT category, kind, resource_id, catalog_id, name, requested_quantity, unit, is_custom
         FROM event_resources WHERE event_id=$1 ORDER BY id ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grouped := make(map[string][]models.ResourceRef)
	for rows.Next() {
		var category string
		var ref models.ResourceRef
		err := rows.Scan(&category, &ref.Kind, &ref.ID, &ref.CatalogID, &ref.Name,
			&ref.RequestedQuantity, &ref.Unit, &ref.IsCustom)
		if err != nil {
			return nil, err
		}
		grouped[category] = append(grouped[category], ref)
	}
	return grouped, rows.Err()
}

// ListPendingStartingBefore returns ids of PENDING events whose earliest
// active slot starts at or before the cutoff. Feeds the state roller.
func (r *EventRepository) ListPendingStartingBefore(ctx context.Context, cutoff time.Time) ([]int, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT DISTINCT e.id
         FROM events e
         JOIN time_slots ts ON ts.event_id = e.id AND ts.status = 'active'
         WHERE e.state = $1 AND ts.start_date <= $2`,
		models.StatePending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
