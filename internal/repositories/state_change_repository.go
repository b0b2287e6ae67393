package repositories

import (
	"context"

	"labo-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StateChangeRepository persists the append-only state transition trail.
type StateChangeRepository struct {
	DB *pgxpool.Pool
}

func NewStateChangeRepository(db *pgxpool.Pool) *StateChangeRepository {
	return &StateChangeRepository{DB: db}
}

// Insert appends one state transition inside tx.
func (r *StateChangeRepository) Insert(ctx context.Context, tx pgx.Tx, sc *models.StateChange) error {
	return tx.QueryRow(ctx,
		`INSERT INTO state_changes(event_id, user_id, from_state, to_state, reason, date)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id`,
		sc.EventID, sc.UserID, sc.FromState, sc.ToState, sc.Reason, sc.Date,
	).Scan(&sc.ID)
}

// ListByEvent returns the event's state history, oldest first.
func (r *StateChangeRepository) ListByEvent(ctx context.Context, eventID int) ([]models.StateChange, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, event_id, user_id, from_state, to_state, reason, date
         FROM state_changes WHERE event_id=$1 ORDER BY date ASC, id ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []models.StateChange
	for rows.Next() {
		var sc models.StateChange
		err := rows.Scan(&sc.ID, &sc.EventID, &sc.UserID, &sc.FromState, &sc.ToState, &sc.Reason, &sc.Date)
		if err != nil {
			return nil, err
		}
		changes = append(changes, sc)
	}
	return changes, rows.Err()
}
