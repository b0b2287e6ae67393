package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"labo-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrProposalExists is returned when a second reschedule proposal is filed
// while one is still pending on the same event.
var ErrProposalExists = errors.New("a pending proposal already exists for this event")

// ProposalRepository persists reschedule proposals filed by non-creators.
// Proposed slots are stored as a JSONB snapshot: they only become real slot
// rows if the proposal is approved.
type ProposalRepository struct {
	DB *pgxpool.Pool
}

func NewProposalRepository(db *pgxpool.Pool) *ProposalRepository {
	return &ProposalRepository{DB: db}
}

// Create stores a proposal inside tx. The partial unique index on event_id
// enforces at most one pending proposal per event.
func (r *ProposalRepository) Create(ctx context.Context, tx pgx.Tx, p *models.SlotProposal) error {
	slots, err := json.Marshal(p.Slots)
	if err != nil {
		return err
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO slot_proposals(event_id, proposed_by, slots, reason)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		p.EventID, p.ProposedBy, slots, p.Reason,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return ErrProposalExists
	}
	return err
}

// GetPendingByEvent returns the event's pending proposal, or pgx.ErrNoRows.
func (r *ProposalRepository) GetPendingByEvent(ctx context.Context, eventID int) (*models.SlotProposal, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, event_id, proposed_by, slots, reason, created_at
         FROM slot_proposals WHERE event_id=$1`, eventID)
	return scanProposal(row)
}

// Get returns a proposal by id.
func (r *ProposalRepository) Get(ctx context.Context, id int) (*models.SlotProposal, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, event_id, proposed_by, slots, reason, created_at
         FROM slot_proposals WHERE id=$1`, id)
	return scanProposal(row)
}

// Delete removes a resolved proposal inside tx.
func (r *ProposalRepository) Delete(ctx context.Context, tx pgx.Tx, id int) error {
	_, err := tx.Exec(ctx, `DELETE FROM slot_proposals WHERE id=$1`, id)
	return err
}

// CountPending returns the number of proposals awaiting a decision.
func (r *ProposalRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM slot_proposals`).Scan(&count)
	return count, err
}

func scanProposal(row pgx.Row) (*models.SlotProposal, error) {
	var p models.SlotProposal
	var slots []byte
	err := row.Scan(&p.ID, &p.EventID, &p.ProposedBy, &slots, &p.Reason, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(slots, &p.Slots); err != nil {
		return nil, err
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr interface{ SQLState() string }
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}
