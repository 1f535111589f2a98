package repos

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"rewear/internal/domain"
)

var (
	// ErrItemUnavailable is returned when a status-guarded item update
	// matches no row (item gone or already pending/swapped).
	ErrItemUnavailable = errors.New("item not available")
	// ErrNotPending is returned when acting on a swap request that has
	// already been resolved.
	ErrNotPending = errors.New("swap request is not pending")
)

type SwapRepo struct{ db *sqlx.DB }

func NewSwapRepo(db *sqlx.DB) *SwapRepo { return &SwapRepo{db: db} }

const swapCols = `id, requester_id, requester_name, item_id, item_title, status, created_at`

// SwapRow is a swap request joined with the listing owner, used for
// authorization checks on approve/reject.
type SwapRow struct {
	domain.SwapRequest
	UploaderID string `db:"uploader_id"`
	PointValue int    `db:"point_value"`
}

func (r *SwapRepo) Create(req domain.SwapRequest) error {
	_, err := r.db.Exec(`
	  INSERT INTO swap_requests(id, requester_id, requester_name, item_id, item_title, status, created_at)
	  VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, req.ID, req.RequesterID, req.RequesterName, req.ItemID, req.ItemTitle, req.Status)
	return err
}

func (r *SwapRepo) Get(id string) (SwapRow, error) {
	var row SwapRow
	err := r.db.Get(&row, `
	  SELECT s.id, s.requester_id, s.requester_name, s.item_id, s.item_title, s.status, s.created_at,
	         i.uploader_id, i.point_value
	  FROM swap_requests s
	  JOIN items i ON i.id = s.item_id
	  WHERE s.id = ?
	`, id)
	return row, err
}

// ListByRequester returns a user's outgoing requests, newest first.
func (r *SwapRepo) ListByRequester(userID string) ([]domain.SwapRequest, error) {
	var out []domain.SwapRequest
	err := r.db.Select(&out, `
	  SELECT `+swapCols+` FROM swap_requests
	  WHERE requester_id = ?
	  ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}

// ListForOwner returns the requests against a user's listings, newest first.
func (r *SwapRepo) ListForOwner(ownerID string) ([]domain.SwapRequest, error) {
	var out []domain.SwapRequest
	err := r.db.Select(&out, `
	  SELECT s.id, s.requester_id, s.requester_name, s.item_id, s.item_title, s.status, s.created_at
	  FROM swap_requests s
	  JOIN items i ON i.id = s.item_id
	  WHERE i.uploader_id = ?
	  ORDER BY datetime(s.created_at) DESC
	`, ownerID)
	return out, err
}

// HasOpenRequest reports whether the user already has a pending request
// for the item.
func (r *SwapRepo) HasOpenRequest(itemID, userID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM swap_requests
	  WHERE item_id = ? AND requester_id = ? AND status = 'pending'
	`, itemID, userID)
	return n > 0, err
}

// Reject resolves a pending request without touching the item.
func (r *SwapRepo) Reject(id string) error {
	res, err := r.db.Exec(`
	  UPDATE swap_requests SET status = 'rejected' WHERE id = ? AND status = 'pending'
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotPending
	}
	return nil
}

// Redeem debits the redeemer and marks the item swapped in one
// transaction. Both updates are guarded, so a concurrent reader sees
// either the full pre-redemption or full post-redemption state.
func (r *SwapRepo) Redeem(itemID, redeemerID string, pointValue int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := debit(tx, redeemerID, pointValue); err != nil {
		return err
	}
	if err := markSwapped(tx, itemID); err != nil {
		return err
	}

	return tx.Commit()
}

// Complete resolves an approved swap: the request completes, the item is
// marked swapped, and under the transfer policy the item's point value
// moves from requester to owner. All inside one transaction.
func (r *SwapRepo) Complete(swapID, itemID, requesterID, ownerID string, pointValue int, transferPoints bool) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE swap_requests SET status = 'completed' WHERE id = ? AND status = 'pending'
	`, swapID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotPending
	}

	if err := markSwapped(tx, itemID); err != nil {
		return err
	}

	if transferPoints {
		if err := debit(tx, requesterID, pointValue); err != nil {
			return err
		}
		if _, err := tx.Exec(`
		  UPDATE users SET points = points + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
		`, pointValue, ownerID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func debit(tx *sqlx.Tx, userID string, points int) error {
	res, err := tx.Exec(`
	  UPDATE users SET points = points - ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND points >= ?
	`, points, userID, points)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInsufficientPoints
	}
	return nil
}

func markSwapped(tx *sqlx.Tx, itemID string) error {
	res, err := tx.Exec(`
	  UPDATE items SET status = 'swapped', updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND status = 'available'
	`, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemUnavailable
	}
	return nil
}
