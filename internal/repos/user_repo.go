package repos

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"rewear/internal/domain"
)

// ErrInsufficientPoints is returned when a debit would take a balance
// below zero.
var ErrInsufficientPoints = errors.New("insufficient points")

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, username, email, profile_image, points, role, password_hash`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u *domain.User) error {
	_, err := r.DB.Exec(`
	  INSERT INTO users(id,username,email,profile_image,points,role,password_hash)
	  VALUES(?,?,?,?,?,?,?)
	`, u.ID, u.Username, u.Email, u.ProfileImage, u.Points, u.Role, u.Hash)
	return err
}

// AdjustPoints applies a delta to a balance. The WHERE guard rejects any
// debit that would go negative, matching the points >= 0 invariant.
func (r *UserRepo) AdjustPoints(userID string, delta int) (int, error) {
	res, err := r.DB.Exec(`
	  UPDATE users SET points = points + ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND points + ? >= 0
	`, delta, userID, delta)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, ErrInsufficientPoints
	}
	var balance int
	if err := r.DB.Get(&balance, `SELECT points FROM users WHERE id = ?`, userID); err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id,u.username,u.email,u.profile_image,u.points,u.role,u.password_hash
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

// ListMembers returns non-admin accounts for the admin panel.
func (r *UserRepo) ListMembers() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `
	  SELECT `+userCols+` FROM users WHERE role != 'admin' ORDER BY username
	`)
	return out, err
}

// DeleteUserCascade removes a user together with their sessions, swap
// requests and listings (item rows cascade their own swap requests).
func (r *UserRepo) DeleteUserCascade(userID string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM sessions WHERE user_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM swap_requests WHERE requester_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM swap_requests WHERE item_id IN (SELECT id FROM items WHERE uploader_id=?)`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM items WHERE uploader_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id=?`, userID); err != nil {
		return err
	}

	return tx.Commit()
}
