package repos

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rewear/internal/domain"
)

type ItemRepo struct{ db *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

const itemCols = `
  id, title, description, category, type, size, condition,
  tags_json, images_json, point_value, status, uploader_id, uploader_name,
  created_at`

// List returns a snapshot of every item, all statuses. The browse engine
// does its own status filtering over this snapshot.
func (r *ItemRepo) List() ([]domain.Item, error) {
	var out []domain.Item
	err := r.db.Select(&out, `SELECT`+itemCols+` FROM items ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	hydrateAll(out)
	return out, nil
}

func (r *ItemRepo) Get(id string) (domain.Item, error) {
	var it domain.Item
	err := r.db.Get(&it, `SELECT`+itemCols+` FROM items WHERE id = ?`, id)
	if err != nil {
		return domain.Item{}, err
	}
	hydrate(&it)
	return it, nil
}

func (r *ItemRepo) ListByUploader(userID string) ([]domain.Item, error) {
	var out []domain.Item
	err := r.db.Select(&out, `
	  SELECT`+itemCols+` FROM items
	  WHERE uploader_id = ?
	  ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	hydrateAll(out)
	return out, nil
}

// ListPending returns the moderation queue, oldest first.
func (r *ItemRepo) ListPending() ([]domain.Item, error) {
	var out []domain.Item
	err := r.db.Select(&out, `
	  SELECT`+itemCols+` FROM items
	  WHERE status = 'pending'
	  ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	hydrateAll(out)
	return out, nil
}

func (r *ItemRepo) Create(it domain.Item) error {
	tags, err := json.Marshal(it.Tags)
	if err != nil {
		return err
	}
	images, err := json.Marshal(it.Images)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
	  INSERT INTO items
	    (id, title, description, category, type, size, condition,
	     tags_json, images_json, point_value, status, uploader_id, uploader_name, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, it.ID, it.Title, it.Description, it.Category, it.Type, it.Size, it.Condition,
		string(tags), string(images), it.PointValue, it.Status, it.UploaderID, it.UploaderName)
	return err
}

// Approve moves a pending listing into the catalog. The status guard keeps
// the transition one-way.
func (r *ItemRepo) Approve(id string) error {
	res, err := r.db.Exec(`
	  UPDATE items SET status = 'available', updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND status = 'pending'
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("item %s is not pending review", id)
	}
	return nil
}

// Delete removes a listing outright (admin reject/remove). Swap requests
// against it cascade.
func (r *ItemRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("item %s not found", id)
	}
	return nil
}

func hydrateAll(items []domain.Item) {
	for i := range items {
		hydrate(&items[i])
	}
}

// hydrate decodes the JSON tag/image columns into their slices. Bad rows
// decode to empty slices rather than failing a whole listing page.
func hydrate(it *domain.Item) {
	it.Tags = []string{}
	it.Images = []string{}
	_ = json.Unmarshal([]byte(it.TagsJSON), &it.Tags)
	_ = json.Unmarshal([]byte(it.ImagesJSON), &it.Images)
}
