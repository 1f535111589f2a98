package services

import (
	"strings"

	"github.com/google/uuid"

	"rewear/internal/domain"
	"rewear/internal/repos"
	"rewear/internal/validate"
)

type ListingService struct {
	Items *repos.ItemRepo
}

func NewListingService(items *repos.ItemRepo) *ListingService {
	return &ListingService{Items: items}
}

// ListingDraft is the caller-supplied part of a new listing.
type ListingDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	Size        string   `json:"size"`
	Condition   string   `json:"condition"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	PointValue  int      `json:"pointValue"`
}

// Create validates a draft and stores it as a pending listing awaiting
// moderation. Validation failures come back as *FieldError.
func (s *ListingService) Create(u *domain.User, d ListingDraft) (*domain.Item, error) {
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	if err := checkDraft(&d); err != nil {
		return nil, err
	}

	it := domain.Item{
		ID:           uuid.NewString(),
		Title:        d.Title,
		Description:  d.Description,
		Category:     d.Category,
		Type:         strings.TrimSpace(d.Type),
		Size:         strings.TrimSpace(d.Size),
		Condition:    d.Condition,
		Tags:         d.Tags,
		Images:       d.Images,
		PointValue:   d.PointValue,
		Status:       domain.StatusPending,
		UploaderID:   u.ID,
		UploaderName: u.Username,
	}
	if err := s.Items.Create(it); err != nil {
		return nil, err
	}
	return &it, nil
}

// Mine returns all of a user's listings regardless of status.
func (s *ListingService) Mine(u *domain.User) ([]domain.Item, error) {
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	return s.Items.ListByUploader(u.ID)
}

func checkDraft(d *ListingDraft) error {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" || len(d.Title) > 80 {
		return &FieldError{Field: "title", Reason: "required, at most 80 characters"}
	}
	d.Description = strings.TrimSpace(d.Description)
	if d.Description == "" || len(d.Description) > 2000 {
		return &FieldError{Field: "description", Reason: "required, at most 2000 characters"}
	}
	if !domain.ValidCategory(d.Category) {
		return &FieldError{Field: "category", Reason: "unknown category"}
	}
	if !domain.ValidCondition(d.Condition) {
		return &FieldError{Field: "condition", Reason: "unknown condition"}
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if !validate.Tags(d.Tags) {
		return &FieldError{Field: "tags", Reason: "at most 10 short tags"}
	}
	if len(d.Images) == 0 {
		return &FieldError{Field: "images", Reason: "at least one image required"}
	}
	for _, img := range d.Images {
		if !validate.Image(img) {
			return &FieldError{Field: "images", Reason: "invalid image reference"}
		}
	}
	if !validate.Points(d.PointValue) {
		return &FieldError{Field: "pointValue", Reason: "must be between 1 and 1000"}
	}
	return nil
}
