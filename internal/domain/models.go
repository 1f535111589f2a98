package domain

// Item statuses. A listing starts as "pending" until an admin approves it,
// becomes "available" in the catalog, and ends as "swapped" once redeemed
// or exchanged. There is no transition out of "swapped".
const (
	StatusPending   = "pending"
	StatusAvailable = "available"
	StatusSwapped   = "swapped"
)

// Conditions is the closed condition vocabulary accepted at the boundary.
var Conditions = []string{"Like New", "Excellent", "Good", "Fair"}

// Categories is the closed category set accepted at the boundary.
var Categories = []string{"Outerwear", "Dresses", "Tops", "Bottoms", "Shoes", "Accessories"}

// CategoryAll is the browse sentinel meaning "no category filter".
const CategoryAll = "All"

type Item struct {
	ID          string `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	Category    string `db:"category" json:"category"`
	Type        string `db:"type" json:"type"`
	Size        string `db:"size" json:"size"`
	Condition   string `db:"condition" json:"condition"`
	// Tags and Images are stored as JSON arrays; repos hydrate the slices.
	TagsJSON   string   `db:"tags_json" json:"-"`
	ImagesJSON string   `db:"images_json" json:"-"`
	Tags       []string `db:"-" json:"tags"`
	Images     []string `db:"-" json:"images"`
	PointValue int      `db:"point_value" json:"pointValue"`
	Status     string   `db:"status" json:"status"`
	UploaderID string   `db:"uploader_id" json:"uploaderId"`
	// UploaderName is a one-time snapshot taken at listing time; later
	// username changes do not rewrite it.
	UploaderName string `db:"uploader_name" json:"uploaderName"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
}

// Swap request statuses. Terminal: rejected, completed.
const (
	SwapPending   = "pending"
	SwapApproved  = "approved"
	SwapRejected  = "rejected"
	SwapCompleted = "completed"
)

type SwapRequest struct {
	ID          string `db:"id" json:"id"`
	RequesterID string `db:"requester_id" json:"requesterId"`
	// RequesterName and ItemTitle are snapshots taken at request time.
	RequesterName string `db:"requester_name" json:"requesterName"`
	ItemID        string `db:"item_id" json:"itemId"`
	ItemTitle     string `db:"item_title" json:"itemTitle"`
	Status        string `db:"status" json:"status"`
	CreatedAt     string `db:"created_at" json:"createdAt"`
}

func ValidCondition(s string) bool {
	for _, c := range Conditions {
		if s == c {
			return true
		}
	}
	return false
}

func ValidCategory(s string) bool {
	for _, c := range Categories {
		if s == c {
			return true
		}
	}
	return false
}
