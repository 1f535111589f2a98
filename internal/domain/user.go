package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	Email        string `db:"email" json:"email"`
	ProfileImage string `db:"profile_image" json:"profileImage"`
	Points       int    `db:"points" json:"points"`
	Role         string `db:"role" json:"role"`
	Hash         string `db:"password_hash" json:"-"`
}
