package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo users/items if DB is empty (idempotent; safe every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	if err := seedItems(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  profile_image TEXT NOT NULL DEFAULT '',
  points INTEGER NOT NULL DEFAULT 0 CHECK (points >= 0),
  role TEXT NOT NULL CHECK (role IN ('user','admin')),
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Items
CREATE TABLE IF NOT EXISTS items(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL,
  type TEXT NOT NULL DEFAULT '',
  size TEXT NOT NULL DEFAULT '',
  condition TEXT NOT NULL CHECK (condition IN ('Like New','Excellent','Good','Fair')),
  tags_json TEXT NOT NULL DEFAULT '[]',
  images_json TEXT NOT NULL DEFAULT '[]',
  point_value INTEGER NOT NULL CHECK (point_value > 0),
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','available','swapped')),
  uploader_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  uploader_name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_items_status     ON items(status);
CREATE INDEX IF NOT EXISTS idx_items_category   ON items(category);
CREATE INDEX IF NOT EXISTS idx_items_uploader   ON items(uploader_id);
CREATE INDEX IF NOT EXISTS idx_items_created_at ON items(created_at);

-- Swap requests
CREATE TABLE IF NOT EXISTS swap_requests(
  id TEXT PRIMARY KEY,
  requester_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  requester_name TEXT NOT NULL,
  item_id TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
  item_title TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','approved','rejected','completed')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_swaps_requester ON swap_requests(requester_id);
CREATE INDEX IF NOT EXISTS idx_swaps_item      ON swap_requests(item_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures the demo accounts exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Username, Email, Role string
		Points                    int
	}
	users := []u{
		{"u-fashionlover", "fashionlover", "fashion@example.com", "user", 250},
		{"u-stylequeen", "stylequeen", "style@example.com", "user", 180},
		{"u-admin", "admin", "admin@rewear.test", "admin", 1000},
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		h, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), 12)
		if _, err := tx.Exec(`
			INSERT INTO users(id,username,email,points,role,password_hash)
			VALUES(?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Username, x.Email, x.Points, x.Role, string(h)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// seedItems inserts the demo listings if the catalog is empty.
func seedItems(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM items`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo listings")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO items
	  (id,title,description,category,type,size,condition,tags_json,images_json,point_value,status,uploader_id,uploader_name,created_at) VALUES
	  ('item-denim-jacket','Vintage Denim Jacket',
	   'Beautiful vintage denim jacket in excellent condition. Perfect for layering and adding a retro touch to any outfit.',
	   'Outerwear','Jacket','M','Excellent','["vintage","denim","casual"]',
	   '["https://images.pexels.com/photos/1043474/pexels-photo-1043474.jpeg"]',
	   45,'available','u-fashionlover','fashionlover','2024-01-15'),
	  ('item-floral-dress','Floral Summer Dress',
	   'Light and airy summer dress with beautiful floral pattern. Made from breathable cotton blend.',
	   'Dresses','Summer Dress','S','Good','["floral","summer","elegant"]',
	   '["https://images.pexels.com/photos/985635/pexels-photo-985635.jpeg"]',
	   35,'available','u-stylequeen','stylequeen','2024-01-18'),
	  ('item-white-sneakers','Classic White Sneakers',
	   'Clean, minimalist white sneakers that go with everything. Barely worn and in great condition.',
	   'Shoes','Sneakers','9','Like New','["sneakers","white","minimalist"]',
	   '["https://images.pexels.com/photos/2529148/pexels-photo-2529148.jpeg"]',
	   40,'available','u-stylequeen','stylequeen','2024-01-20')`)

	return tx.Commit()
}
