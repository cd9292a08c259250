package domain

import "time"

// DefaultTagColor is applied when a tag is created without a color.
const DefaultTagColor = "#ddd"

// Tag is a label attachable to tasks. UserID == nil marks a system tag,
// shared with every user and immutable through the API; otherwise the tag
// belongs to exactly one user.
type Tag struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	UserID    *int64    `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (t *Tag) IsSystem() bool {
	return t.UserID == nil
}

// OwnedBy reports whether the tag is a personal tag of the given user.
func (t *Tag) OwnedBy(userID int64) bool {
	return t.UserID != nil && *t.UserID == userID
}

// VisibleTo reports whether the user may see and reference the tag:
// system tags plus the user's own personal tags.
func (t *Tag) VisibleTo(userID int64) bool {
	return t.IsSystem() || t.OwnedBy(userID)
}
