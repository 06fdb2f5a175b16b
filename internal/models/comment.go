package models

import (
	"time"

	"github.com/google/uuid"
)

type CommentAuthor struct {
	Name      string  `json:"name"`
	Surname   string  `json:"surname"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Comment as returned to clients: author display fields are resolved from
// the users table at read/write time, not stored on the row.
type Comment struct {
	ID       uuid.UUID     `json:"id"`
	Text     string        `json:"text"`
	Date     time.Time     `json:"date"`
	AuthorID uuid.UUID     `json:"-"`
	PromoID  uuid.UUID     `json:"-"`
	Author   CommentAuthor `json:"author"`
}
