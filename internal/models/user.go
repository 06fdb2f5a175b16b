package models

import (
	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID  `json:"-"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	Other     UserTarget `json:"other"`
}

// UserTarget is the audience profile promos are matched against in the feed.
type UserTarget struct {
	Age     *int    `json:"age,omitempty"`
	Country *string `json:"country,omitempty"`
}
