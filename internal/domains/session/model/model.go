package model

import (
	"time"

	"venus/internal/domains/account/model/dto"
)

const EntityName = "session"

// Session holds a copy of the signed-in user's public projection. It is
// refreshed when the user's profile changes.
type Session struct {
	ID        string           `json:"id"`
	User      dto.UserResponse `json:"user"`
	CreatedAt time.Time        `json:"createdAt"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
