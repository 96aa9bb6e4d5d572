package models

import (
	"time"

	"github.com/google/uuid"
)

// Spark - эфемерная гео-привязанная группа. Живет ровно 24 часа
// с момента создания, после этого выметается вместе с сообщениями.
type Spark struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Lat              float64   `json:"lat"`
	Lng              float64   `json:"lng"`
	AnonymousAllowed bool      `json:"anonymous_allowed"`
	Icebreaker       string    `json:"icebreaker,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// Live сообщает, жив ли спарк на момент now.
func (s *Spark) Live(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
