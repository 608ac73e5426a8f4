package domain

import "time"

// SessionPayload is the identity carried by a session token.
type SessionPayload struct {
	UserID     string    `json:"userId"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Verified   bool      `json:"verified"`
	Phone      string    `json:"phone,omitempty"`
	ProfilePic string    `json:"profilePic,omitempty"`
	Address    string    `json:"address,omitempty"`
	Role       string    `json:"role"`
	IssuedAt   time.Time `json:"iat"`
	ExpiresAt  time.Time `json:"exp"`
}

func (s *SessionPayload) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Reasons attached to session.changed events.
const (
	SessionCreated = "created"
	SessionDeleted = "deleted"
)
