package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	Email               string    `json:"email" db:"email"`
	PublicAlias         string    `json:"public_alias" db:"public_alias"`
	OptInPublicAnalysis bool      `json:"opt_in_public_analysis" db:"opt_in_public_analysis"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// DisplayAlias returns the public alias, falling back to a short anonymous
// handle derived from the user ID.
func (u User) DisplayAlias() string {
	if u.PublicAlias != "" {
		return u.PublicAlias
	}
	return "User " + u.ID.String()[:8]
}
