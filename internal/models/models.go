package models

import "time"

// User is the single record kept by the directory.
// Password is stored as given and never serialised to API responses.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// UserPatch carries a partial update. Nil fields are left untouched.
type UserPatch struct {
	Name  *string
	Email *string
}

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil
}
