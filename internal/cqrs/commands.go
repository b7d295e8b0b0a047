package cqrs

type CreateUserCommand struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserCommand is a partial update: nil fields are not changed.
type UpdateUserCommand struct {
	UserID int64
	Name   *string
	Email  *string
}

type DeleteUserCommand struct {
	UserID int64
}
