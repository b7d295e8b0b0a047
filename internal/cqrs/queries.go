package cqrs

// GetUserQuery fetches a single user by ID.
type GetUserQuery struct {
	UserID int64
}

// ListUsersQuery fetches every user in insertion order.
type ListUsersQuery struct{}
