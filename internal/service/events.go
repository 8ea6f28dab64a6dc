package service

import "context"

// UserCreatedEvent is the payload published to the user-info exchange after a
// successful registration and consumed by the cache-population worker.
type UserCreatedEvent struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	UserType string `json:"user_type"`
}

// UserEventPublisher abstracts the message broker from the usecases.
type UserEventPublisher interface {
	PublishUserCreated(ctx context.Context, event UserCreatedEvent) error
}
