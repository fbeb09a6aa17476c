package identity

import (
	"context"
	"errors"
)

var ErrNotInitialized = errors.New("user identity not initialized")

// User is the identity handed out by the host platform bridge.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Photo100  string `json:"photo_100,omitempty"`
	Photo200  string `json:"photo_200,omitempty"`
}

// DemoUser is used whenever the bridge is not available, e.g. while
// developing outside of the host platform.
func DemoUser() User {
	return User{
		ID:        123456789,
		FirstName: "Тест",
		LastName:  "Пользователь",
		Photo100:  "",
	}
}

//go:generate mockgen -source=$GOFILE -destination=bridge_mocks_test.go -package=identity_test

// Bridge talks to the host platform and knows who the current user is.
type Bridge interface {
	Init(ctx context.Context) error
	UserInfo(ctx context.Context) (*User, error)
}
