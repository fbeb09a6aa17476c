package identity

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var ErrNoLaunchUser = errors.New("launch params carry no user id")

// LaunchParamsBridge reads the user from the launch parameters the host
// platform passes to an embedded app (vk_user_id=...&vk_app_id=...).
// First and last name are optional extras, not sent by the platform itself.
type LaunchParamsBridge struct {
	raw    string
	params url.Values
}

func NewLaunchParamsBridge(rawQuery string) *LaunchParamsBridge {
	return &LaunchParamsBridge{
		raw: rawQuery,
	}
}

func (b *LaunchParamsBridge) Init(_ context.Context) error {
	raw := strings.TrimPrefix(strings.TrimSpace(b.raw), "?")
	if raw == "" {
		return ErrNoLaunchUser
	}
	params, err := url.ParseQuery(raw)
	if err != nil {
		return fmt.Errorf("parse launch params: %w", err)
	}
	if params.Get("vk_user_id") == "" {
		return ErrNoLaunchUser
	}
	b.params = params
	return nil
}

func (b *LaunchParamsBridge) UserInfo(_ context.Context) (*User, error) {
	if b.params == nil {
		return nil, ErrNotInitialized
	}

	id, err := strconv.ParseInt(b.params.Get("vk_user_id"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse vk_user_id: %w", err)
	}

	return &User{
		ID:        id,
		FirstName: b.params.Get("first_name"),
		LastName:  b.params.Get("last_name"),
		Photo100:  b.params.Get("photo_100"),
		Photo200:  b.params.Get("photo_200"),
	}, nil
}
