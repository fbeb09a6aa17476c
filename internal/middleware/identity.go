package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	HeaderVKUserID   = "X-VK-User-ID"
	HeaderVKUserData = "X-VK-User-Data"

	// DemoVKUserID is used when a request carries no user id at all.
	DemoVKUserID int64 = 123456789
)

type ctxKey int

const vkUserCtxKey ctxKey = iota

// VKUser is the caller identity, as forwarded by the mini app.
type VKUser struct {
	VKUserID  int64
	FirstName string
	LastName  string
	AvatarURL string
}

func WithVKUser(ctx context.Context, user VKUser) context.Context {
	return context.WithValue(ctx, vkUserCtxKey, user)
}

func VKUserFromContext(ctx context.Context) (VKUser, bool) {
	user, ok := ctx.Value(vkUserCtxKey).(VKUser)
	return user, ok
}

// VKIdentity resolves the caller from the identity headers and stores it in
// the request context. The headers are opaque: nothing is verified here.
func VKIdentity() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.vkIdentity")
			defer span.End()

			if r.Method == http.MethodOptions {
				span.SetStatus(codes.Ok, "options-ok")
				next.ServeHTTP(w, r)
				return
			}

			user := VKUser{VKUserID: DemoVKUserID}
			rawID := strings.TrimSpace(r.Header.Get(HeaderVKUserID))
			if rawID == "" {
				log.Tracef("[vk identity] no user id header on %s, using demo user", r.URL.Path)
			} else {
				id, err := strconv.ParseInt(rawID, 10, 64)
				if err != nil {
					log.Debugf("[vk identity] invalid user id [%s]: %s", rawID, err)
					span.SetStatus(codes.Error, "invalid-user-id")
					pkg.WriteJSONError(w, "invalid user id", http.StatusBadRequest)
					return
				}
				user.VKUserID = id
			}

			parseUserData(r.Header.Get(HeaderVKUserData), &user)

			span.SetAttributes(attribute.Int64("vk_user_id", user.VKUserID))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(WithVKUser(ctx, user)))
		})
	}
}

// parseUserData fills in the profile fields; malformed data is ignored.
func parseUserData(raw string, user *VKUser) {
	if raw == "" {
		return
	}

	var data struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Photo100  string `json:"photo_100"`
	}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		log.Tracef("[vk identity] ignoring malformed user data: %s", err)
		return
	}

	user.FirstName = data.FirstName
	user.LastName = data.LastName
	user.AvatarURL = data.Photo100
}
