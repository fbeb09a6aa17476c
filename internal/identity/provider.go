package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"
)

const (
	HeaderUserID   = "X-VK-User-ID"
	HeaderUserData = "X-VK-User-Data"
)

// Provider supplies the current user identity, falling back to the demo
// user when the bridge can not be used.
type Provider struct {
	bridge Bridge

	mu          sync.RWMutex
	initialized bool
	demo        bool
	user        *User
}

func NewProvider(bridge Bridge) *Provider {
	return &Provider{
		bridge: bridge,
	}
}

// Initialize runs the bridge handshake once and fetches the user. It never
// fails: bridge errors switch the provider into demo mode.
func (p *Provider) Initialize(ctx context.Context) (*User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		u := *p.user
		return &u, nil
	}

	user, err := p.fromBridge(ctx)
	if err != nil {
		log.Warnf("identity bridge not available, using demo mode: %s", err)
		demo := DemoUser()
		user = &demo
		p.demo = true
	} else {
		log.Debugf("identity bridge initialized, user: %d", user.ID)
	}

	p.user = user
	p.initialized = true

	u := *user
	return &u, nil
}

func (p *Provider) fromBridge(ctx context.Context) (*User, error) {
	if p.bridge == nil {
		return nil, fmt.Errorf("no bridge")
	}
	if err := p.bridge.Init(ctx); err != nil {
		return nil, fmt.Errorf("bridge init: %w", err)
	}
	user, err := p.bridge.UserInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("bridge user info: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("bridge returned no user")
	}
	return user, nil
}

func (p *Provider) CurrentUser() (*User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.user == nil {
		return nil, false
	}
	u := *p.user
	return &u, true
}

// IsDemo reports whether the provider fell back to the demo user.
func (p *Provider) IsDemo() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.demo
}

// Headers returns the identity headers attached to every remote store call.
func (p *Provider) Headers() (http.Header, error) {
	user, ok := p.CurrentUser()
	if !ok {
		return nil, ErrNotInitialized
	}

	userData, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("marshal user data: %w", err)
	}

	h := http.Header{}
	h.Set(HeaderUserID, strconv.FormatInt(user.ID, 10))
	h.Set(HeaderUserData, string(userData))
	h.Set("Content-Type", "application/json")
	return h, nil
}
