package session

import (
	"fmt"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
)

const (
	sessionName  = "velvetcharms_session"
	shopperIDKey = "shopper_id"
)

// Manager hands out the anonymous shopper identity that cart and wishlist
// state is persisted under. The id lives in a signed cookie; no account is
// involved.
type Manager struct {
	store sessions.Store
}

func NewManager(secret string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		Secure:   false, // behind TLS termination in production
		SameSite: 2,     // Lax mode
	}

	return &Manager{store: store}
}

// ShopperID returns the shopper id from the cookie, minting and saving a new
// one on first contact.
func (m *Manager) ShopperID(c echo.Context) (string, error) {
	session, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		// A cookie signed with an old secret decodes as an error; fall
		// through and mint a fresh identity instead of failing the request.
		session, _ = m.store.New(c.Request(), sessionName)
	}

	if id, ok := session.Values[shopperIDKey].(string); ok && id != "" {
		return id, nil
	}

	id := ulid.Make().String()
	session.Values[shopperIDKey] = id
	if err := session.Save(c.Request(), c.Response()); err != nil {
		return "", fmt.Errorf("failed to save shopper session: %w", err)
	}
	return id, nil
}

// Destroy forgets the shopper identity.
func (m *Manager) Destroy(c echo.Context) error {
	session, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	session.Options.MaxAge = -1
	delete(session.Values, shopperIDKey)

	if err := session.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
