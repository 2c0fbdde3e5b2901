// Package identity reads the user identity asserted by Google's
// Identity-Aware Proxy. The values are advisory: they are displayed in
// the UI but never gate an operation, so nothing here verifies the JWT
// signature - the proxy in front of the service is the trust boundary.
package identity

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const (
	emailHeader     = "X-Goog-Authenticated-User-Email"
	userIDHeader    = "X-Goog-Authenticated-User-Id"
	assertionHeader = "X-Goog-IAP-JWT-Assertion"

	// IAP prefixes asserted values with the identity provider.
	providerPrefix = "accounts.google.com:"
)

type Identity struct {
	Email  string
	UserID string
}

func (i Identity) Authenticated() bool { return i.Email != "" }

// DisplayEmail is what the sidebar shows when no proxy identity arrived.
func (i Identity) DisplayEmail() string {
	if i.Email == "" {
		return "Not Authenticated"
	}
	return i.Email
}

func (i Identity) DisplayUserID() string {
	if i.UserID == "" {
		return "N/A"
	}
	return i.UserID
}

// FromRequest extracts the IAP identity. Headers are what IAP actually
// injects; query parameters are accepted as a fallback because some
// fronting configurations forward identity that way. The signed JWT
// assertion is the last resort.
func FromRequest(r *http.Request) Identity {
	id := Identity{
		Email:  stripProvider(headerOrQuery(r, emailHeader)),
		UserID: stripProvider(headerOrQuery(r, userIDHeader)),
	}
	if id.Email != "" || id.UserID != "" {
		return id
	}
	if raw := r.Header.Get(assertionHeader); raw != "" {
		return fromAssertion(raw)
	}
	return id
}

func headerOrQuery(r *http.Request, name string) string {
	if v := r.Header.Get(name); v != "" {
		return v
	}
	return r.URL.Query().Get(name)
}

func stripProvider(v string) string {
	return strings.TrimPrefix(v, providerPrefix)
}

// fromAssertion decodes the IAP JWT without verifying it; see the package
// comment for why that is acceptable here.
func fromAssertion(raw string) Identity {
	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return Identity{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}
	}

	var id Identity
	if email, ok := claims["email"].(string); ok {
		id.Email = stripProvider(email)
	}
	if sub, ok := claims["sub"].(string); ok {
		id.UserID = stripProvider(sub)
	}
	return id
}
