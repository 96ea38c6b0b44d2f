package woopra

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"maps"
	"strings"
)

// cookieTokenLength is the width of the cookie token the service expects for email identities.
const cookieTokenLength = 12

var ErrUnsupportedIdentifierKind = errors.New("unsupported identifier kind")

// IdentifierKind selects how a cookie token is derived.
type IdentifierKind int

const (
	// ByEmail hashes the email into the cookie token.
	ByEmail IdentifierKind = iota + 1
	// ByUniqueID uses the caller's id as the cookie token.
	ByUniqueID
)

func (k IdentifierKind) String() string {
	switch k {
	case ByEmail:
		return "email"
	case ByUniqueID:
		return "unique_id"
	}

	return fmt.Sprintf("IdentifierKind(%d)", int(k))
}

// ParseIdentifierKind accepts the wire names "email" and "unique_id".
func ParseIdentifierKind(s string) (IdentifierKind, error) {
	switch s {
	case "email":
		return ByEmail, nil
	case "unique_id":
		return ByUniqueID, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnsupportedIdentifierKind)
}

// Identity is the tracked visitor. Empty strings mean unset.
type Identity struct {
	Kind          IdentifierKind
	CookieToken   string
	Email         string
	RawIdentifier string
	UserAgent     string
	IPAddress     string
	Properties    map[string]any
}

type IdentityOption func(*Identity)

// WithProperties copies props into the identity; later calls merge over earlier ones.
func WithProperties(props map[string]any) IdentityOption {
	return func(i *Identity) {
		maps.Copy(i.Properties, props)
	}
}

func WithIPAddress(ip string) IdentityOption {
	return func(i *Identity) {
		i.IPAddress = ip
	}
}

func WithUserAgent(agent string) IdentityOption {
	return func(i *Identity) {
		i.UserAgent = agent
	}
}

// Identify builds the Identity for value according to kind.
func Identify(kind IdentifierKind, value string, opts ...IdentityOption) (Identity, error) {
	identity := Identity{
		Kind:       kind,
		Properties: make(map[string]any),
	}

	switch kind {
	case ByEmail:
		identity.CookieToken = emailCookieToken(value)
		identity.Email = value
	case ByUniqueID:
		identity.CookieToken = value
		identity.RawIdentifier = value
	default:
		return Identity{}, fmt.Errorf("failed to identify: %s: %w", kind, ErrUnsupportedIdentifierKind)
	}

	for _, opt := range opts {
		opt(&identity)
	}

	return identity, nil
}

func emailCookieToken(email string) string {
	sum := md5.Sum([]byte(email))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))

	return truncate(digest, cookieTokenLength)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
