package gate

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/url"
	"strings"
)

// ReferenceDigest is the lowercase hex SHA-256 of the admin password.
// Override at link time with -ldflags "-X .../internal/gate.ReferenceDigest=...".
var ReferenceDigest = "372698ec836c29a92e938223c5fb64c26be26cc4fc8e2041b501fdd5b390ebf3"

// SecureTransport reports whether baseURL is https or points at a loopback
// host. An unparsable URL is not secure.
func SecureTransport(baseURL string) bool {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.EqualFold(u.Scheme, "https") {
		return true
	}
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// AdminGate checks the shared admin password.
type AdminGate struct {
	reference string
	secure    bool
}

// NewAdminGate returns a gate comparing against reference. secure reports
// whether the digest facility is available (see SecureTransport).
func NewAdminGate(reference string, secure bool) *AdminGate {
	return &AdminGate{reference: strings.ToLower(reference), secure: secure}
}

// Digest returns the lowercase hex SHA-256 of password.
func (g *AdminGate) Digest(password string) (string, error) {
	if !g.secure {
		return "", ErrInsecureContext
	}
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

// Login returns s with Admin set when password matches. A mismatch
// returns ErrIncorrectPassword and leaves s unchanged; a digest failure
// returns ErrInsecureContext.
func (g *AdminGate) Login(s Session, password string) (Session, error) {
	d, err := g.Digest(password)
	if err != nil {
		return s, err
	}
	if d != g.reference {
		return s, ErrIncorrectPassword
	}
	s.Admin = true
	return s, nil
}
