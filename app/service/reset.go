package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ResetTicket is the credential mailed out by the forgot-password flow.
// Plaintext goes to the user; only Digest is persisted.
type ResetTicket struct {
	Plaintext string
	Digest    string
	ExpiresAt time.Time
}

type ResetTicketSource struct {
	ttl time.Duration
}

func NewResetTicketSource(ttl time.Duration) *ResetTicketSource {
	return &ResetTicketSource{ttl: ttl}
}

func (s *ResetTicketSource) Generate() (*ResetTicket, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}

	plaintext := hex.EncodeToString(secret)
	return &ResetTicket{
		Plaintext: plaintext,
		Digest:    s.Digest(plaintext),
		ExpiresAt: time.Now().Add(s.ttl),
	}, nil
}

// Digest is deterministic so a presented token can be re-digested and
// compared against the stored hash.
func (s *ResetTicketSource) Digest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
