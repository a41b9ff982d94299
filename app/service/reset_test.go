package service_test

import (
	"testing"
	"time"

	"github.com/freshmarket/commerce-api/app/service"
)

func TestResetTicketSource_GenerateProducesMatchingDigest(t *testing.T) {
	source := service.NewResetTicketSource(10 * time.Minute)

	ticket, err := source.Generate()
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if ticket.Plaintext == "" || ticket.Digest == "" {
		t.Fatal("expected non-empty plaintext and digest")
	}
	if ticket.Plaintext == ticket.Digest {
		t.Fatal("digest must differ from plaintext")
	}
	if got := source.Digest(ticket.Plaintext); got != ticket.Digest {
		t.Fatalf("re-digesting the plaintext gave %s, want %s", got, ticket.Digest)
	}
	if !ticket.ExpiresAt.After(time.Now()) {
		t.Fatal("expected a future expiry")
	}
}

func TestResetTicketSource_DigestIsDeterministic(t *testing.T) {
	source := service.NewResetTicketSource(time.Minute)

	if source.Digest("token-a") != source.Digest("token-a") {
		t.Fatal("digest of the same input must be stable")
	}
	if source.Digest("token-a") == source.Digest("token-b") {
		t.Fatal("different inputs must not collide")
	}
}

func TestResetTicketSource_TicketsAreUnique(t *testing.T) {
	source := service.NewResetTicketSource(time.Minute)

	first, err := source.Generate()
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	second, err := source.Generate()
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if first.Plaintext == second.Plaintext {
		t.Fatal("two generated tickets must not share a plaintext")
	}
}
