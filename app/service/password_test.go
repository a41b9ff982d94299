package service_test

import (
	"testing"

	"github.com/freshmarket/commerce-api/app/service"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := service.NewPasswordHasher(4)

	digest, err := hasher.Hash("p1secret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "p1secret" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !hasher.Verify("p1secret", digest) {
		t.Fatal("correct password must verify")
	}
	if hasher.Verify("wrong", digest) {
		t.Fatal("wrong password must not verify")
	}
}

func TestPasswordHasher_OutOfRangeCostFallsBack(t *testing.T) {
	hasher := service.NewPasswordHasher(99)

	digest, err := hasher.Hash("p1secret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !hasher.Verify("p1secret", digest) {
		t.Fatal("hash produced with fallback cost must verify")
	}
}
