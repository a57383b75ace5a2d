package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher_Cost(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"zero selects default", 0, bcrypt.DefaultCost},
		{"below minimum", bcrypt.MinCost - 1, bcrypt.DefaultCost},
		{"above maximum", bcrypt.MaxCost + 1, bcrypt.DefaultCost},
		{"custom", bcrypt.MinCost, bcrypt.MinCost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewBcryptHasher(tc.in).cost; got != tc.want {
				t.Fatalf("unexpected cost: %d", got)
			}
		})
	}
}

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "" || hash == "secret" {
		t.Fatalf("unexpected hash %q", hash)
	}
	if err := hasher.Compare(hash, "secret"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); err == nil {
		t.Fatal("expected compare error for wrong password")
	}
}

func TestBcryptHasher_RejectsLongPassword(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	if _, err := hasher.Hash(strings.Repeat("x", 73)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestBcryptHasher_HashError(t *testing.T) {
	hasher := &BcryptHasher{cost: bcrypt.MaxCost + 1}
	if _, err := hasher.Hash("password"); err == nil {
		t.Fatal("expected hash error for invalid cost")
	}
}
