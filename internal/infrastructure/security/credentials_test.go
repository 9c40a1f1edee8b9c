package security

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/infrastructure/memory"
)

func TestStaticCredentialStore_HashesPlaintextOnce(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	store, err := NewStaticCredentialStore(StaticPrincipal{Username: "Kishore Ram M", Password: "KRM143"}, hasher)
	if err != nil {
		t.Fatalf("NewStaticCredentialStore: %v", err)
	}

	p, err := store.Lookup(context.Background(), "Kishore Ram M")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if p.SecretHash == "KRM143" || !hasher.Verify(p.SecretHash, "KRM143") {
		t.Fatalf("secret must be held as a bcrypt hash")
	}
	if p.Role != domain.RoleUser {
		t.Fatalf("expected default role USER, got %q", p.Role)
	}

	if _, err := store.Lookup(context.Background(), "someone"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestStaticCredentialStore_PreHashed(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, _ := hasher.Hash("s3cret")

	store, err := NewStaticCredentialStore(StaticPrincipal{Username: "u", PasswordHash: hash, Role: domain.RoleAdmin}, hasher)
	if err != nil {
		t.Fatalf("NewStaticCredentialStore: %v", err)
	}
	p, _ := store.Lookup(context.Background(), "u")
	if p.SecretHash != hash || p.Role != domain.RoleAdmin {
		t.Fatalf("unexpected principal %+v", p)
	}
}

func TestStaticCredentialStore_Invalid(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	cases := []StaticPrincipal{
		{Password: "x"},
		{Username: "u"},
		{Username: "u", PasswordHash: "not-a-hash"},
	}
	for _, cfg := range cases {
		if _, err := NewStaticCredentialStore(cfg, hasher); err == nil {
			t.Fatalf("%+v: expected error", cfg)
		}
	}
}

func TestUserCredentialStore_Lookup(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	hash, _ := NewBcryptHasher(bcrypt.MinCost).Hash("pw")
	_, _ = users.Save(ctx, domain.User{ID: 1, Username: "ram", Password: hash})

	store := NewUserCredentialStore(users, "", zerolog.Nop())

	p, err := store.Lookup(ctx, "ram")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if p.Username != "ram" || p.Role != domain.RoleUser || p.SecretHash != hash {
		t.Fatalf("unexpected principal %+v", p)
	}
	if _, err := store.Lookup(ctx, "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
