package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/rs/zerolog"

	"github.com/krm/catalog-api/internal/core/domain"
)

type stubCredentialStore struct {
	principals map[string]domain.Principal
	err        error
}

func (s *stubCredentialStore) Lookup(_ context.Context, username string) (domain.Principal, error) {
	if s.err != nil {
		return domain.Principal{}, s.err
	}
	p, ok := s.principals[username]
	if !ok {
		return domain.Principal{}, domain.ErrUserNotFound
	}
	return p, nil
}

// plainHasher treats "hash:<secret>" as the hash of secret.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hash:" + plain, nil }
func (plainHasher) Verify(hash, plain string) bool { return hash == "hash:"+plain }

func newProvider(err error) *AuthProvider {
	store := &stubCredentialStore{
		principals: map[string]domain.Principal{
			"Kishore Ram M": {Username: "Kishore Ram M", SecretHash: "hash:KRM143", Role: domain.RoleUser},
		},
		err: err,
	}
	return NewAuthProvider(store, plainHasher{}, zerolog.Nop())
}

func TestAuthProvider_Authenticate(t *testing.T) {
	cases := []struct {
		name     string
		username string
		secret   string
		wantOK   bool
		wantErr  error
	}{
		{"valid", "Kishore Ram M", "KRM143", true, nil},
		{"wrong secret", "Kishore Ram M", "krm143", false, domain.ErrBadCredentials},
		{"empty secret", "Kishore Ram M", "", false, domain.ErrBadCredentials},
		{"unknown user", "someone", "KRM143", false, domain.ErrUserNotFound},
		{"empty username", "", "KRM143", false, domain.ErrUserNotFound},
		{"username is case sensitive", "kishore ram m", "KRM143", false, domain.ErrUserNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := newProvider(nil).Authenticate(context.Background(), tc.username, tc.secret)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Authenticated() != tc.wantOK {
				t.Fatalf("expected authenticated=%v, got %+v", tc.wantOK, res)
			}
			if !errors.Is(res.Err, tc.wantErr) {
				t.Fatalf("expected reason %v, got %v", tc.wantErr, res.Err)
			}
			if tc.wantOK {
				if res.Principal.Username != tc.username || !slices.Contains(res.Roles, domain.RoleUser) {
					t.Fatalf("unexpected principal %+v", res)
				}
			}
		})
	}
}

func TestAuthProvider_StoreFault(t *testing.T) {
	fault := errors.New("connection reset")
	_, err := newProvider(fault).Authenticate(context.Background(), "Kishore Ram M", "KRM143")
	if !errors.Is(err, fault) {
		t.Fatalf("expected store fault to propagate, got %v", err)
	}
}
