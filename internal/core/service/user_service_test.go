package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/infrastructure/memory"
)

func TestUserService_RegisterHashesPassword(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	svc := NewUserService(repo, plainHasher{}, zerolog.Nop())

	u, err := svc.Register(ctx, 1, "ram", "KRM143")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Password != "hash:KRM143" {
		t.Fatalf("expected hashed password, got %q", u.Password)
	}

	stored, found, _ := repo.FindByID(ctx, 1)
	if !found || stored.Password != "hash:KRM143" {
		t.Fatalf("stored record not hashed: %+v", stored)
	}
}

func TestUserService_RegisterConflicts(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository(), plainHasher{}, zerolog.Nop())
	if _, err := svc.Register(ctx, 1, "ram", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Register(ctx, 1, "other", "pw"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("duplicate id: expected ErrUserExists, got %v", err)
	}
	if _, err := svc.Register(ctx, 2, "ram", "pw"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("duplicate username: expected ErrUserExists, got %v", err)
	}
}

// yieldingHasher gives up the processor mid-hash the way a slow bcrypt run
// does, so concurrent registrations interleave between lookup and insert.
type yieldingHasher struct{ plainHasher }

func (h yieldingHasher) Hash(plain string) (string, error) {
	runtime.Gosched()
	return h.plainHasher.Hash(plain)
}

func TestUserService_ConcurrentRegisterSameID(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	svc := NewUserService(repo, yieldingHasher{}, zerolog.Nop())

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded []string
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("user%d", i)
			_, err := svc.Register(ctx, 7, name, "pw")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded = append(succeeded, name)
			case errors.Is(err, domain.ErrUserExists):
				conflicts++
			default:
				t.Errorf("Register %s: %v", name, err)
			}
		}(i)
	}
	wg.Wait()

	if len(succeeded) != 1 || conflicts != n-1 {
		t.Fatalf("expected 1 winner and %d conflicts, got winners=%v conflicts=%d", n-1, succeeded, conflicts)
	}
	stored, found, _ := repo.FindByID(ctx, 7)
	if !found || stored.Username != succeeded[0] {
		t.Fatalf("stored %+v, want the winning registration %s", stored, succeeded[0])
	}
}

func TestUserService_RegisterValidation(t *testing.T) {
	svc := NewUserService(memory.NewUserRepository(), plainHasher{}, zerolog.Nop())
	for _, tc := range []struct {
		id       int
		username string
		password string
	}{{0, "a", "b"}, {1, "", "b"}, {1, "a", ""}} {
		if _, err := svc.Register(context.Background(), tc.id, tc.username, tc.password); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%+v: expected ErrValidation, got %v", tc, err)
		}
	}
}

func TestUserService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository(), plainHasher{}, zerolog.Nop())
	_, _ = svc.Register(ctx, 2, "b", "pw")
	_, _ = svc.Register(ctx, 1, "a", "pw")

	users, err := svc.List(ctx)
	if err != nil || len(users) != 2 {
		t.Fatalf("expected 2 users, got %d (%v)", len(users), err)
	}
	if _, err := svc.Get(ctx, 3); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if u, err := svc.Get(ctx, 1); err != nil || u.Username != "a" {
		t.Fatalf("unexpected user %+v (%v)", u, err)
	}
}
