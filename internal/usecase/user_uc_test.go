package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestUserUC_RegisterOrFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a new user", func(t *testing.T) {
		users := newMemUserRepo()
		uc := NewUserUseCase(users, newTestLogger())

		u, err := uc.RegisterOrFetch(ctx, 555, "jo")
		if err != nil {
			t.Fatalf("RegisterOrFetch: %v", err)
		}
		if u.ID == "" {
			t.Error("expected a generated user id")
		}
		saved, _ := users.FindByTelegramID(ctx, 555)
		if saved == nil || saved.Username != "jo" {
			t.Errorf("user not persisted correctly: %+v", saved)
		}
	})

	t.Run("fetches existing user and refreshes activity", func(t *testing.T) {
		users := newMemUserRepo()
		uc := NewUserUseCase(users, newTestLogger())

		first, _ := uc.RegisterOrFetch(ctx, 555, "old_name")
		stale := first.LastActiveAt.Add(-time.Hour)
		first.LastActiveAt = stale
		users.Save(ctx, first)

		again, err := uc.RegisterOrFetch(ctx, 555, "new_name")
		if err != nil {
			t.Fatal(err)
		}
		if again.ID != first.ID {
			t.Error("expected the same user, got a new one")
		}
		if again.Username != "new_name" {
			t.Errorf("username = %q", again.Username)
		}
		if !again.LastActiveAt.After(stale) {
			t.Error("LastActiveAt was not refreshed")
		}
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		users := newMemUserRepo()
		users.saveErr = errors.New("database is down")
		uc := NewUserUseCase(users, newTestLogger())

		_, err := uc.RegisterOrFetch(ctx, 555, "jo")
		if !errors.Is(err, users.saveErr) {
			t.Fatalf("expected save error, got %v", err)
		}
	})
}
