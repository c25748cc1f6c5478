package memory

import (
	"context"
	"testing"

	"telegram-smm-storefront/internal/domain/model"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	t.Run("missing session reads as nil", func(t *testing.T) {
		sess, err := store.Get(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if sess != nil {
			t.Fatalf("expected nil session, got %+v", sess)
		}
	})

	t.Run("set then get round-trips a copy", func(t *testing.T) {
		sess := model.NewSession(model.StepAwaitLink)
		sess.Set(model.FieldPlatform, "instagram")
		if err := store.Set(ctx, 1, sess); err != nil {
			t.Fatal(err)
		}

		got, err := store.Get(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if got.Step != model.StepAwaitLink || got.Get(model.FieldPlatform) != "instagram" {
			t.Fatalf("unexpected session: %+v", got)
		}

		// Mutating the returned copy must not leak into the store.
		got.Set(model.FieldLink, "https://instagram.com/x")
		again, _ := store.Get(ctx, 1)
		if again.Get(model.FieldLink) != "" {
			t.Error("store returned a shared session map")
		}
	})

	t.Run("clear then get returns nil again", func(t *testing.T) {
		if err := store.Clear(ctx, 1); err != nil {
			t.Fatal(err)
		}
		sess, _ := store.Get(ctx, 1)
		if sess != nil {
			t.Error("session survived Clear")
		}
	})
}
