package usecase

import (
	"context"
	"testing"

	"telegram-smm-storefront/internal/domain/model"
)

func testDraft() model.OrderDraft {
	return model.OrderDraft{
		Platform:    "instagram",
		ServiceID:   "svc-42",
		PackageName: "IG Followers 1K",
		PackageRate: "₹1000 per 1000",
		Link:        "https://instagram.com/foo",
		Quantity:    500,
		Amount:      500.00,
	}
}

func TestOrderUC_Submit(t *testing.T) {
	ctx := context.Background()
	orders := newMemOrderRepo()
	uc := NewOrderUseCase(orders, newTestLogger())

	id, err := uc.Submit(ctx, 777, testDraft())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if id == "" {
		t.Fatal("expected an order id")
	}

	saved, err := uc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if saved.Status != model.OrderStatusPending {
		t.Errorf("status = %q, want pending", saved.Status)
	}
	if saved.TelegramID != 777 || saved.Quantity != 500 || saved.Amount != 500.00 {
		t.Errorf("unexpected order: %+v", saved)
	}
}

func TestOrderUC_SubmitRejectsInvalidDraft(t *testing.T) {
	uc := NewOrderUseCase(newMemOrderRepo(), newTestLogger())
	d := testDraft()
	d.Quantity = 0
	if _, err := uc.Submit(context.Background(), 777, d); err == nil {
		t.Fatal("expected error for zero quantity")
	}
}

func TestOrderUC_ListByUser(t *testing.T) {
	ctx := context.Background()
	uc := NewOrderUseCase(newMemOrderRepo(), newTestLogger())

	for i := 0; i < 3; i++ {
		if _, err := uc.Submit(ctx, 777, testDraft()); err != nil {
			t.Fatal(err)
		}
	}
	uc.Submit(ctx, 888, testDraft())

	mine, err := uc.ListByUser(ctx, 777, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 3 {
		t.Fatalf("got %d orders, want 3", len(mine))
	}
}

func TestOrderUC_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	uc := NewOrderUseCase(newMemOrderRepo(), newTestLogger())

	id, _ := uc.Submit(ctx, 777, testDraft())
	if err := uc.UpdateStatus(ctx, id, model.OrderStatusCompleted); err != nil {
		t.Fatal(err)
	}
	saved, _ := uc.Get(ctx, id)
	if saved.Status != model.OrderStatusCompleted {
		t.Errorf("status = %q, want completed", saved.Status)
	}
}
