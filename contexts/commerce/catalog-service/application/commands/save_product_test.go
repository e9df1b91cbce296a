package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"merx/contexts/commerce/catalog-service/adapters/memory"
	"merx/contexts/commerce/catalog-service/domain/entities"
	domainerrors "merx/contexts/commerce/catalog-service/domain/errors"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// recordingInvalidator captures synchronous invalidation calls and can be
// told to fail them.
type recordingInvalidator struct {
	calls []invalidateCall
	err   error
}

type invalidateCall struct {
	kind     string
	shopID   string
	entityID string
}

func (r *recordingInvalidator) EntityChanged(_ context.Context, kind, shopID, entityID string) error {
	r.calls = append(r.calls, invalidateCall{kind: kind, shopID: shopID, entityID: entityID})
	return r.err
}

func newSaveProductUseCase(store *memory.Store, invalidator *recordingInvalidator) SaveShopProductUseCase {
	return SaveShopProductUseCase{
		Products:    store,
		Invalidator: invalidator,
		Clock:       fixedClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
		IDGen:       store,
	}
}

func TestSaveShopProductPersistsAndInvalidates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	invalidator := &recordingInvalidator{}
	uc := newSaveProductUseCase(store, invalidator)

	saved, err := uc.Execute(ctx, SaveShopProductCommand{Product: entities.ShopProduct{
		ShopID: "s1", ProductID: "p1", Name: "  Widget  ", Visible: true, Purchasable: true,
	}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.ShopProductID == "" {
		t.Fatalf("expected generated shop product id")
	}
	if saved.Name != "Widget" {
		t.Fatalf("expected trimmed name, got %q", saved.Name)
	}
	if len(invalidator.calls) != 1 {
		t.Fatalf("expected one invalidation call, got %d", len(invalidator.calls))
	}
	call := invalidator.calls[0]
	if call.kind != "shop_product" || call.shopID != "s1" || call.entityID != saved.ShopProductID {
		t.Fatalf("unexpected invalidation call: %+v", call)
	}

	if _, err := store.GetShopProduct(ctx, saved.ShopProductID); err != nil {
		t.Fatalf("expected stored product: %v", err)
	}
}

func TestSaveShopProductRejectsInvalidInput(t *testing.T) {
	invalidator := &recordingInvalidator{}
	uc := newSaveProductUseCase(memory.NewStore(), invalidator)

	_, err := uc.Execute(context.Background(), SaveShopProductCommand{Product: entities.ShopProduct{
		ShopID: "s1", ProductID: "", Name: "No product id",
	}})
	if !errors.Is(err, domainerrors.ErrInvalidProductInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	if len(invalidator.calls) != 0 {
		t.Fatalf("invalid input must not reach the invalidator")
	}
}

func TestSaveShopProductFailsWhenInvalidationFails(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	invalidator := &recordingInvalidator{err: errors.New("promotion side down")}
	uc := newSaveProductUseCase(store, invalidator)

	_, err := uc.Execute(ctx, SaveShopProductCommand{Product: entities.ShopProduct{
		ShopID: "s1", ProductID: "p1", Name: "Widget",
	}})
	if err == nil {
		t.Fatalf("expected save to surface the invalidation failure")
	}
}

func TestReplaceContactGroupsInvalidates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	invalidator := &recordingInvalidator{}
	uc := ReplaceContactGroupsUseCase{Contacts: store, Invalidator: invalidator}

	if err := uc.Execute(ctx, ReplaceContactGroupsCommand{ShopID: "s1", ContactID: "cust-1", GroupIDs: []string{"g1"}}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	groups, err := store.ContactGroupIDs(ctx, "cust-1")
	if err != nil || len(groups) != 1 || groups[0] != "g1" {
		t.Fatalf("expected rewritten membership, got %v (%v)", groups, err)
	}
	if len(invalidator.calls) != 1 || invalidator.calls[0].kind != "contact_group" {
		t.Fatalf("expected contact group invalidation, got %+v", invalidator.calls)
	}

	if err := uc.Execute(ctx, ReplaceContactGroupsCommand{ShopID: "s1", ContactID: ""}); err == nil {
		t.Fatalf("expected blank contact id to be rejected")
	}
}
