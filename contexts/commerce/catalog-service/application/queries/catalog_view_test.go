package queries

import (
	"context"
	"testing"

	"merx/contexts/commerce/catalog-service/adapters/memory"
	"merx/contexts/commerce/catalog-service/domain/entities"
)

func seedProduct(t *testing.T, store *memory.Store, product entities.ShopProduct) {
	t.Helper()
	if err := store.SaveShopProduct(context.Background(), product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
}

func TestCatalogViewOrderableProjection(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, entities.ShopProduct{
		ShopProductID: "sp-1", ShopID: "s1", ProductID: "p1", Name: "Visible",
		Visible: true, Purchasable: true,
	})
	seedProduct(t, store, entities.ShopProduct{
		ShopProductID: "sp-2", ShopID: "s1", ProductID: "p2", Name: "Hidden",
		Visible: false, Purchasable: true,
	})
	uc := CatalogViewUseCase{Products: store}

	view, found, err := uc.ByShopProduct(ctx, "sp-1")
	if err != nil || !found {
		t.Fatalf("expected view, got found=%v err=%v", found, err)
	}
	if !view.Orderable {
		t.Fatalf("expected visible purchasable product to be orderable")
	}

	view, found, err = uc.ByShopProduct(ctx, "sp-2")
	if err != nil || !found {
		t.Fatalf("expected view, got found=%v err=%v", found, err)
	}
	if view.Orderable {
		t.Fatalf("expected invisible product to be unorderable")
	}
}

func TestCatalogViewMissingProductIsNotAnError(t *testing.T) {
	uc := CatalogViewUseCase{Products: memory.NewStore()}

	_, found, err := uc.ByShopProduct(context.Background(), "missing")
	if err != nil {
		t.Fatalf("missing product must answer found=false, not error: %v", err)
	}
	if found {
		t.Fatalf("expected found=false")
	}

	_, found, err = uc.ByProduct(context.Background(), "s1", "missing")
	if err != nil || found {
		t.Fatalf("expected found=false by product, got found=%v err=%v", found, err)
	}
}

func TestCatalogViewChildInheritsParentCategories(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, entities.ShopProduct{
		ShopProductID: "sp-parent", ShopID: "s1", ProductID: "parent", Name: "Parent",
		CategoryIDs: []string{"cat-parent"},
	})
	seedProduct(t, store, entities.ShopProduct{
		ShopProductID: "sp-child", ShopID: "s1", ProductID: "child", ParentProductID: "parent", Name: "Child",
		CategoryIDs: []string{"cat-child"},
	})
	uc := CatalogViewUseCase{Products: store}

	view, found, err := uc.ByShopProduct(ctx, "sp-child")
	if err != nil || !found {
		t.Fatalf("expected child view, got found=%v err=%v", found, err)
	}
	if len(view.CategoryIDs) != 1 || view.CategoryIDs[0] != "cat-child" {
		t.Fatalf("expected own categories preserved, got %v", view.CategoryIDs)
	}
	if len(view.RelatedCategoryIDs) != 1 || view.RelatedCategoryIDs[0] != "cat-parent" {
		t.Fatalf("expected parent categories related, got %v", view.RelatedCategoryIDs)
	}
}

func TestCatalogViewParentUnionsChildCategories(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, entities.ShopProduct{
		ShopProductID: "sp-parent", ShopID: "s1", ProductID: "parent", Name: "Parent",
	})
	seedProduct(t, store, entities.ShopProduct{
		ShopProductID: "sp-a", ShopID: "s1", ProductID: "child-a", ParentProductID: "parent", Name: "A",
		CategoryIDs: []string{"cat-a"},
	})
	seedProduct(t, store, entities.ShopProduct{
		ShopProductID: "sp-b", ShopID: "s1", ProductID: "child-b", ParentProductID: "parent", Name: "B",
		CategoryIDs: []string{"cat-b"},
	})
	uc := CatalogViewUseCase{Products: store}

	view, found, err := uc.ByShopProduct(ctx, "sp-parent")
	if err != nil || !found {
		t.Fatalf("expected parent view, got found=%v err=%v", found, err)
	}
	if len(view.RelatedCategoryIDs) != 2 {
		t.Fatalf("expected both child categories related, got %v", view.RelatedCategoryIDs)
	}
	related := map[string]bool{}
	for _, id := range view.RelatedCategoryIDs {
		related[id] = true
	}
	if !related["cat-a"] || !related["cat-b"] {
		t.Fatalf("expected cat-a and cat-b, got %v", view.RelatedCategoryIDs)
	}
}

func TestCatalogViewOrphanChildKeepsOwnCategories(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, entities.ShopProduct{
		ShopProductID: "sp-child", ShopID: "s1", ProductID: "child", ParentProductID: "gone", Name: "Child",
		CategoryIDs: []string{"cat-child"},
	})
	uc := CatalogViewUseCase{Products: store}

	view, found, err := uc.ByShopProduct(ctx, "sp-child")
	if err != nil || !found {
		t.Fatalf("expected view despite missing parent, got found=%v err=%v", found, err)
	}
	if len(view.RelatedCategoryIDs) != 0 {
		t.Fatalf("expected no related categories, got %v", view.RelatedCategoryIDs)
	}
}

func TestCatalogViewListByShop(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, entities.ShopProduct{ShopProductID: "sp-1", ShopID: "s1", ProductID: "p1", Name: "One"})
	seedProduct(t, store, entities.ShopProduct{ShopProductID: "sp-2", ShopID: "s2", ProductID: "p2", Name: "Other shop"})
	uc := CatalogViewUseCase{Products: store}

	views, err := uc.ListByShop(ctx, "s1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 1 || views[0].ShopProductID != "sp-1" {
		t.Fatalf("expected only s1 products, got %+v", views)
	}
}
