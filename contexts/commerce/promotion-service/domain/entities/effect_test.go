package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBasketDiscountPercentageUsesProductLines(t *testing.T) {
	effect := Effect{Kind: EffectBasketDiscountPercentage, Percentage: dec("0.10")}
	basket := BasketEnv{
		Lines: []BasketLine{
			productLine("l1", "p1", "", "2", "50"),
			{LineID: "l2", Type: LineTypeShipping, Quantity: dec("1"), BaseUnitPrice: dec("9")},
		},
	}

	discount, err := effect.BasketDiscount(basket, "")
	if err != nil {
		t.Fatalf("basket discount failed: %v", err)
	}
	if !discount.Equal(dec("10")) {
		t.Fatalf("expected 10, got %s", discount)
	}
}

func TestUndiscountedPercentageSkipsCatalogDiscountedLines(t *testing.T) {
	effect := Effect{Kind: EffectUndiscountedPercentage, Percentage: dec("0.20")}
	basket := BasketEnv{
		Lines: []BasketLine{
			productLine("l1", "p1", "", "1", "100"),
			productLine("l2", "p2", "", "1", "60"),
		},
		CatalogDiscountedLineIDs: map[string]bool{"l2": true},
	}

	discount, err := effect.BasketDiscount(basket, "")
	if err != nil {
		t.Fatalf("basket discount failed: %v", err)
	}
	if !discount.Equal(dec("20")) {
		t.Fatalf("expected base to exclude catalog-discounted line, got %s", discount)
	}
}

func TestLineEffectHigherDiscountWins(t *testing.T) {
	lines := []BasketLine{productLine("l1", "p1", "", "2", "50")}
	lines[0].DiscountAmount = dec("30")

	smaller := Effect{Kind: EffectDiscountFromProducts, Amount: dec("10"), PerLineDiscount: true, ProductIDs: []string{"p1"}}
	if err := smaller.ApplyToLines(lines, ""); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !lines[0].DiscountAmount.Equal(dec("30")) {
		t.Fatalf("expected existing larger discount to survive, got %s", lines[0].DiscountAmount)
	}

	larger := Effect{Kind: EffectDiscountFromProducts, Amount: dec("40"), PerLineDiscount: true, ProductIDs: []string{"p1"}}
	if err := larger.ApplyToLines(lines, ""); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !lines[0].DiscountAmount.Equal(dec("40")) {
		t.Fatalf("expected larger discount to replace, got %s", lines[0].DiscountAmount)
	}
}

func TestLineEffectClampsToLineTotal(t *testing.T) {
	lines := []BasketLine{productLine("l1", "p1", "", "1", "25")}
	effect := Effect{Kind: EffectDiscountFromProducts, Amount: dec("100"), PerLineDiscount: true, ProductIDs: []string{"p1"}}

	if err := effect.ApplyToLines(lines, ""); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !lines[0].DiscountAmount.Equal(dec("25")) {
		t.Fatalf("expected discount clamped to base total, got %s", lines[0].DiscountAmount)
	}
	if lines[0].Total().IsNegative() {
		t.Fatalf("line total went negative: %s", lines[0].Total())
	}
}

func TestPerUnitDiscountMultipliesQuantity(t *testing.T) {
	lines := []BasketLine{productLine("l1", "p1", "", "3", "50")}
	effect := Effect{Kind: EffectDiscountFromProducts, Amount: dec("5"), ProductIDs: []string{"p1"}}

	if err := effect.ApplyToLines(lines, ""); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !lines[0].DiscountAmount.Equal(dec("15")) {
		t.Fatalf("expected 5 per unit over 3 units, got %s", lines[0].DiscountAmount)
	}
}

func TestCategoryLineEffectPercentage(t *testing.T) {
	lines := []BasketLine{
		productLine("l1", "p1", "", "2", "50", "cat-sale"),
		productLine("l2", "p2", "", "1", "80", "cat-other"),
	}
	effect := Effect{Kind: EffectDiscountFromCategoryProducts, Percentage: dec("0.25"), CategoryID: "cat-sale"}

	if err := effect.ApplyToLines(lines, ""); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !lines[0].DiscountAmount.Equal(dec("25")) {
		t.Fatalf("expected 25%% of 100, got %s", lines[0].DiscountAmount)
	}
	if !lines[1].DiscountAmount.Equal(decimal.Zero) {
		t.Fatalf("expected other category untouched, got %s", lines[1].DiscountAmount)
	}
}

func TestCategoryEffectRejectsAmountAndPercentageTogether(t *testing.T) {
	effect := Effect{Kind: EffectDiscountFromCategoryProducts, Amount: dec("5"), Percentage: dec("0.10"), CategoryID: "cat"}
	if err := effect.Validate(); err == nil {
		t.Fatalf("expected validation error for amount plus percentage")
	}
}

func TestProductDiscountPercentageOverHundredClampsToBase(t *testing.T) {
	effect := Effect{Kind: EffectProductDiscountPercentage, Percentage: dec("1.5")}
	discount, err := effect.ProductDiscount(dec("200"))
	if err != nil {
		t.Fatalf("product discount failed: %v", err)
	}
	if !discount.Equal(dec("200")) {
		t.Fatalf("expected clamp to base price, got %s", discount)
	}
}

func TestFullPercentageDrivesPriceToZero(t *testing.T) {
	effect := Effect{Kind: EffectBasketDiscountPercentage, Percentage: dec("1.0")}
	basket := BasketEnv{Lines: []BasketLine{productLine("l1", "p1", "", "1", "200")}}

	discount, err := effect.BasketDiscount(basket, "")
	if err != nil {
		t.Fatalf("basket discount failed: %v", err)
	}
	total := basket.TotalProductAmount("").Sub(ClampDiscount(basket.TotalProductAmount(""), discount))
	if !total.Equal(decimal.Zero) {
		t.Fatalf("expected 100%% discount to zero the total, got %s", total)
	}
}

func TestMinimumPriceClamp(t *testing.T) {
	line := productLine("l1", "p1", "", "2", "50")
	line.DiscountAmount = dec("90")
	minimum := dec("10")

	ClampToMinimumPrice(&line, &minimum)
	if !line.DiscountAmount.Equal(dec("80")) {
		t.Fatalf("expected discount reduced to base minus minimum, got %s", line.DiscountAmount)
	}
	if !line.Total().Equal(dec("20")) {
		t.Fatalf("expected final total at minimum, got %s", line.Total())
	}
}

func TestMinimumPriceClampLeavesCompliantLines(t *testing.T) {
	line := productLine("l1", "p1", "", "1", "50")
	line.DiscountAmount = dec("10")
	minimum := dec("20")

	ClampToMinimumPrice(&line, &minimum)
	if !line.DiscountAmount.Equal(dec("10")) {
		t.Fatalf("expected compliant discount untouched, got %s", line.DiscountAmount)
	}
}
