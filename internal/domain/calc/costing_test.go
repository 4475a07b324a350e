package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/diillson/printer-tco-cli/internal/domain/entity"
	"github.com/diillson/printer-tco-cli/internal/shared/types"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestCostPerPage(t *testing.T) {
	got, err := CostPerPage(entity.Cartridge{Price: 50, YieldPages: 1000})
	if err != nil {
		t.Fatalf("CostPerPage returned error: %v", err)
	}
	nearlyEqual(t, "costPerPage", got, 0.05)
}

func TestCostPerPage_InvalidYield(t *testing.T) {
	for _, yield := range []int{0, -1, -1000} {
		_, err := CostPerPage(entity.Cartridge{Price: 50, YieldPages: yield})
		if !errors.Is(err, types.ErrInvalidYield) {
			t.Fatalf("yield %d: got err %v, want ErrInvalidYield", yield, err)
		}
	}
}

func TestCostPerPageAt_ScalesWithCoverage(t *testing.T) {
	c := entity.Cartridge{Price: 50, YieldPages: 1000}

	atRated, err := CostPerPageAt(c, 5)
	if err != nil {
		t.Fatalf("CostPerPageAt(5) returned error: %v", err)
	}
	doubled, err := CostPerPageAt(c, 10)
	if err != nil {
		t.Fatalf("CostPerPageAt(10) returned error: %v", err)
	}

	nearlyEqual(t, "cost at rated coverage", atRated, 0.05)
	nearlyEqual(t, "cost at doubled coverage", doubled, 0.10)
}

func TestBlendedCostPerPage_MonoPrinter(t *testing.T) {
	p := entity.Printer{
		Model:      "Mono 1000",
		IsColor:    false,
		Cartridges: map[entity.Channel]entity.Cartridge{entity.Black: {Price: 50, YieldPages: 1000}},
	}

	costs, err := BlendedCostPerPage(p, entity.DefaultCoverage())
	if err != nil {
		t.Fatalf("BlendedCostPerPage returned error: %v", err)
	}

	nearlyEqual(t, "bw", costs.BW, 0.05)
	nearlyEqual(t, "color", costs.Color, 0.05)
	nearlyEqual(t, "blended", costs.Blended, 0.05)
}

func TestBlendedCostPerPage_ColorWithFallback(t *testing.T) {
	// Magenta ausente herda preço e reichweite do cyan (primeiro canal de cor presente).
	p := entity.Printer{
		Model:   "Color 2000",
		IsColor: true,
		Cartridges: map[entity.Channel]entity.Cartridge{
			entity.Black:  {Price: 50, YieldPages: 1000},
			entity.Cyan:   {Price: 30, YieldPages: 1500},
			entity.Yellow: {Price: 30, YieldPages: 1000},
		},
	}

	costs, err := BlendedCostPerPage(p, entity.DefaultCoverage())
	if err != nil {
		t.Fatalf("BlendedCostPerPage returned error: %v", err)
	}

	nearlyEqual(t, "bw", costs.BW, 0.05)
	// black 0.05 + cyan 0.02 + magenta(fallback cyan) 0.02 + yellow 0.03
	nearlyEqual(t, "color", costs.Color, 0.12)
	nearlyEqual(t, "blended", costs.Blended, 0.085)
}

func TestBlendedCostPerPage_MissingBlack(t *testing.T) {
	p := entity.Printer{
		Model:      "Color 2000",
		IsColor:    true,
		Cartridges: map[entity.Channel]entity.Cartridge{entity.Cyan: {Price: 30, YieldPages: 1500}},
	}

	_, err := BlendedCostPerPage(p, entity.DefaultCoverage())
	if !errors.Is(err, types.ErrMissingCartridge) {
		t.Fatalf("got err %v, want ErrMissingCartridge", err)
	}
}

func TestBlendedCostPerPage_MissingAllColorChannels(t *testing.T) {
	p := entity.Printer{
		Model:      "Color 2000",
		IsColor:    true,
		Cartridges: map[entity.Channel]entity.Cartridge{entity.Black: {Price: 50, YieldPages: 1000}},
	}

	_, err := BlendedCostPerPage(p, entity.DefaultCoverage())
	if !errors.Is(err, types.ErrMissingCartridge) {
		t.Fatalf("got err %v, want ErrMissingCartridge", err)
	}
}

func TestBlendedCostPerPage_InvalidYieldSurfaces(t *testing.T) {
	p := entity.Printer{
		Model:      "Broken",
		Cartridges: map[entity.Channel]entity.Cartridge{entity.Black: {Price: 50, YieldPages: 0}},
	}

	_, err := BlendedCostPerPage(p, entity.DefaultCoverage())
	if !errors.Is(err, types.ErrInvalidYield) {
		t.Fatalf("got err %v, want ErrInvalidYield", err)
	}
}

func TestBreakEven_ClassicExample(t *testing.T) {
	// 150 + 0.05x = 100 + 0.10x  =>  x = 1000
	rows := []entity.ComparisonRow{
		{PrinterID: 1, Model: "A", PurchasePrice: 100, BlendedCostPerPage: 0.10},
		{PrinterID: 2, Model: "B", PurchasePrice: 150, BlendedCostPerPage: 0.05},
	}

	result := BreakEven(rows)

	if got := result[1]; got != entity.NoBreakEven {
		t.Fatalf("baseline break-even = %d, want NoBreakEven", got)
	}
	if got := result[2]; got != 1000 {
		t.Fatalf("break-even pages = %d, want 1000", got)
	}
}

func TestBreakEven_NoBreakEvenWhenNotCheaperPerPage(t *testing.T) {
	tests := []struct {
		name    string
		blended float64
	}{
		{"equal per-page cost", 0.10},
		{"higher per-page cost", 0.12},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows := []entity.ComparisonRow{
				{PrinterID: 1, PurchasePrice: 100, BlendedCostPerPage: 0.10},
				{PrinterID: 2, PurchasePrice: 150, BlendedCostPerPage: tc.blended},
			}
			if got := BreakEven(rows)[2]; got != entity.NoBreakEven {
				t.Fatalf("break-even = %d, want NoBreakEven", got)
			}
		})
	}
}

func TestBreakEven_EpsilonGuard(t *testing.T) {
	rows := []entity.ComparisonRow{
		{PrinterID: 1, PurchasePrice: 100, BlendedCostPerPage: 0.10},
		{PrinterID: 2, PurchasePrice: 150, BlendedCostPerPage: 0.10 - 1e-12},
	}

	if got := BreakEven(rows)[2]; got != entity.NoBreakEven {
		t.Fatalf("break-even with near-zero cost difference = %d, want NoBreakEven", got)
	}
}

func TestBreakEven_CheaperPurchaseNeverBreaksEven(t *testing.T) {
	// Mais barato na compra e mais barato por página: nunca há ponto de equilíbrio a calcular.
	rows := []entity.ComparisonRow{
		{PrinterID: 1, PurchasePrice: 100, BlendedCostPerPage: 0.10},
		{PrinterID: 2, PurchasePrice: 90, BlendedCostPerPage: 0.05},
	}

	result := BreakEven(rows)
	if got := result[1]; got != entity.NoBreakEven {
		t.Fatalf("row above baseline price but costlier per page = %d, want NoBreakEven", got)
	}
	if got := result[2]; got != entity.NoBreakEven {
		t.Fatalf("baseline = %d, want NoBreakEven", got)
	}
}

func TestBreakEven_RoundsUpFractionalPages(t *testing.T) {
	rows := []entity.ComparisonRow{
		{PrinterID: 1, PurchasePrice: 100, BlendedCostPerPage: 0.10},
		{PrinterID: 2, PurchasePrice: 150.5, BlendedCostPerPage: 0.07},
	}

	// (150.5 - 100) / 0.03 = 1683.33... => 1684
	if got := BreakEven(rows)[2]; got != 1684 {
		t.Fatalf("break-even pages = %d, want 1684", got)
	}
}

func TestBaselineIndex_TieBreaksOnInputOrder(t *testing.T) {
	rows := []entity.ComparisonRow{
		{PrinterID: 7, PurchasePrice: 200},
		{PrinterID: 8, PurchasePrice: 100},
		{PrinterID: 9, PurchasePrice: 100},
	}

	if got := BaselineIndex(rows); got != 1 {
		t.Fatalf("BaselineIndex = %d, want 1", got)
	}
}

func TestBaselineIndex_Empty(t *testing.T) {
	if got := BaselineIndex(nil); got != -1 {
		t.Fatalf("BaselineIndex(nil) = %d, want -1", got)
	}
}
