package calc

import (
	"math"

	"github.com/diillson/printer-tco-cli/internal/domain/entity"
	"github.com/diillson/printer-tco-cli/internal/shared/types"
)

// ratedCoverage é a cobertura nominal (em %) na qual os fabricantes declaram a
// reichweite dos cartuchos.
const ratedCoverage = 5.0

// costEpsilon guarda divisões por diferenças de custo quase nulas no break-even.
const costEpsilon = 1e-9

// PageCosts contains the per-page cost figures derived for one printer.
type PageCosts struct {
	BW      float64
	Color   float64
	Blended float64
}

// CostPerPage returns the rated cost per page of a cartridge (price / yield).
func CostPerPage(c entity.Cartridge) (float64, error) {
	if c.YieldPages <= 0 {
		return 0, types.ErrInvalidYield
	}
	return c.Price / float64(c.YieldPages), nil
}

// CostPerPageAt escala o custo nominal da página para a cobertura informada.
func CostPerPageAt(c entity.Cartridge, coveragePct float64) (float64, error) {
	rated, err := CostPerPage(c)
	if err != nil {
		return 0, err
	}
	return rated * (coveragePct / ratedCoverage), nil
}

// BlendedCostPerPage derives black-and-white, color and blended per-page costs
// for a printer under the given coverage scenario.
//
// Impressoras coloridas somam o componente preto (na cobertura de cor) aos três
// canais C/M/Y; canais de cor ausentes herdam preço e reichweite do primeiro
// canal de cor presente. Impressoras mono usam o custo S/W também como custo de cor.
func BlendedCostPerPage(p entity.Printer, cov entity.CoverageAssumptions) (PageCosts, error) {
	black, ok := p.Cartridge(entity.Black)
	if !ok {
		return PageCosts{}, types.ErrMissingCartridge
	}

	bwCost, err := CostPerPageAt(black, cov.CoverageBW)
	if err != nil {
		return PageCosts{}, err
	}

	colorCost := bwCost
	if p.IsColor {
		// Primeiro canal de cor presente serve de base para os ausentes.
		var base entity.Cartridge
		baseFound := false
		for _, ch := range entity.ColorChannels {
			if c, ok := p.Cartridge(ch); ok {
				base = c
				baseFound = true
				break
			}
		}
		if !baseFound {
			return PageCosts{}, types.ErrMissingCartridge
		}

		blackAtColor, err := CostPerPageAt(black, cov.CoverageColor)
		if err != nil {
			return PageCosts{}, err
		}

		colorCost = blackAtColor
		for _, ch := range entity.ColorChannels {
			c, ok := p.Cartridge(ch)
			if !ok {
				c = base
			}
			perPage, err := CostPerPageAt(c, cov.CoverageColor)
			if err != nil {
				return PageCosts{}, err
			}
			colorCost += perPage
		}
	}

	share := cov.ColorShare / 100.0
	blended := share*colorCost + (1.0-share)*bwCost

	return PageCosts{BW: bwCost, Color: colorCost, Blended: blended}, nil
}

// BaselineIndex returns the position of the comparison reference: the row with
// the globally minimum purchase price, first in input order on ties. Returns -1
// for an empty input.
func BaselineIndex(rows []entity.ComparisonRow) int {
	idx := -1
	for i, r := range rows {
		if idx < 0 || r.PurchasePrice < rows[idx].PurchasePrice {
			idx = i
		}
	}
	return idx
}

// BreakEven computes, for every row, the page count at which its cumulative cost
// (purchase price + pages x blended cost) equals that of the baseline row.
//
// Um modelo só alcança a referência quando custa mais na compra e menos por
// página; caso contrário (ou quando a diferença de custo fica abaixo do epsilon)
// o resultado é NoBreakEven. A própria referência também recebe NoBreakEven.
func BreakEven(rows []entity.ComparisonRow) map[int64]int64 {
	result := make(map[int64]int64, len(rows))
	base := BaselineIndex(rows)
	if base < 0 {
		return result
	}

	ref := rows[base]
	for i, r := range rows {
		if i == base {
			result[r.PrinterID] = entity.NoBreakEven
			continue
		}

		denom := ref.BlendedCostPerPage - r.BlendedCostPerPage
		if r.PurchasePrice <= ref.PurchasePrice || denom <= costEpsilon {
			result[r.PrinterID] = entity.NoBreakEven
			continue
		}

		pages := math.Ceil((r.PurchasePrice - ref.PurchasePrice) / denom)
		result[r.PrinterID] = int64(pages)
	}
	return result
}
