package entity

// NoBreakEven é o valor sentinela para "nunca compensa": o modelo não alcança
// o custo acumulado da referência em nenhum volume de páginas.
const NoBreakEven int64 = -1

// CoverageAssumptions holds the page coverage scenario used by a comparison.
// Yields are rated at 5% coverage; costs scale linearly with coverage.
type CoverageAssumptions struct {
	CoverageBW    float64 `json:"coverage_bw"`
	CoverageColor float64 `json:"coverage_color"`
	ColorShare    float64 `json:"color_share"`
}

// DefaultCoverage devolve o cenário padrão: 5% S/W, 5% cor, 50% de páginas coloridas.
func DefaultCoverage() CoverageAssumptions {
	return CoverageAssumptions{CoverageBW: 5, CoverageColor: 5, ColorShare: 50}
}

// ComparisonRow represents one printer in a finished cost comparison.
type ComparisonRow struct {
	PrinterID          int64   `json:"printer_id"`
	Model              string  `json:"model"`
	PurchasePrice      float64 `json:"purchase_price"`
	BWCostPerPage      float64 `json:"bw_cost_per_page"`
	ColorCostPerPage   float64 `json:"color_cost_per_page"`
	BlendedCostPerPage float64 `json:"blended_cost_per_page"`
	BreakEvenPages     int64   `json:"break_even_pages"`
	Baseline           bool    `json:"baseline"`
}
