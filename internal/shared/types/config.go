package types

// Modos reconhecidos para a regra de propagação do preço do Cyan.
const (
	PropagationAuto   = "auto"
	PropagationManual = "manual"
)

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	DBPath        string   `json:"db_path" yaml:"db_path" toml:"db_path"`
	ReportName    string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType    []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir           string   `json:"dir" yaml:"dir" toml:"dir"`
	CoverageBW    float64  `json:"coverage_bw" yaml:"coverage_bw" toml:"coverage_bw"`
	CoverageColor float64  `json:"coverage_color" yaml:"coverage_color" toml:"coverage_color"`
	ColorShare    float64  `json:"color_share" yaml:"color_share" toml:"color_share"`
	Propagation   string   `json:"propagation" yaml:"propagation" toml:"propagation"`
	ProfileDir    string   `json:"profile_dir" yaml:"profile_dir" toml:"profile_dir"`
}
