package types

// CLIArgs represents the command-line arguments shared by all subcommands.
type CLIArgs struct {
	ConfigFile    string
	DBPath        string
	ReportName    string
	ReportType    []string
	Dir           string
	CoverageBW    *float64
	CoverageColor *float64
	ColorShare    *float64
	Propagation   string
	ProfileDir    string
}
