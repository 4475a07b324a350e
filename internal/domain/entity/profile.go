package entity

// Profile is a named snapshot of the working set: the coverage scenario plus an
// ordered list of printer records. Loading a profile replaces the working set
// wholesale; there is no partial merge.
type Profile struct {
	Name     string              `json:"name"`
	Coverage CoverageAssumptions `json:"coverage"`
	Printers []Printer           `json:"printers"`
}
