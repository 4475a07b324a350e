package types

import "errors"

var (
	ErrInvalidYield       = errors.New("cartridge yield must be greater than zero")
	ErrMissingCartridge   = errors.New("required cartridge is not registered for this printer")
	ErrCorruptProfile     = errors.New("profile file could not be parsed")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrPrinterNotFound    = errors.New("printer not found")
	ErrNoPrintersSelected = errors.New("no printers selected for comparison")
)
