package calc

import (
	"github.com/diillson/printer-tco-cli/internal/domain/entity"
	"github.com/diillson/printer-tco-cli/internal/shared/types"
)

// PropagateCyan mirrors the cyan cartridge price into the magenta and yellow
// channels of a color printer. Only the price is mirrored: a target channel that
// already carries its own yield keeps it, otherwise it inherits the cyan yield.
//
// Canais marcados como editados pelo usuário nunca são sobrescritos. A função
// altera apenas o registro em memória; nada é persistido aqui.
func PropagateCyan(p *entity.Printer) ([]entity.Channel, error) {
	if !p.IsColor {
		return nil, nil
	}

	cyan, ok := p.Cartridge(entity.Cyan)
	if !ok {
		return nil, types.ErrMissingCartridge
	}

	var changed []entity.Channel
	for _, ch := range []entity.Channel{entity.Magenta, entity.Yellow} {
		existing, present := p.Cartridge(ch)
		if present && existing.Edited {
			continue
		}

		next := entity.Cartridge{Price: cyan.Price, YieldPages: cyan.YieldPages}
		if present && existing.YieldPages > 0 {
			next.YieldPages = existing.YieldPages
		}

		if present && existing == next {
			continue
		}
		p.SetCartridge(ch, next)
		changed = append(changed, ch)
	}
	return changed, nil
}
