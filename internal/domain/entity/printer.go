package entity

// Cartridge holds price and rated yield for a single consumable channel.
type Cartridge struct {
	Price      float64 `json:"price"`
	YieldPages int     `json:"yield_pages"`
	// Edited marca canais digitados explicitamente pelo usuário; a regra de
	// propagação nunca sobrescreve um canal editado.
	Edited bool `json:"edited,omitempty"`
}

// Printer represents a printer model with its purchase price and consumables.
type Printer struct {
	ID            int64                 `json:"id"`
	Model         string                `json:"model"`
	PurchasePrice float64               `json:"purchase_price"`
	IsColor       bool                  `json:"is_color"`
	Cartridges    map[Channel]Cartridge `json:"cartridges"`
}

// Cartridge devolve o cartucho do canal informado, se registrado.
func (p *Printer) Cartridge(ch Channel) (Cartridge, bool) {
	c, ok := p.Cartridges[ch]
	return c, ok
}

// SetCartridge registra ou substitui o cartucho de um canal.
func (p *Printer) SetCartridge(ch Channel, c Cartridge) {
	if p.Cartridges == nil {
		p.Cartridges = make(map[Channel]Cartridge)
	}
	p.Cartridges[ch] = c
}

// Clone devolve uma cópia profunda do registro, usada por snapshots de perfil.
func (p *Printer) Clone() Printer {
	out := *p
	if p.Cartridges != nil {
		out.Cartridges = make(map[Channel]Cartridge, len(p.Cartridges))
		for ch, c := range p.Cartridges {
			out.Cartridges[ch] = c
		}
	}
	return out
}
