package entity

import "fmt"

// Channel identifies one of the four cartridge colors of a printer.
type Channel string

const (
	Black   Channel = "black"
	Cyan    Channel = "cyan"
	Magenta Channel = "magenta"
	Yellow  Channel = "yellow"
)

// ColorChannels lista os canais de cor na ordem usada pelos cálculos e relatórios.
var ColorChannels = []Channel{Cyan, Magenta, Yellow}

// AllChannels lista todos os canais na ordem de exibição.
var AllChannels = []Channel{Black, Cyan, Magenta, Yellow}

// ParseChannel converte a entrada do usuário em um Channel conhecido.
func ParseChannel(s string) (Channel, error) {
	switch Channel(s) {
	case Black, Cyan, Magenta, Yellow:
		return Channel(s), nil
	}
	return "", fmt.Errorf("unknown channel %q (expected black, cyan, magenta or yellow)", s)
}
