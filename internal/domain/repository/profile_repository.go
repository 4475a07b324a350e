package repository

import (
	"github.com/diillson/printer-tco-cli/internal/domain/entity"
)

// ProfileRepository defines the interface for flat-file profile persistence.
type ProfileRepository interface {
	// Save grava o perfil inteiro, sobrescrevendo qualquer conteúdo existente.
	Save(profile entity.Profile) error
	// Load devolve ErrProfileNotFound quando o arquivo não existe e
	// ErrCorruptProfile quando o conteúdo não pode ser interpretado.
	Load(name string) (entity.Profile, error)
	List() ([]string, error)
}
