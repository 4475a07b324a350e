package profilestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/diillson/printer-tco-cli/internal/domain/entity"
	"github.com/diillson/printer-tco-cli/internal/domain/repository"
	"github.com/diillson/printer-tco-cli/internal/shared/types"
)

// ProfileRepositoryImpl persiste perfis como arquivos JSON planos, um por perfil.
type ProfileRepositoryImpl struct {
	dir string
}

// NewProfileRepository cria um ProfileRepository sobre o diretório informado.
func NewProfileRepository(dir string) repository.ProfileRepository {
	return &ProfileRepositoryImpl{dir: dir}
}

func (r *ProfileRepositoryImpl) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid profile name %q", name)
	}
	return filepath.Join(r.dir, name+".json"), nil
}

// Save grava o perfil inteiro, sobrescrevendo qualquer arquivo existente.
func (r *ProfileRepositoryImpl) Save(profile entity.Profile) error {
	path, err := r.path(profile.Name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("error creating profile directory '%s': %w", r.dir, err)
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding profile %q: %w", profile.Name, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing profile file: %w", err)
	}
	return nil
}

// Load lê um perfil pelo nome. A memória do chamador só muda se o perfil
// inteiro puder ser lido e interpretado.
func (r *ProfileRepositoryImpl) Load(name string) (entity.Profile, error) {
	path, err := r.path(name)
	if err != nil {
		return entity.Profile{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entity.Profile{}, fmt.Errorf("profile %q: %w", name, types.ErrProfileNotFound)
		}
		return entity.Profile{}, fmt.Errorf("error reading profile file: %w", err)
	}

	var profile entity.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return entity.Profile{}, fmt.Errorf("profile %q: %w: %v", name, types.ErrCorruptProfile, err)
	}
	if profile.Name == "" {
		return entity.Profile{}, fmt.Errorf("profile %q: %w: missing name field", name, types.ErrCorruptProfile)
	}
	return profile, nil
}

// List devolve os nomes dos perfis gravados, em ordem alfabética.
func (r *ProfileRepositoryImpl) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error listing profile directory '%s': %w", r.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}
