package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/printer-tco-cli/internal/domain/repository"
	"github.com/diillson/printer-tco-cli/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// DefaultConfig devolve a configuração usada quando nenhum arquivo é informado.
func DefaultConfig() *types.Config {
	return &types.Config{
		DBPath:        "database.db",
		ReportType:    []string{"csv"},
		CoverageBW:    5,
		CoverageColor: 5,
		ColorShare:    50,
		Propagation:   types.PropagationAuto,
		ProfileDir:    "profiles",
	}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := filepath.Ext(filePath)
	fileExtension = strings.ToLower(fileExtension)

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	// Lê o arquivo
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := DefaultConfig()

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	switch config.Propagation {
	case types.PropagationAuto, types.PropagationManual:
	default:
		return nil, fmt.Errorf("unsupported propagation mode %q (expected %s or %s)",
			config.Propagation, types.PropagationAuto, types.PropagationManual)
	}

	return config, nil
}
