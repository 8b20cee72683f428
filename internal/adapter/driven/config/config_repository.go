package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diillson/envcheck-reports/internal/domain/repository"
	"github.com/diillson/envcheck-reports/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Variáveis de ambiente reconhecidas. Elas têm precedência sobre o arquivo.
const (
	EnvServerURL      = "STORAGE_SERVER_URL"
	EnvAccessKey      = "STORAGE_USERNAME"
	EnvSecretKey      = "STORAGE_PASSWORD"
	EnvRegion         = "STORAGE_REGION"
	EnvSkipVerify     = "STORAGE_INSECURE_SKIP_VERIFY"
	EnvBucket         = "ENVCHECKER_STORAGE_BUCKET"
	EnvExpirationDays = "ENVIRONMENT_CHECKER_STORAGE_BUCKET_EXPIRATION_DAYS"
	EnvCloudName      = "ENVIRONMENT_CHECKER_CLOUD_NAME"
	EnvLogLevel       = "ENVIRONMENT_CHECKER_LOG_LEVEL"
	EnvOutputDir      = "ENVIRONMENT_CHECKER_OUTPUT_DIR"
	EnvInitiator      = "ENVIRONMENT_CHECKER_DEFAULT_INITIATOR"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	lookupEnv func(string) (string, bool)
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{lookupEnv: os.LookupEnv}
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

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return &config, nil
}

// Load lê o arquivo (opcional), aplica as variáveis de ambiente e os valores padrão.
func (r *ConfigRepositoryImpl) Load(filePath string) (*types.Config, error) {
	config := &types.Config{}
	if filePath != "" {
		loaded, err := r.LoadConfigFile(filePath)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if err := r.applyEnv(config); err != nil {
		return nil, err
	}
	config.ApplyDefaults()
	return config, nil
}

func (r *ConfigRepositoryImpl) applyEnv(c *types.Config) error {
	str := func(key string, dst *string) {
		if v, ok := r.lookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str(EnvServerURL, &c.Storage.ServerURL)
	str(EnvAccessKey, &c.Storage.AccessKey)
	str(EnvSecretKey, &c.Storage.SecretKey)
	str(EnvRegion, &c.Storage.Region)
	str(EnvBucket, &c.Storage.Bucket)
	str(EnvCloudName, &c.CloudName)
	str(EnvLogLevel, &c.LogLevel)
	str(EnvOutputDir, &c.OutputDir)
	str(EnvInitiator, &c.DefaultInitiator)

	if v, ok := r.lookupEnv(EnvExpirationDays); ok && strings.TrimSpace(v) != "" {
		days, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvExpirationDays, v, err)
		}
		c.ExpirationDays = days
	}
	if v, ok := r.lookupEnv(EnvSkipVerify); ok && strings.TrimSpace(v) != "" {
		skip, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSkipVerify, v, err)
		}
		c.Storage.InsecureSkipVerify = &skip
	}
	return nil
}
