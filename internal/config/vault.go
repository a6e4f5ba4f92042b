package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/YashPatkar/ShortlistAI/internal/errors"

	"github.com/hashicorp/vault/api"
)

// VaultConfig holds Vault connection configuration
type VaultConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"tokenFile"`
	Namespace string `mapstructure:"namespace"`

	// Secret paths
	Secrets VaultSecrets `mapstructure:"secrets"`
}

// VaultSecrets defines where to find secrets in Vault
type VaultSecrets struct {
	// APIKeys expects a single string with comma-separated values in Vault
	APIKeys   string `mapstructure:"apiKeys"`   // Path to server API keys secret
	GeminiKey string `mapstructure:"geminiKey"` // Path to Gemini API key
	TLSCerts  string `mapstructure:"tlsCerts"`  // Path to TLS certificates
}

// VaultClient wraps the Vault API client
type VaultClient struct {
	client *api.Client
	config VaultConfig
	logger *errors.Logger
}

// NewVaultClient creates a new Vault client from configuration.
// Returns (nil, nil) when Vault is disabled.
func NewVaultClient(config VaultConfig, logger *errors.Logger) (*VaultClient, error) {
	if !config.Enabled {
		if logger != nil {
			logger.Debug("Vault integration disabled")
		}
		return nil, nil
	}

	vaultConfig := api.DefaultConfig()
	if config.Address != "" {
		vaultConfig.Address = config.Address
	}

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	if config.Namespace != "" {
		client.SetNamespace(config.Namespace)
	}

	token, err := resolveVaultToken(config)
	if err != nil {
		if logger != nil {
			logger.LogError(err, "Failed to resolve Vault token")
		}
		return nil, err
	}
	client.SetToken(token)

	health, err := client.Sys().Health()
	if err != nil {
		if logger != nil {
			logger.LogError(err, "Failed to connect to Vault", "address", config.Address)
		}
		return nil, fmt.Errorf("failed to connect to vault: %w", err)
	}
	if logger != nil {
		logger.Info("Successfully connected to Vault",
			"address", config.Address,
			"version", health.Version,
			"sealed", health.Sealed)
	}

	return &VaultClient{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// resolveVaultToken resolves the Vault token from config or file
func resolveVaultToken(config VaultConfig) (string, error) {
	token := config.Token

	if token == "" && config.TokenFile != "" {
		tokenBytes, err := os.ReadFile(config.TokenFile)
		if err != nil {
			return "", fmt.Errorf("failed to read vault token file: %w", err)
		}
		token = strings.TrimSpace(string(tokenBytes))
	}

	if token == "" {
		return "", fmt.Errorf("vault token is required when vault is enabled")
	}

	return token, nil
}

// VaultSecret represents a secret read from Vault's KVv2 engine
type VaultSecret struct {
	Data    map[string]any
	Version int64
}

// GetSecretV2 retrieves a secret from a Vault KVv2 store
func (vc *VaultClient) GetSecretV2(path string) (*VaultSecret, error) {
	if vc == nil {
		return nil, fmt.Errorf("vault client not initialized")
	}

	secret, err := vc.client.Logical().Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret from %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("secret not found at path: %s", path)
	}

	data, ok := secret.Data["data"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("secret at %s is not in KVv2 format (missing 'data' field)", path)
	}

	metadata, ok := secret.Data["metadata"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("secret at %s is not in KVv2 format (missing 'metadata' field)", path)
	}
	versionRaw, ok := metadata["version"]
	if !ok {
		return nil, fmt.Errorf("secret metadata at %s is missing 'version' field", path)
	}
	version, err := parseVersionValue(versionRaw, path)
	if err != nil {
		return nil, err
	}

	return &VaultSecret{
		Data:    data,
		Version: version,
	}, nil
}

// parseVersionValue parses version value from the types KVv2 may return
func parseVersionValue(versionRaw any, path string) (int64, error) {
	switch v := versionRaw.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case string:
		version, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse secret version at %s: %w", path, err)
		}
		return version, nil
	default:
		return 0, fmt.Errorf("unexpected type for version at %s: %T", path, versionRaw)
	}
}

// GetStringSecret retrieves a string value from a Vault secret
func (vc *VaultClient) GetStringSecret(path, key string) (string, error) {
	secret, err := vc.GetSecretV2(path)
	if err != nil {
		return "", err
	}
	value, ok := secret.Data[key]
	if !ok {
		return "", fmt.Errorf("key '%s' not found in secret %s", key, path)
	}
	strValue, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("value for key '%s' is not a string in secret %s", key, path)
	}

	if vc.logger != nil {
		maskedValue := "****"
		if len(strValue) > 8 {
			maskedValue = strValue[:4] + "****" + strValue[len(strValue)-4:]
		}
		vc.logger.Debug("String secret retrieved from Vault",
			"path", path,
			"key", key,
			"masked_value", maskedValue)
	}

	return strValue, nil
}

// GetStringSliceSecret retrieves a comma-separated string as a slice from Vault
func (vc *VaultClient) GetStringSliceSecret(path, key string) ([]string, error) {
	value, err := vc.GetStringSecret(path, key)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return []string{}, nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, len(parts))
	for i, part := range parts {
		result[i] = strings.TrimSpace(part)
	}
	return result, nil
}

// ApplyVaultSecrets loads secrets from Vault and applies them to the config
func ApplyVaultSecrets(config *Config, logger *errors.Logger) error {
	if !config.Vault.Enabled {
		return nil
	}

	client, err := NewVaultClient(config.Vault, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize vault client: %w", err)
	}
	if client == nil {
		return nil
	}

	if err := loadAPIKeysFromVault(client, config, logger); err != nil {
		return err
	}
	if err := loadGeminiKeyFromVault(client, config, logger); err != nil {
		return err
	}
	if err := loadTLSCertsFromVault(client, config, logger); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("Successfully completed applying secrets from Vault")
	}
	return nil
}

// loadAPIKeysFromVault loads server API keys from Vault
func loadAPIKeysFromVault(client *VaultClient, config *Config, logger *errors.Logger) error {
	path := config.Vault.Secrets.APIKeys
	if path == "" {
		return nil
	}

	apiKeys, err := client.GetStringSliceSecret(path, "keys")
	if err != nil {
		return fmt.Errorf("failed to load API keys from vault: %w", err)
	}

	if len(apiKeys) > 0 {
		config.Server.APIKeys = apiKeys
		if logger != nil {
			logger.Info("API keys loaded from Vault", "count", len(apiKeys))
		}
	} else if logger != nil {
		logger.Warn("No API keys found in Vault", "path", path)
	}

	return nil
}

// loadGeminiKeyFromVault loads the Gemini API key from Vault
func loadGeminiKeyFromVault(client *VaultClient, config *Config, logger *errors.Logger) error {
	path := config.Vault.Secrets.GeminiKey
	if path == "" {
		return nil
	}

	geminiKey, err := client.GetStringSecret(path, "api_key")
	if err != nil {
		return fmt.Errorf("failed to load Gemini API key from vault: %w", err)
	}

	if geminiKey != "" {
		config.AI.APIKey = geminiKey
		if config.AI.Analyze.APIKey == "" {
			config.AI.Analyze.APIKey = geminiKey
		}
		if config.AI.Classify.APIKey == "" {
			config.AI.Classify.APIKey = geminiKey
		}
		if logger != nil {
			logger.Info("Gemini API key loaded from Vault and applied to all AI configurations")
		}
	} else if logger != nil {
		logger.Warn("Empty Gemini API key found in Vault", "path", path)
	}

	return nil
}

// loadTLSCertsFromVault loads TLS certificate content from Vault
func loadTLSCertsFromVault(client *VaultClient, config *Config, logger *errors.Logger) error {
	path := config.Vault.Secrets.TLSCerts
	if path == "" {
		return nil
	}

	tlsData, err := client.GetSecretV2(path)
	if err != nil {
		return fmt.Errorf("failed to load TLS certificates from vault: %w", err)
	}

	certCount := 0
	fields := []struct {
		key    string
		target *string
	}{
		{"cert", &config.Server.TLS.CertContent},
		{"key", &config.Server.TLS.KeyContent},
		{"ca", &config.Server.TLS.CAContent},
	}
	for _, f := range fields {
		if content, ok := tlsData.Data[f.key].(string); ok && content != "" {
			*f.target = content
			certCount++
		}
	}

	// File paths stored in Vault were supported once; content is the
	// only accepted form now
	for _, field := range []string{"cert_file", "key_file", "ca_file"} {
		if _, hasField := tlsData.Data[field]; hasField {
			return fmt.Errorf("vault TLS configuration error: '%s' field is no longer supported. Store certificate content in '%s' field instead",
				field, strings.TrimSuffix(field, "_file"))
		}
	}

	if logger != nil {
		logger.Info("TLS certificates loaded from Vault", "certificates_loaded", certCount)
	}
	return nil
}
