package azure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"gopkg.in/ini.v1"
)

const (
	DefaultProfile = "default"
)

type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Credentials  azcore.TokenCredential
}

func LoadConfig(ctx context.Context, profile string) (*Config, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	config := &Config{}

	// A missing config file or profile is not fatal: without a service
	// principal we authenticate through the Azure CLI session instead.
	if section, err := loadProfile(profile); err == nil {
		config.TenantID = section.Key("tenant").String()
		config.ClientID = section.Key("client_id").String()
		config.ClientSecret = section.Key("client_secret").String()
	}

	credentials, err := getCredentials(config)
	if err != nil {
		return nil, fmt.Errorf("failed to get Azure credentials: %w", err)
	}
	config.Credentials = credentials
	return config, nil
}

func loadProfile(profile string) (*ini.Section, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("unable to get home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".azure", "config")
	cfg, err := ini.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to load Azure config file: %w", err)
	}

	section, err := cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found in Azure config: %w", profile, err)
	}
	return section, nil
}

func getCredentials(cfg *Config) (azcore.TokenCredential, error) {
	if cfg.TenantID != "" && cfg.ClientID != "" && cfg.ClientSecret != "" {
		cred, err := azidentity.NewClientSecretCredential(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create service principal credential: %w", err)
		}
		return cred, nil
	}

	cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{
		TenantID: cfg.TenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure CLI credential: %w", err)
	}
	return cred, nil
}
