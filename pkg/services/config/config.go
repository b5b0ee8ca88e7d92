package config

import (
	"fmt"

	"github.com/de-tools/energy-labeler/pkg/models/domain"
	"github.com/de-tools/energy-labeler/pkg/services/defender"
	"github.com/de-tools/energy-labeler/pkg/services/labeling"
	"github.com/spf13/viper"
)

// Thresholds optionally override the stock grading tables. A table that is
// absent from the file keeps its default.
type Thresholds struct {
	Tenant        []domain.AggregationRule `mapstructure:"tenant"`
	Subscription  []domain.ThresholdRule   `mapstructure:"subscription"`
	ResourceGroup []domain.ThresholdRule   `mapstructure:"resource_group"`
}

type Export struct {
	Path  string   `mapstructure:"path"`
	Kinds []string `mapstructure:"kinds"`
}

type Config struct {
	TenantID               string     `mapstructure:"tenant_id"`
	Profile                string     `mapstructure:"profile"`
	Frameworks             []string   `mapstructure:"frameworks"`
	AllowedSubscriptionIDs []string   `mapstructure:"allowed_subscription_ids"`
	DeniedSubscriptionIDs  []string   `mapstructure:"denied_subscription_ids"`
	IncludeResourceGroups  bool       `mapstructure:"include_resource_groups"`
	Thresholds             Thresholds `mapstructure:"thresholds"`
	Export                 Export     `mapstructure:"export"`
}

func Default() *Config {
	return &Config{
		Frameworks: defender.DefaultFrameworks(),
	}
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse labeler config: %w", err)
	}
	return cfg, nil
}

// Ruleset merges the configured overrides onto the stock tables.
func (c *Config) Ruleset() labeling.Ruleset {
	rules := labeling.DefaultRuleset()
	if len(c.Thresholds.Tenant) > 0 {
		rules.Tenant = c.Thresholds.Tenant
	}
	if len(c.Thresholds.Subscription) > 0 {
		rules.Subscription = c.Thresholds.Subscription
	}
	if len(c.Thresholds.ResourceGroup) > 0 {
		rules.ResourceGroup = c.Thresholds.ResourceGroup
	}
	return rules
}

// Validate rejects a config before any Azure call is made with it.
func (c *Config) Validate() error {
	if len(c.AllowedSubscriptionIDs) > 0 && len(c.DeniedSubscriptionIDs) > 0 {
		return fmt.Errorf("allowed_subscription_ids and denied_subscription_ids are mutually exclusive")
	}
	if len(c.Frameworks) > 0 {
		if err := defender.ValidateFrameworks(c.Frameworks); err != nil {
			return err
		}
	}
	if err := c.Ruleset().Validate(); err != nil {
		return fmt.Errorf("invalid thresholds: %w", err)
	}
	return nil
}
