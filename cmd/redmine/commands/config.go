package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/redmine-client/internal/constants"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
	"github.com/fivetwenty-io/redmine-client/pkg/redmineclient"
)

// Config is the persisted CLI configuration.
type Config struct {
	URL     string `json:"url,omitempty"      yaml:"url,omitempty"`
	APIKey  string `json:"api_key,omitempty"  yaml:"api_key,omitempty"`
	Output  string `json:"output,omitempty"   yaml:"output,omitempty"`
	LogFile string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
}

func loadConfig() *Config {
	return &Config{
		URL:     viper.GetString(configKeyURL),
		APIKey:  viper.GetString(configKeyAPIKey),
		Output:  viper.GetString(configKeyOutput),
		LogFile: viper.GetString(configKeyLogFile),
	}
}

// ConfigDir returns $HOME/.redmine.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, configDirName), nil
}

func configFilePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, configFileName), nil
}

func saveConfigStruct(config *Config) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// createClient builds a Redmine client from the merged flag, environment and
// file configuration.
func createClient() (redmine.Client, error) {
	config := loadConfig()

	if config.URL == "" {
		return nil, ErrURLRequired
	}

	if config.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	clientConfig := &redmine.Config{
		BaseURL: config.URL,
		APIKey:  config.APIKey,
		Logger:  NewSlogLogger(nil),
		Debug:   viper.GetBool(configKeyVerbose),
	}

	client, err := redmineclient.New(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show the effective Redmine CLI configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config := loadConfig()
			if config.APIKey != "" {
				config.APIKey = maskSecret(config.APIKey)
			}

			return NewPrinter(cmd.OutOrStdout()).Print(config, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")
				_ = table.Append("URL", valueOr(config.URL))
				_ = table.Append("API Key", valueOr(config.APIKey))
				_ = table.Append("Output", valueOr(config.Output))
				_ = table.Append("Log File", valueOr(config.LogFile))
				_ = table.Append("Config File", valueOr(viper.ConfigFileUsed()))

				return nil
			})
		},
	})

	return cmd
}

func maskSecret(secret string) string {
	const visible = 4
	if len(secret) <= visible {
		return "***"
	}

	return "***" + secret[len(secret)-visible:]
}
