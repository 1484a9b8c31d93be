package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the Redmine URL and API key",
		Long: `Store the Redmine URL and API key in the configuration file.

The URL and key are taken from --url and --api-key (or REDMINE_URL and
REDMINE_API_KEY) and prompted for when missing. The key is checked against
/users/current.json before it is saved.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url := viper.GetString(configKeyURL)
			if url == "" {
				prompted, err := promptURL()
				if err != nil {
					return err
				}

				url = prompted
			}

			apiKey := viper.GetString(configKeyAPIKey)
			if apiKey == "" {
				key, err := promptSecret(cmd, "API key: ")
				if err != nil {
					return err
				}

				apiKey = key
			}

			if apiKey == "" {
				return ErrAPIKeyRequired
			}

			viper.Set(configKeyURL, url)
			viper.Set(configKeyAPIKey, apiKey)

			if !skipVerify {
				client, err := createClient()
				if err != nil {
					return err
				}

				ctx, cancel := commandContext(cmd.Context())
				defer cancel()

				response, err := client.Users().GetCurrent(ctx)
				if err != nil {
					return fmt.Errorf("failed to verify API key: %w", err)
				}

				user, err := decodeEntity[redmine.User](response, "user")
				if err != nil {
					return fmt.Errorf("failed to decode current user: %w", err)
				}

				printSuccess(cmd, "Authenticated as %s (id %d)", user.Login, user.ID)
			}

			config := loadConfig()
			if err := saveConfigStruct(config); err != nil {
				return err
			}

			printSuccess(cmd, "Configuration saved")

			return nil
		},
	}

	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "save without checking the API key")

	return cmd
}

func promptURL() (string, error) {
	if !stdinIsTerminal() {
		return "", ErrURLRequired
	}

	prompt := promptui.Prompt{
		Label: "Redmine URL",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return ErrURLRequired
			}

			return nil
		},
	}

	url, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("failed to read URL: %w", err)
	}

	return strings.TrimSpace(url), nil
}

func promptSecret(cmd *cobra.Command, prompt string) (string, error) {
	if !stdinIsTerminal() {
		return "", ErrNoPromptTerminal
	}

	fd := int(os.Stdin.Fd())

	_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt)

	secret, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	return strings.TrimSpace(string(secret)), nil
}
