package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/redmine-client/internal/constants"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
	OutputFormatTable = "table"

	// JSON formatting.
	defaultJSONIndent = 2

	// Configuration keys.
	configKeyURL     = "url"
	configKeyAPIKey  = "api_key"
	configKeyOutput  = "output"
	configKeyQuery   = "query"
	configKeyVerbose = "verbose"
	configKeyLogFile = "log_file"
	configKeyNoColor = "no_color"

	configDirName  = ".redmine"
	configFileName = "config.yml"

	commandTimeout = 2 * constants.DefaultHTTPTimeout
	dateLayout     = "2006-01-02"
)

// Common static errors used throughout the commands package.
var (
	ErrURLRequired      = errors.New("redmine URL is required, run 'redmine login' or pass --url")
	ErrAPIKeyRequired   = errors.New("API key is required, run 'redmine login' or pass --api-key")
	ErrInvalidID        = errors.New("invalid id")
	ErrInvalidOutput    = errors.New("invalid output format")
	ErrSubjectRequired  = errors.New("subject is required")
	ErrProjectRequired  = errors.New("project is required")
	ErrHoursRequired    = errors.New("hours must be greater than zero")
	ErrTargetRequired   = errors.New("either --issue or --project is required")
	ErrTargetConflict   = errors.New("--issue and --project are mutually exclusive")
	ErrNoteRequired     = errors.New("note text is required")
	ErrEmptyFile        = errors.New("file is empty")
	ErrQueryFailed      = errors.New("query failed")
	ErrUnknownResource  = errors.New("unknown resource")
	ErrNoPromptTerminal = errors.New("stdin is not a terminal, pass --api-key")
	ErrNotConfirmed     = errors.New("stdin is not a terminal, pass --force to skip the confirmation")
)

// parseID converts a positional argument into a positive integer id.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, arg)
	}

	return id, nil
}

// splitCSV splits a comma separated flag value, dropping empty entries.
func splitCSV(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}

	return context.WithTimeout(parent, commandTimeout)
}

func nameOf(ref *redmine.IDName) string {
	if ref == nil || ref.Name == "" {
		return NotAvailable
	}

	return ref.Name
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}

	return t.Format(time.RFC3339)
}

func valueOr(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}

// decodeEntity decodes the object stored under key of a singular envelope.
func decodeEntity[T any](envelope redmine.JSON, key string) (*T, error) {
	object, err := redmine.GetObjectByKey(envelope, key)
	if err != nil {
		return nil, err
	}

	var value T
	if err := redmine.Decode(object, &value); err != nil {
		return nil, err
	}

	return &value, nil
}

// decodeCollection decodes the items of a collection envelope.
func decodeCollection[T any](envelope redmine.JSON, key string) ([]T, *redmine.Collection, error) {
	collection, err := redmine.CollectionOf(envelope, key)
	if err != nil {
		return nil, nil, err
	}

	items, err := redmine.DecodeAll[T](collection.Items)
	if err != nil {
		return nil, nil, err
	}

	return items, collection, nil
}

// ConfigureColor turns colored output off when no_color is set.
func ConfigureColor() {
	if viper.GetBool(configKeyNoColor) {
		color.NoColor = true
	}
}

// printSuccess prints a green status line.
func printSuccess(cmd *cobra.Command, format string, args ...any) {
	green := color.New(color.FgGreen).SprintfFunc()
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), green(format, args...))
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirm asks a yes/no question. Anything but yes, including an interrupt,
// counts as no.
func confirm(label string) (bool, error) {
	if !stdinIsTerminal() {
		return false, ErrNotConfirmed
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		return false, nil //nolint:nilerr // promptui reports "no" as an error
	}

	return true, nil
}
