package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// TableFunc fills a table for the table output format.
type TableFunc func(table *tablewriter.Table) error

// Printer writes command results in the configured output format.
type Printer struct {
	out    io.Writer
	format string
	query  string
}

// NewPrinter returns a printer configured from the output and query settings.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:    out,
		format: strings.ToLower(viper.GetString(configKeyOutput)),
		query:  viper.GetString(configKeyQuery),
	}
}

// Print renders data. A jq query always produces JSON since the result no
// longer has the shape the table expects.
func (p *Printer) Print(data any, fill TableFunc) error {
	if p.query != "" {
		results, err := RunQuery(p.query, data)
		if err != nil {
			return err
		}

		return p.printQueryResults(results)
	}

	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(data)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(p.out)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(data)
	case "", OutputFormatTable:
		if fill == nil {
			return p.printJSON(data)
		}

		table := tablewriter.NewWriter(p.out)
		if err := fill(table); err != nil {
			return err
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOutput, p.format)
	}
}

func (p *Printer) printJSON(data any) error {
	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

	return encoder.Encode(data)
}

func (p *Printer) printQueryResults(results []any) error {
	for _, result := range results {
		if text, ok := result.(string); ok {
			if _, err := fmt.Fprintln(p.out, text); err != nil {
				return err
			}

			continue
		}

		if err := p.printJSON(result); err != nil {
			return err
		}
	}

	return nil
}

// RunQuery evaluates a jq expression against data. Typed values are first
// round-tripped through JSON so gojq sees plain maps and slices.
func RunQuery(expression string, data any) ([]any, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	input, err := normalize(data)
	if err != nil {
		return nil, err
	}

	results := make([]any, 0)
	iter := code.Run(input)

	for {
		value, ok := iter.Next()
		if !ok {
			break
		}

		if err, isErr := value.(error); isErr {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				break
			}

			return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
		}

		results = append(results, value)
	}

	return results, nil
}

func normalize(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query input: %w", err)
	}

	var input any
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("failed to decode query input: %w", err)
	}

	return input, nil
}
