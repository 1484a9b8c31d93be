package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// ResourceInfo describes one entry of the resource registry.
type ResourceInfo struct {
	Name   string `json:"name"             yaml:"name"`
	Title  string `json:"title"            yaml:"title"`
	Client string `json:"client,omitempty" yaml:"client,omitempty"`
}

// NewResourceCommand creates the resource command.
func NewResourceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resource [NAME]",
		Short: "Show the resource registry",
		Long: `Without NAME, list every resource type the client knows about.

With NAME, resolve it the way Client.ResourceByName does (case and
separators are ignored, so "time_entry" and "TimeEntry" are equal) and
print the client that serves it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return printResourceTypes(cmd)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			resource, err := client.ResourceByName(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", ErrUnknownResource, args[0])
			}

			resourceType, err := redmine.ParseResourceType(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", ErrUnknownResource, args[0])
			}

			info := resourceInfo(resourceType)
			info.Client = strings.TrimPrefix(fmt.Sprintf("%T", resource), "*")

			return NewPrinter(cmd.OutOrStdout()).Print(info, func(table *tablewriter.Table) error {
				table.Header("Resource", "Title", "Client")
				_ = table.Append(info.Name, info.Title, info.Client)

				return nil
			})
		},
	}
}

func printResourceTypes(cmd *cobra.Command) error {
	all := redmine.AllResourceTypes()
	infos := make([]ResourceInfo, 0, len(all))

	for _, resourceType := range all {
		infos = append(infos, resourceInfo(resourceType))
	}

	return NewPrinter(cmd.OutOrStdout()).Print(infos, func(table *tablewriter.Table) error {
		table.Header("Resource", "Title")

		for _, info := range infos {
			_ = table.Append(info.Name, info.Title)
		}

		return nil
	})
}

func resourceInfo(resourceType redmine.ResourceType) ResourceInfo {
	name := resourceType.String()

	return ResourceInfo{
		Name:  name,
		Title: cases.Title(language.English).String(strings.ReplaceAll(name, "_", " ")),
	}
}
