package commands

import (
	"fmt"
	"strconv"

	"github.com/gosimple/slug"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "Manage projects",
		Long:    "List, inspect and create Redmine projects",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())
	cmd.AddCommand(newProjectsCreateCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	var (
		include string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			var items []any

			if all {
				items, err = client.Projects().ListAll(ctx, nil)
				if err != nil {
					return fmt.Errorf("failed to list projects: %w", err)
				}
			} else {
				envelope, err := client.Projects().List(ctx, &redmine.ListOptions{Include: splitCSV(include)})
				if err != nil {
					return fmt.Errorf("failed to list projects: %w", err)
				}

				collection, err := redmine.CollectionOf(envelope, "projects")
				if err != nil {
					return err
				}

				items = collection.Items
			}

			projects, err := redmine.DecodeAll[redmine.Project](items)
			if err != nil {
				return fmt.Errorf("failed to decode projects: %w", err)
			}

			return NewPrinter(cmd.OutOrStdout()).Print(projects, func(table *tablewriter.Table) error {
				table.Header("ID", "Identifier", "Name", "Parent", "Public", "Created")

				for _, project := range projects {
					_ = table.Append(
						strconv.Itoa(project.ID),
						project.Identifier,
						project.Name,
						nameOf(project.Parent),
						strconv.FormatBool(project.IsPublic),
						formatTime(project.CreatedOn),
					)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&include, "include", "", "related data, e.g. trackers,issue_categories")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")

	return cmd
}

func newProjectsCreateCommand() *cobra.Command {
	var (
		identifier  string
		description string
		parentID    int
		public      bool
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a project",
		Long:  "Create a project. Without --identifier one is derived from NAME, e.g. \"Web Site\" becomes web-site.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if identifier == "" {
				identifier = slug.Make(name)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			data := redmine.JSON{
				"description": description,
				"is_public":   public,
			}
			if parentID > 0 {
				data["parent_id"] = parentID
			}

			envelope, err := client.Projects().Create(ctx, name, identifier, data)
			if err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}

			project, err := decodeEntity[redmine.Project](envelope, "project")
			if err != nil {
				return fmt.Errorf("failed to decode project: %w", err)
			}

			return NewPrinter(cmd.OutOrStdout()).Print(project, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")
				_ = table.Append("ID", strconv.Itoa(project.ID))
				_ = table.Append("Identifier", project.Identifier)
				_ = table.Append("Name", project.Name)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&identifier, "identifier", "", "project identifier")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().IntVar(&parentID, "parent", 0, "parent project id")
	cmd.Flags().BoolVar(&public, "public", true, "make the project public")

	return cmd
}

func newProjectsGetCommand() *cobra.Command {
	var include string

	cmd := &cobra.Command{
		Use:   "get PROJECT",
		Short: "Get project details",
		Long:  "Get a project by numeric id or identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			envelope, err := client.Projects().Get(ctx, args[0], splitCSV(include)...)
			if err != nil {
				return fmt.Errorf("failed to get project: %w", err)
			}

			project, err := decodeEntity[redmine.Project](envelope, "project")
			if err != nil {
				return fmt.Errorf("failed to decode project: %w", err)
			}

			return NewPrinter(cmd.OutOrStdout()).Print(project, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")
				_ = table.Append("ID", strconv.Itoa(project.ID))
				_ = table.Append("Identifier", project.Identifier)
				_ = table.Append("Name", project.Name)
				_ = table.Append("Parent", nameOf(project.Parent))
				_ = table.Append("Public", strconv.FormatBool(project.IsPublic))
				_ = table.Append("Homepage", valueOr(project.Homepage))
				_ = table.Append("Created", formatTime(project.CreatedOn))
				_ = table.Append("Updated", formatTime(project.UpdatedOn))

				if project.Description != "" {
					_ = table.Append("Description", project.Description)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&include, "include", "", "related data, e.g. trackers,enabled_modules")

	return cmd
}
