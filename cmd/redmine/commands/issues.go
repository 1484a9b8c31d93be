package commands

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// NewIssuesCommand creates the issues command group.
func NewIssuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issues",
		Aliases: []string{"issue", "i"},
		Short:   "Manage issues",
		Long:    "List, inspect, create, annotate and delete Redmine issues",
	}

	cmd.AddCommand(newIssuesListCommand())
	cmd.AddCommand(newIssuesGetCommand())
	cmd.AddCommand(newIssuesCreateCommand())
	cmd.AddCommand(newIssuesNoteCommand())
	cmd.AddCommand(newIssuesDeleteCommand())

	return cmd
}

func newIssuesListCommand() *cobra.Command {
	var (
		project    string
		status     string
		assignedTo string
		tracker    int
		sort       string
		limit      int
		offset     int
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues",
		Long:  "List issues, optionally filtered by project, status, assignee and tracker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			filters := redmine.NewGroup()
			if project != "" {
				filters.Set("project_id", project)
			}

			if status != "" {
				filters.Set("status_id", status)
			}

			if assignedTo != "" {
				filters.Set("assigned_to_id", assignedTo)
			}

			if tracker > 0 {
				filters.Set("tracker_id", tracker)
			}

			var items []any

			if all {
				if sort != "" {
					filters.Set("sort", sort)
				}

				items, err = client.Issues().ListAll(ctx, filters)
				if err != nil {
					return fmt.Errorf("failed to list issues: %w", err)
				}
			} else {
				envelope, err := client.Issues().List(ctx, &redmine.ListOptions{
					Filters: filters,
					Page:    &redmine.Page{Offset: offset, Limit: limit},
					Sort:    splitCSV(sort),
				})
				if err != nil {
					return fmt.Errorf("failed to list issues: %w", err)
				}

				collection, err := redmine.CollectionOf(envelope, "issues")
				if err != nil {
					return err
				}

				items = collection.Items
			}

			issues, err := redmine.DecodeAll[redmine.Issue](items)
			if err != nil {
				return fmt.Errorf("failed to decode issues: %w", err)
			}

			return NewPrinter(cmd.OutOrStdout()).Print(issues, func(table *tablewriter.Table) error {
				table.Header("ID", "Project", "Tracker", "Status", "Priority", "Assignee", "Subject", "Updated")

				for _, issue := range issues {
					_ = table.Append(
						strconv.Itoa(issue.ID),
						nameOf(issue.Project),
						nameOf(issue.Tracker),
						nameOf(issue.Status),
						nameOf(issue.Priority),
						nameOf(issue.AssignedTo),
						issue.Subject,
						formatTime(issue.UpdatedOn),
					)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id or identifier")
	cmd.Flags().StringVarP(&status, "status", "s", "open", "status id, or open, closed, *")
	cmd.Flags().StringVar(&assignedTo, "assigned-to", "", "assignee id, or me")
	cmd.Flags().IntVar(&tracker, "tracker", 0, "tracker id")
	cmd.Flags().StringVar(&sort, "sort", "", "sort order, e.g. priority:desc,id")
	cmd.Flags().IntVar(&limit, "limit", redmine.DefaultPage().Limit, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")

	return cmd
}

func newIssuesGetCommand() *cobra.Command {
	var include string

	cmd := &cobra.Command{
		Use:   "get ISSUE_ID",
		Short: "Get issue details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			envelope, err := client.Issues().Get(ctx, id, splitCSV(include)...)
			if err != nil {
				return fmt.Errorf("failed to get issue: %w", err)
			}

			issue, err := decodeEntity[redmine.Issue](envelope, "issue")
			if err != nil {
				return fmt.Errorf("failed to decode issue: %w", err)
			}

			return NewPrinter(cmd.OutOrStdout()).Print(issue, func(table *tablewriter.Table) error {
				renderIssueDetails(table, issue)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&include, "include", "", "related data, e.g. journals,watchers,relations")

	return cmd
}

func renderIssueDetails(table *tablewriter.Table, issue *redmine.Issue) {
	table.Header("Property", "Value")
	_ = table.Append("ID", strconv.Itoa(issue.ID))
	_ = table.Append("Subject", issue.Subject)
	_ = table.Append("Project", nameOf(issue.Project))
	_ = table.Append("Tracker", nameOf(issue.Tracker))
	_ = table.Append("Status", nameOf(issue.Status))
	_ = table.Append("Priority", nameOf(issue.Priority))
	_ = table.Append("Author", nameOf(issue.Author))
	_ = table.Append("Assignee", nameOf(issue.AssignedTo))
	_ = table.Append("Done", fmt.Sprintf("%d%%", issue.DoneRatio))
	_ = table.Append("Start Date", valueOr(issue.StartDate))
	_ = table.Append("Due Date", valueOr(issue.DueDate))
	_ = table.Append("Created", formatTime(issue.CreatedOn))
	_ = table.Append("Updated", formatTime(issue.UpdatedOn))

	if issue.Description != "" {
		_ = table.Append("Description", issue.Description)
	}

	if len(issue.Journals) > 0 {
		_ = table.Append("Journals", strconv.Itoa(len(issue.Journals)))
	}
}

func newIssuesCreateCommand() *cobra.Command {
	var (
		project     string
		subject     string
		description string
		tracker     int
		priority    int
		assignedTo  int
		parent      int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an issue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if project == "" {
				return ErrProjectRequired
			}

			if subject == "" {
				return ErrSubjectRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			data := redmine.JSON{
				"project_id":  project,
				"subject":     subject,
				"description": description,
			}

			for key, value := range map[string]int{
				"tracker_id":      tracker,
				"priority_id":     priority,
				"assigned_to_id":  assignedTo,
				"parent_issue_id": parent,
			} {
				if value > 0 {
					data[key] = value
				}
			}

			envelope, err := client.Issues().Create(ctx, data)
			if err != nil {
				return fmt.Errorf("failed to create issue: %w", err)
			}

			issue, err := decodeEntity[redmine.Issue](envelope, "issue")
			if err != nil {
				return fmt.Errorf("failed to decode issue: %w", err)
			}

			return NewPrinter(cmd.OutOrStdout()).Print(issue, func(table *tablewriter.Table) error {
				renderIssueDetails(table, issue)

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id or identifier")
	cmd.Flags().StringVar(&subject, "subject", "", "issue subject")
	cmd.Flags().StringVar(&description, "description", "", "issue description")
	cmd.Flags().IntVar(&tracker, "tracker", 0, "tracker id")
	cmd.Flags().IntVar(&priority, "priority", 0, "priority id")
	cmd.Flags().IntVar(&assignedTo, "assigned-to", 0, "assignee user id")
	cmd.Flags().IntVar(&parent, "parent", 0, "parent issue id")

	return cmd
}

func newIssuesNoteCommand() *cobra.Command {
	var status int

	cmd := &cobra.Command{
		Use:   "note ISSUE_ID TEXT",
		Short: "Add a note to an issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if args[1] == "" {
				return ErrNoteRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			if _, err := client.Issues().AddNote(ctx, id, args[1]); err != nil {
				return fmt.Errorf("failed to add note: %w", err)
			}

			if status > 0 {
				if _, err := client.Issues().UpdateStatus(ctx, id, status); err != nil {
					return fmt.Errorf("failed to update status: %w", err)
				}
			}

			printSuccess(cmd, "Note added to issue #%d", id)

			return nil
		},
	}

	cmd.Flags().IntVar(&status, "status", 0, "also move the issue to this status id")

	return cmd
}

func newIssuesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ISSUE_ID",
		Short: "Delete an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !force {
				confirmed, err := confirm(fmt.Sprintf("Delete issue #%d", id))
				if err != nil {
					return err
				}

				if !confirmed {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled")

					return nil
				}
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			status, err := client.Issues().Delete(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to delete issue: %w", err)
			}

			printSuccess(cmd, "Issue #%d deleted (status %d)", id, status)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation")

	return cmd
}
