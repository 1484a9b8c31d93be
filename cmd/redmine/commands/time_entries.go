package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// NewTimeEntriesCommand creates the time-entries command group.
func NewTimeEntriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "time-entries",
		Aliases: []string{"time", "te"},
		Short:   "Manage time entries",
		Long:    "List and log spent time",
	}

	cmd.AddCommand(newTimeEntriesListCommand())
	cmd.AddCommand(newTimeEntriesAddCommand())

	return cmd
}

func newTimeEntriesListCommand() *cobra.Command {
	var (
		project string
		user    string
		from    string
		to      string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries",
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

			if user != "" {
				filters.Set("user_id", user)
			}

			if from != "" {
				filters.Set("from", from)
			}

			if to != "" {
				filters.Set("to", to)
			}

			var items []any

			if all {
				items, err = client.TimeEntries().ListAll(ctx, filters)
				if err != nil {
					return fmt.Errorf("failed to list time entries: %w", err)
				}
			} else {
				envelope, err := client.TimeEntries().List(ctx, &redmine.ListOptions{Filters: filters})
				if err != nil {
					return fmt.Errorf("failed to list time entries: %w", err)
				}

				collection, err := redmine.CollectionOf(envelope, "time_entries")
				if err != nil {
					return err
				}

				items = collection.Items
			}

			entries, err := redmine.DecodeAll[redmine.TimeEntry](items)
			if err != nil {
				return fmt.Errorf("failed to decode time entries: %w", err)
			}

			return NewPrinter(cmd.OutOrStdout()).Print(entries, func(table *tablewriter.Table) error {
				table.Header("ID", "Date", "Project", "Issue", "User", "Activity", "Hours", "Comments")

				for _, entry := range entries {
					issue := NotAvailable
					if entry.Issue != nil {
						issue = "#" + strconv.Itoa(entry.Issue.ID)
					}

					_ = table.Append(
						strconv.Itoa(entry.ID),
						entry.SpentOn,
						nameOf(entry.Project),
						issue,
						nameOf(entry.User),
						nameOf(entry.Activity),
						strconv.FormatFloat(entry.Hours, 'f', 2, 64),
						entry.Comments,
					)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id or identifier")
	cmd.Flags().StringVar(&user, "user", "", "user id, or me")
	cmd.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")

	return cmd
}

func newTimeEntriesAddCommand() *cobra.Command {
	var (
		issueID    int
		projectID  int
		hours      float64
		activityID int
		comments   string
		spentOn    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log time on an issue or a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reference, id, err := timeEntryTarget(issueID, projectID)
			if err != nil {
				return err
			}

			if hours <= 0 {
				return ErrHoursRequired
			}

			if spentOn != "" {
				if _, err := time.Parse(dateLayout, spentOn); err != nil {
					return fmt.Errorf("invalid --spent-on date %q: %w", spentOn, err)
				}
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			data := redmine.JSON{"comments": comments}
			if activityID > 0 {
				data["activity_id"] = activityID
			}

			if spentOn != "" {
				data["spent_on"] = spentOn
			}

			envelope, err := client.TimeEntries().Create(ctx, reference, id, hours, data)
			if err != nil {
				return fmt.Errorf("failed to log time: %w", err)
			}

			entry, err := decodeEntity[redmine.TimeEntry](envelope, "time_entry")
			if err != nil {
				return fmt.Errorf("failed to decode time entry: %w", err)
			}

			return NewPrinter(cmd.OutOrStdout()).Print(entry, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")
				_ = table.Append("ID", strconv.Itoa(entry.ID))
				_ = table.Append("Project", nameOf(entry.Project))
				_ = table.Append("Hours", strconv.FormatFloat(entry.Hours, 'f', 2, 64))
				_ = table.Append("Activity", nameOf(entry.Activity))
				_ = table.Append("Spent On", valueOr(entry.SpentOn))

				return nil
			})
		},
	}

	cmd.Flags().IntVar(&issueID, "issue", 0, "issue id")
	cmd.Flags().IntVar(&projectID, "project", 0, "project id")
	cmd.Flags().Float64Var(&hours, "hours", 0, "hours spent")
	cmd.Flags().IntVar(&activityID, "activity", 0, "activity id")
	cmd.Flags().StringVar(&comments, "comments", "", "short description")
	cmd.Flags().StringVar(&spentOn, "spent-on", "", "day the time was spent (YYYY-MM-DD, default today)")

	return cmd
}

func timeEntryTarget(issueID, projectID int) (string, int, error) {
	switch {
	case issueID > 0 && projectID > 0:
		return "", 0, ErrTargetConflict
	case issueID > 0:
		return redmine.TimeEntryOnIssue, issueID, nil
	case projectID > 0:
		return redmine.TimeEntryOnProject, projectID, nil
	default:
		return "", 0, ErrTargetRequired
	}
}
