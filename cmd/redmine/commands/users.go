package commands

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user", "u"},
		Short:   "Manage users",
		Long:    "Inspect the current account and list users (listing requires admin rights)",
	}

	cmd.AddCommand(newUsersMeCommand())
	cmd.AddCommand(newUsersListCommand())

	return cmd
}

func newUsersMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the account the API key belongs to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			envelope, err := client.Users().GetCurrent(ctx)
			if err != nil {
				return fmt.Errorf("failed to get current user: %w", err)
			}

			user, err := decodeEntity[redmine.User](envelope, "user")
			if err != nil {
				return fmt.Errorf("failed to decode user: %w", err)
			}

			// the API key is echoed back by Redmine
			user.APIKey = ""

			return NewPrinter(cmd.OutOrStdout()).Print(user, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")
				_ = table.Append("ID", strconv.Itoa(user.ID))
				_ = table.Append("Login", user.Login)
				_ = table.Append("Name", fmt.Sprintf("%s %s", user.Firstname, user.Lastname))
				_ = table.Append("Mail", valueOr(user.Mail))
				_ = table.Append("Admin", strconv.FormatBool(user.Admin))
				_ = table.Append("Created", formatTime(user.CreatedOn))
				_ = table.Append("Last Login", formatTime(user.LastLoginOn))

				return nil
			})
		},
	}
}

func newUsersListCommand() *cobra.Command {
	var (
		status  int
		name    string
		groupID int
		limit   int
		offset  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			filters := redmine.NewGroup()
			if status > 0 {
				filters.Set("status", status)
			}

			if name != "" {
				filters.Set("name", name)
			}

			if groupID > 0 {
				filters.Set("group_id", groupID)
			}

			envelope, err := client.Users().List(ctx, &redmine.ListOptions{
				Filters: filters,
				Page:    &redmine.Page{Offset: offset, Limit: limit},
			})
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			users, _, err := decodeCollection[redmine.User](envelope, "users")
			if err != nil {
				return fmt.Errorf("failed to decode users: %w", err)
			}

			return NewPrinter(cmd.OutOrStdout()).Print(users, func(table *tablewriter.Table) error {
				table.Header("ID", "Login", "Name", "Mail", "Admin", "Last Login")

				for _, user := range users {
					_ = table.Append(
						strconv.Itoa(user.ID),
						user.Login,
						fmt.Sprintf("%s %s", user.Firstname, user.Lastname),
						valueOr(user.Mail),
						strconv.FormatBool(user.Admin),
						formatTime(user.LastLoginOn),
					)
				}

				return nil
			})
		},
	}

	cmd.Flags().IntVar(&status, "status", 0, "1 active, 2 registered, 3 locked")
	cmd.Flags().StringVar(&name, "name", "", "filter on login, name or mail")
	cmd.Flags().IntVar(&groupID, "group", 0, "group id")
	cmd.Flags().IntVar(&limit, "limit", redmine.DefaultPage().Limit, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")

	return cmd
}
