package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// UploadResult is printed after a file was uploaded.
type UploadResult struct {
	File    string `json:"file"              yaml:"file"`
	Size    int    `json:"size"              yaml:"size"`
	Token   string `json:"token"             yaml:"token"`
	Project string `json:"project,omitempty" yaml:"project,omitempty"`
}

// NewUploadCommand creates the upload command.
func NewUploadCommand() *cobra.Command {
	var (
		project     string
		description string
		versionID   int
	)

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a file",
		Long: `Upload a file and print its upload token.

The token can be referenced from an issue or wiki attachment. With --project
the upload is also published in the project's Files section.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			content, err := os.ReadFile(path) //nolint:gosec // the user names the file to upload
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			if len(content) == 0 {
				return fmt.Errorf("%w: %s", ErrEmptyFile, path)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			token, err := client.Files().CreateUploadToken(ctx, content)
			if err != nil {
				return fmt.Errorf("failed to upload file: %w", err)
			}

			result := UploadResult{
				File:  filepath.Base(path),
				Size:  len(content),
				Token: token,
			}

			if project != "" {
				data := redmine.JSON{
					"filename":    result.File,
					"description": description,
				}
				if versionID > 0 {
					data["version_id"] = versionID
				}

				if _, err := client.Files().Create(ctx, project, token, data); err != nil {
					return fmt.Errorf("failed to attach file to project: %w", err)
				}

				result.Project = project
			}

			return NewPrinter(cmd.OutOrStdout()).Print(result, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")
				_ = table.Append("File", result.File)
				_ = table.Append("Size", fmt.Sprintf("%d bytes", result.Size))
				_ = table.Append("Token", result.Token)
				_ = table.Append("Project", valueOr(result.Project))

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "publish the upload in this project's files")
	cmd.Flags().StringVar(&description, "description", "", "file description")
	cmd.Flags().IntVar(&versionID, "version", 0, "version id the file belongs to")

	return cmd
}
