package cmd

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/publitio/publitio-go/pkg/cmd/cmdutil"
	"github.com/publitio/publitio-go/pkg/publitioapi"
	"github.com/publitio/publitio-go/pkg/style"
)

func init() {
	FilesListCmd.Flags().Int("limit", 20, "number of files to list")
	FilesListCmd.Flags().Int("offset", 0, "offset of the first file")
	FilesListCmd.Flags().Bool("color", false, "colorize the table")
	FilesCmd.AddCommand(FilesListCmd)
	RootCmd.AddCommand(FilesCmd)
}

var FilesCmd = &cobra.Command{
	Use:   "files",
	Short: "media file commands",
}

var FilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "list media files as a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}

		offset, err := cmd.Flags().GetInt("offset")
		if err != nil {
			return err
		}

		color, err := cmd.Flags().GetBool("color")
		if err != nil {
			return err
		}

		client, err := cmdutil.NewClient()
		if err != nil {
			return err
		}

		resp, err := client.Get(cmd.Context(), "files/list", publitioapi.Query{}.
			Add("limit", limit).
			Add("offset", offset))
		if err != nil {
			return err
		}

		if err := resp.Err(); err != nil {
			return err
		}

		renderFiles(cmd.OutOrStdout(), resp, color)
		return nil
	},
}

func renderFiles(w io.Writer, resp *publitioapi.Response, color bool) {
	t := style.NewTableWriter(w, color)
	t.AppendHeader(table.Row{"ID", "TITLE", "TYPE", "EXT", "SIZE", "URL"})
	for _, f := range resp.GetArray("files") {
		t.AppendRow(table.Row{
			string(f.GetStringBytes("id")),
			string(f.GetStringBytes("title")),
			string(f.GetStringBytes("type")),
			string(f.GetStringBytes("extension")),
			f.GetInt64("size"),
			string(f.GetStringBytes("url_preview")),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "TOTAL", resp.GetInt("files_total")})
	t.Render()
}
