package cmd

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/publitio/publitio-go/pkg/cmd/cmdutil"
	"github.com/publitio/publitio-go/pkg/publitioapi"
)

func init() {
	RootCmd.AddCommand(GetCmd)
	RootCmd.AddCommand(PutCmd)
	RootCmd.AddCommand(DeleteCmd)
}

var GetCmd = &cobra.Command{
	Use:     "get PATH [key=value...]",
	Short:   "send a GET request, e.g. get files/list limit=2",
	Args:    cobra.MinimumNArgs(1),
	Example: "publitio get files/list limit=2 order=date:desc",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := cmdutil.ParseParams(args[1:])
		if err != nil {
			return err
		}

		client, err := cmdutil.NewClient()
		if err != nil {
			return err
		}

		resp, err := client.Get(cmd.Context(), args[0], query)
		return printResponse(cmd.OutOrStdout(), resp, err)
	},
}

var PutCmd = &cobra.Command{
	Use:     "put PATH [key=value...]",
	Short:   "send a PUT request, e.g. put files/update/<id> title=x",
	Args:    cobra.MinimumNArgs(1),
	Example: "publitio put files/update/MvHX8Zx5 title=sunset",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := cmdutil.ParseParams(args[1:])
		if err != nil {
			return err
		}

		client, err := cmdutil.NewClient()
		if err != nil {
			return err
		}

		resp, err := client.Put(cmd.Context(), args[0], query)
		return printResponse(cmd.OutOrStdout(), resp, err)
	},
}

var DeleteCmd = &cobra.Command{
	Use:     "delete PATH",
	Short:   "send a DELETE request, e.g. delete files/delete/<id>",
	Args:    cobra.ExactArgs(1),
	Example: "publitio delete files/delete/MvHX8Zx5",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.NewClient()
		if err != nil {
			return err
		}

		resp, err := client.Delete(cmd.Context(), args[0])
		return printResponse(cmd.OutOrStdout(), resp, err)
	},
}

// printResponse writes the indented body and turns "success": false into an error.
func printResponse(w io.Writer, resp *publitioapi.Response, err error) error {
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, resp.Body, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')

	if _, err := buf.WriteTo(w); err != nil {
		return err
	}

	return resp.Err()
}
