package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/publitio/publitio-go/pkg/cmd/cmdutil"
	"github.com/publitio/publitio-go/pkg/publitioapi"
)

func init() {
	UploadCmd.Flags().StringArray("param", nil, "query parameter key=value, can be repeated")
	UploadCmd.Flags().Int("concurrency", 4, "number of files uploaded at the same time")
	RootCmd.AddCommand(UploadCmd)
}

var UploadCmd = &cobra.Command{
	Use:     "upload PATH FILE...",
	Short:   "upload files to files/create or watermarks/create",
	Args:    cobra.MinimumNArgs(2),
	Example: "publitio upload files/create clip.mp4 logo.png --param privacy=1",
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := cmd.Flags().GetStringArray("param")
		if err != nil {
			return err
		}

		concurrency, err := cmd.Flags().GetInt("concurrency")
		if err != nil {
			return err
		}

		query, err := cmdutil.ParseParams(params)
		if err != nil {
			return err
		}

		client, err := cmdutil.NewClient()
		if err != nil {
			return err
		}

		path, files := args[0], args[1:]
		responses, err := uploadFiles(cmd, client, path, query, files, concurrency)
		if err != nil {
			return err
		}

		out := make(map[string]json.RawMessage, len(files))
		var failed []string
		for i, resp := range responses {
			out[files[i]] = resp.Body
			if resp.Err() != nil {
				failed = append(failed, files[i])
			}
		}

		body, err := json.Marshal(out)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')

		if _, err := buf.WriteTo(cmd.OutOrStdout()); err != nil {
			return err
		}

		if len(failed) > 0 {
			return errors.Errorf("upload rejected for %v", failed)
		}

		return nil
	},
}

// uploadFiles uploads every file through the shared client and returns the
// responses in the order of files.
func uploadFiles(
	cmd *cobra.Command, client *publitioapi.RestClient, path string, query publitioapi.Query, files []string,
	concurrency int,
) ([]*publitioapi.Response, error) {
	responses := make([]*publitioapi.Response, len(files))

	g, ctx := errgroup.WithContext(cmd.Context())
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, file := range files {
		g.Go(func() error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			fileQuery := query
			if !hasParam(query, "title") {
				fileQuery = append(query[:len(query):len(query)], publitioapi.Param{
					Key:   "title",
					Value: filepath.Base(file),
				})
			}

			resp, err := client.UploadFile(ctx, path, fileQuery, f)
			if err != nil {
				return errors.Wrapf(err, "unable to upload %s", file)
			}

			log.Infof("uploaded %s, id = %s", file, resp.GetString("id"))
			responses[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return responses, nil
}

func hasParam(query publitioapi.Query, key string) bool {
	for _, p := range query {
		if p.Key == key {
			return true
		}
	}
	return false
}
