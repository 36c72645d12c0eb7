package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/curatecli/curate/internal/shared"
)

// AuthFromCurl converts a browser-copied cURL command into the headers auth
// file the ytmusicapi proxy consumes.
func (r *Runner) AuthFromCurl(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path to a cURL command file", shared.ErrMissingArgument)
	}

	headers, err := shared.ParseCurlFile(path)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if err := headers.WriteAuthFile(output); err != nil {
		return err
	}

	r.logger.Info("auth file written", "path", output, "headers", len(headers.Headers))
	r.writePlain("Wrote %s. Point credentials.youtube.headers_path at it.\n", output)
	return nil
}
