package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/curatecli/curate/internal/services"
	"github.com/curatecli/curate/internal/shared"
)

// APIGet performs a raw GET against the proxy and prints the response.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	if r.api == nil {
		return fmt.Errorf("%w: API service not initialized", shared.ErrServiceUnavailable)
	}

	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: request path (e.g. /api/library/playlists)", shared.ErrMissingArgument)
	}

	resp, err := r.api.Get(ctx, normalizePath(path))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.printAPIResponse(resp)
}

// APIPost performs a raw POST against the proxy with a JSON body argument.
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	if r.api == nil {
		return fmt.Errorf("%w: API service not initialized", shared.ErrServiceUnavailable)
	}

	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: request path", shared.ErrMissingArgument)
	}

	body := cmd.StringArg("body")
	if body != "" && !json.Valid([]byte(body)) {
		return fmt.Errorf("%w: body must be valid JSON", shared.ErrInvalidInput)
	}

	resp, err := r.api.Post(ctx, normalizePath(path), []byte(body))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.printAPIResponse(resp)
}

func (r *Runner) printAPIResponse(resp *services.APIResponse) error {
	r.logger.Info("api response", "status", resp.StatusCode, "json", resp.IsJSON)

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, true)
	}
	return r.writePlain("%s\n", string(resp.Body))
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
