// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// playlistsCommand lists the library's playlists
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "List your YouTube Music playlists",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Playlists,
	}
}

// exportCommand dumps a playlist's catalog
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a playlist's tracks to csv, markdown, txt, or json",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Playlist ID to export",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv, markdown, txt, json",
				Value:   "txt",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
		},
		Action: r.Export,
	}
}

// curateCommand runs the full curation flow
func curateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "curate",
		Usage: "Build a new playlist from a source playlist using Gemini",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Aliases:  []string{"s"},
				Usage:    "Source playlist ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "title",
				Aliases:  []string{"t"},
				Usage:    "Title for the new playlist",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Detailed description of the playlist to build",
			},
			&cli.StringFlag{
				Name:  "genres",
				Usage: "Desired genres, comma-separated",
			},
			&cli.StringFlag{
				Name:  "artists",
				Usage: "Preferred artists, comma-separated",
			},
			&cli.StringFlag{
				Name:  "moods",
				Usage: "Desired moods or vibes, comma-separated",
			},
			&cli.StringFlag{
				Name:  "keywords",
				Usage: "Other keywords, comma-separated",
			},
			&cli.BoolFlag{
				Name:  "details",
				Usage: "Fetch per-track descriptions for the model (slow, heavy API usage)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Stop after matching; create and mutate nothing",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the run result as JSON",
			},
		},
		Action: r.Curate,
	}
}

// matchCommand runs the matcher offline against a suggestions file
func matchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "match",
		Usage: "Match suggestion lines from a file (or stdin) against a playlist's catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Aliases:  []string{"s"},
				Usage:    "Source playlist ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "File of \"Title by Artist\" lines (default: stdin)",
			},
			&cli.IntFlag{
				Name:  "threshold",
				Usage: "Override the fuzzy match threshold (0-100)",
			},
		},
		Action: r.Match,
	}
}

// authCommand handles proxy authentication bootstrap
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authentication helpers for the ytmusicapi proxy",
		Commands: []*cli.Command{
			{
				Name:  "from-curl",
				Usage: "Convert a copied browser cURL command into a headers auth file",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Auth file path to write",
						Value:   "headers_auth.json",
					},
				},
				Action: r.AuthFromCurl,
			},
		},
	}
}

// apiCommand handles direct (proxy) API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the FastAPI proxy",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the proxy, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST to the proxy with a JSON body argument",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
					&cli.StringArg{
						Name: "body",
					},
				},
				Action: r.APIPost,
			},
		},
	}
}
