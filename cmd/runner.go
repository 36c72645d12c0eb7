package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/curatecli/curate/internal/llm"
	"github.com/curatecli/curate/internal/services"
	"github.com/curatecli/curate/internal/shared"
	"github.com/curatecli/curate/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	music     services.Service
	api       *services.APIService
	suggester tasks.Suggester
	logger    *log.Logger
	output    io.Writer
	outputMu  sync.Mutex // progress goroutine and prompts share the writer
	input     io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config    *shared.Config
	Music     services.Service
	API       *services.APIService
	Suggester tasks.Suggester
	Logger    *log.Logger
	Output    io.Writer
	Input     io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	return &Runner{
		config:    opts.Config,
		music:     opts.Music,
		api:       opts.API,
		suggester: opts.Suggester,
		logger:    opts.Logger,
		output:    opts.Output,
		input:     opts.Input,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, playlistsCommand, exportCommand, curateCommand, matchCommand, apiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// buildSuggester returns the injected suggester or constructs the Gemini
// client from configuration and environment credentials.
func (r *Runner) buildSuggester() (tasks.Suggester, error) {
	if r.suggester != nil {
		return r.suggester, nil
	}

	key, err := shared.GeminiAPIKey()
	if err != nil {
		return nil, err
	}

	gemini := r.config.Credentials.Gemini
	return llm.NewClient(llm.ClientOpts{
		APIKey:      key,
		Model:       gemini.Model,
		Temperature: gemini.Temperature,
		Logger:      r.logger,
	}), nil
}

// newEngine builds a CuratorEngine from the runner's dependencies.
func (r *Runner) newEngine(suggester tasks.Suggester) *tasks.CuratorEngine {
	return tasks.NewCuratorEngine(tasks.EngineOpts{
		Music:     r.music,
		Suggester: suggester,
		Curator:   r.config.Curator,
		Pacing:    r.config.Pacing,
		Logger:    r.logger,
	})
}

// confirm prompts the user on stdin and reports whether they answered yes.
func (r *Runner) confirm(prompt string) bool {
	r.writePlain("%s (yes/no): ", prompt)
	scanner := bufio.NewScanner(r.input)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "yes" || answer == "y"
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	r.outputMu.Lock()
	defer r.outputMu.Unlock()

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	r.outputMu.Lock()
	defer r.outputMu.Unlock()
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
