// Command career-relay-cli runs one career request against the completion
// service and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"career-relay/internal/api/validation"
	"career-relay/internal/config"
	"career-relay/internal/llm"
	"career-relay/internal/logging"
	"career-relay/pkg/models"
)

// options holds the parsed command line
type options struct {
	Mode                 string `json:"mode" validate:"required,mode"`
	Preferences          string
	Skills               string
	DetailedExpectations string
	Message              string
	Sector               string
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(stderr, "error: failed to load configuration: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	// stdout carries the result only
	cfg.Logging.Output = "stderr"
	cfg.Logging.Adapters = nil
	if err := logging.InitializeLogging(cfg); err != nil {
		fmt.Fprintf(stderr, "error: failed to initialize logging: %v\n", err)
		return 1
	}
	defer logging.CloseLogging()

	manager := llm.NewManager(cfg)
	if err := manager.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer manager.Stop()

	return dispatch(ctx, manager, opts, stdout, stderr)
}

// dispatcher is the part of llm.Manager the CLI uses
type dispatcher interface {
	Dispatch(ctx context.Context, mode models.Mode, payload map[string]any) (any, error)
}

func dispatch(ctx context.Context, d dispatcher, opts *options, stdout, stderr io.Writer) int {
	mode, err := models.ParseMode(opts.Mode)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	result, err := d.Dispatch(ctx, mode, opts.payload(mode))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "error: failed to encode result: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}

func (o *options) payload(mode models.Mode) map[string]any {
	switch mode {
	case models.ModeRecommendation:
		return map[string]any{
			"preferences":           o.Preferences,
			"skills":                o.Skills,
			"detailed_expectations": o.DetailedExpectations,
		}
	case models.ModeChat:
		return map[string]any{"message": o.Message}
	case models.ModeMarketTrends:
		return map[string]any{"sector": o.Sector}
	default:
		return map[string]any{}
	}
}

// parseArgs accepts the mode as the first positional argument, with flags
// before or after it
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("career-relay-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.Preferences, "preferences", "Remote, Full-time, USA", "job preferences")
	fs.StringVar(&opts.Skills, "skills", "Python, React", "candidate skills")
	fs.StringVar(&opts.DetailedExpectations, "detailed_expectations", "", "detailed expectations")
	fs.StringVar(&opts.Message, "message", "Hello!", "chat message")
	fs.StringVar(&opts.Sector, "sector", "Technology", "sector for market trends")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: career-relay-cli <%s> [flags]\n", modeNames())
		fs.PrintDefaults()
	}

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}

	if len(positional) != 1 {
		fs.Usage()
		return nil, fmt.Errorf("expected exactly one mode, got %d arguments", len(positional))
	}
	opts.Mode = positional[0]

	if err := validation.New().Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid arguments: %s (choose from %s)", validation.Describe(err), modeNames())
	}
	return opts, nil
}

func modeNames() string {
	names := make([]string, 0, len(models.AllModes()))
	for _, m := range models.AllModes() {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}
