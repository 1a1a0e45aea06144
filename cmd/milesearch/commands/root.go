package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"milesearch-backend/internal/telemetry"
	"milesearch-backend/lib/restyutil"
	"milesearch-backend/lib/scrapers/milesearch"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// Options lets callers replace the pieces that talk to the outside world.
type Options struct {
	// defaults to an HttpFetcher built from the config
	Fetcher milesearch.Fetcher
	// defaults to telemetry.SlogAPI
	Telemetry telemetry.API
	// defaults to stderr
	LogOutput io.Writer
}

// app is built once the persistent flags are parsed.
type app struct {
	config Config
	client *milesearch.Client
}

type rootFlags struct {
	verbose bool
	config  string
	dump    bool
}

func initSlog(out io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(out, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

func (f rootFlags) newApp(opts Options) (*app, error) {
	cfg, err := readConfig(f.config)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		var output restyutil.InstrumentOutput
		if f.dump {
			fsOutput, err := restyutil.NewFilesystemOutput(cfg.DumpDir)
			if err != nil {
				return nil, fmt.Errorf("create dump dir: %w", err)
			}
			output = fsOutput
		}
		fetcher = milesearch.NewHttpFetcher(milesearch.HttpFetcherOptions{
			Endpoint:  cfg.Endpoint,
			ScriptUrl: cfg.ScriptUrl,
			Timeout:   cfg.Timeout(),
			Output:    output,
		})
	}

	return &app{
		config: cfg,
		client: milesearch.NewClient(milesearch.ClientOptions{
			Fetcher:   fetcher,
			Telemetry: opts.Telemetry,
		}),
	}, nil
}

// NewRootCmd builds the whole command tree.
func NewRootCmd(opts Options) *cobra.Command {
	logOutput := opts.LogOutput
	if logOutput == nil {
		logOutput = os.Stderr
	}

	var flags rootFlags
	state := &app{}

	rootCmd := &cobra.Command{
		Use:           "milesearch",
		Short:         "milesearch looks up the miles and FOP a JAL flight earns.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initSlog(logOutput, flags.verbose)
			built, err := flags.newApp(opts)
			if err != nil {
				return err
			}
			*state = *built
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging.")
	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to a config file, defaults to the closest "+configFile+".")
	rootCmd.PersistentFlags().BoolVar(&flags.dump, "dump", false, "Write full http messages to the dump directory (requires --verbose).")

	rootCmd.AddCommand(
		newCatalogCmd(state),
		newSearchCmd(state),
		newHistoryCmd(state),
	)
	return rootCmd
}

// ExecuteContext runs the cli with os.Args and returns the exit code.
func ExecuteContext(ctx context.Context, opts Options) int {
	if err := NewRootCmd(opts).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
