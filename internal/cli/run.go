// Package cli implements the reef-trace command tree.
package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/reeflang/reef/internal/config"
	reeferrors "github.com/reeflang/reef/internal/errors"
	"github.com/reeflang/reef/internal/logging"
	"github.com/reeflang/reef/internal/sink"
	"github.com/reeflang/reef/internal/vm"
	"github.com/reeflang/reef/pkg/probes"
)

// NewRunCmd returns the "run" command: execute a program under the
// interpreter with the selected probe consumers attached.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <program.yaml>",
		Short: "Run a reef program with function-boundary probes attached",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return runProgram(cmd, cfg, args[0])
		},
	}
	registerRunFlags(cmd.Flags())
	return cmd
}

// registerRunFlags declares the run command's flags. Flags override REEF_*
// environment variables, which override built-in defaults.
func registerRunFlags(fs *pflag.FlagSet) {
	defaults := config.Default()
	fs.String("log-level", defaults.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.Bool("log-pretty", defaults.LogPretty, "human-readable log output")
	fs.String("service", defaults.Service, "service.name reported on exported traces")
	fs.StringSlice("sink", defaults.Sinks, "probe consumers to attach (log, stats, otlp)")
	fs.String("otlp-out", defaults.OTLPOut, "file for otlp JSON output, - for stdout")
	fs.Int("max-depth", defaults.MaxDepth, "interpreter call-depth limit")
}

func loadConfig(fs *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if fs.Changed("log-level") {
		cfg.LogLevel, _ = fs.GetString("log-level")
	}
	if fs.Changed("log-pretty") {
		cfg.LogPretty, _ = fs.GetBool("log-pretty")
	}
	if fs.Changed("service") {
		cfg.Service, _ = fs.GetString("service")
	}
	if fs.Changed("sink") {
		cfg.Sinks, _ = fs.GetStringSlice("sink")
	}
	if fs.Changed("otlp-out") {
		cfg.OTLPOut, _ = fs.GetString("otlp-out")
	}
	if fs.Changed("max-depth") {
		cfg.MaxDepth, _ = fs.GetInt("max-depth")
	}
	return cfg, nil
}

func runProgram(cmd *cobra.Command, cfg config.Config, path string) error {
	logger := logging.NewWithComponent(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	}, "reef-trace")

	prog, err := vm.LoadProgram(path)
	if err != nil {
		return err
	}

	report, detach, err := attachSinks(cmd, cfg, logger)
	if err != nil {
		return err
	}
	defer detach()

	interp := vm.NewInterp(logger, prog, vm.WithMaxDepth(cfg.MaxDepth))
	runErr := interp.Run()

	if err := report(); err != nil {
		return err
	}
	return runErr
}

// attachSinks attaches the configured consumers to both probe points and
// returns a post-run report function plus a detach-all function. In a
// noprobes build attachment fails; the program still runs, uninstrumented.
func attachSinks(cmd *cobra.Command, cfg config.Config, logger zerolog.Logger) (report func() error, detach func(), err error) {
	var (
		detaches []func()
		reports  []func() error
	)
	detach = func() {
		for _, d := range detaches {
			d()
		}
	}

	attach := func(onEntry, onReturn probes.Handler) error {
		de, err := probes.FunctionEntry.Attach(onEntry)
		if err != nil {
			return err
		}
		detaches = append(detaches, de)
		dr, err := probes.FunctionReturn.Attach(onReturn)
		if err != nil {
			return err
		}
		detaches = append(detaches, dr)
		return nil
	}

	for _, name := range cfg.Sinks {
		var attachErr error
		switch name {
		case "log":
			s := sink.NewLogSink(logger)
			attachErr = attach(s.OnEntry, s.OnReturn)
		case "stats":
			s := sink.NewStatsSink()
			attachErr = attach(s.OnEntry, s.OnReturn)
			reports = append(reports, func() error {
				return writeStats(cmd, s.Snapshot())
			})
		case "otlp":
			s := sink.NewOTLPSink(cfg.Service)
			attachErr = attach(s.OnEntry, s.OnReturn)
			reports = append(reports, func() error {
				return writeOTLP(cmd, logger, cfg.OTLPOut, s)
			})
		default:
			detach()
			return nil, nil, fmt.Errorf("unknown sink %q (want log, stats or otlp)", name)
		}

		if attachErr != nil {
			if errors.Is(attachErr, probes.ErrProbesDisabled) {
				logger.Warn().Msg("probes compiled out; running uninstrumented")
				return func() error { return nil }, detach, nil
			}
			detach()
			return nil, nil, attachErr
		}
	}

	report = func() error {
		for _, r := range reports {
			if err := r(); err != nil {
				return err
			}
		}
		return nil
	}
	return report, detach, nil
}

func writeStats(cmd *cobra.Command, stats []sink.FuncStats) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FUNCTION\tFILE\tENTRIES\tRETURNS")
	for _, st := range stats {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", st.FuncName, st.Filename, st.Entries, st.Returns)
	}
	return w.Flush()
}

func writeOTLP(cmd *cobra.Command, logger zerolog.Logger, out string, s *sink.OTLPSink) error {
	if out == "" || out == "-" {
		return s.WriteJSON(cmd.OutOrStdout())
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create otlp output: %w", err)
	}
	defer reeferrors.DeferClose(logger, f, "closing otlp output")
	return s.WriteJSON(f)
}
