package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"story-editor/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// Deps is everything the commands need from the opened store.
type Deps struct {
	Service service.StoryService
	// Migrate brings the schema up to date. It is idempotent.
	Migrate func(ctx context.Context) error
	// DumpMetrics is the default of the --metrics flag.
	DumpMetrics bool
}

type commandDeps struct {
	Deps
	out     io.Writer
	errOut  io.Writer
	compact bool
}

const metricsFlag = "metrics"

func NewRootCommand(out, errOut io.Writer, deps Deps) *cobra.Command {
	cd := &commandDeps{Deps: deps, out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:           "storyctl",
		Short:         "Manage branching stories, their pages and choices",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return asExitError(ExitCodeUsage, err)
	})

	cmd.PersistentFlags().BoolVar(&cd.compact, "compact", false, "Print JSON without indentation")
	cmd.PersistentFlags().BoolVar(&cd.DumpMetrics, metricsFlag, deps.DumpMetrics, "Dump repository metrics to stderr after the command")

	cmd.AddCommand(
		newMigrateCommand(cd),
		newStoryCommand(cd),
		newPageCommand(cd),
		newChoiceCommand(cd),
	)
	return cmd
}

func (d *commandDeps) printJSON(v any) error {
	enc := json.NewEncoder(d.out)
	if !d.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// Execute runs the command tree. When --metrics is set the gatherer is dumped
// to errOut afterwards, also for failed commands.
func Execute(ctx context.Context, cmd *cobra.Command, errOut io.Writer, metrics prometheus.Gatherer) error {
	runErr := cmd.ExecuteContext(ctx)

	dump, err := cmd.PersistentFlags().GetBool(metricsFlag)
	if err != nil || !dump || metrics == nil {
		return runErr
	}
	if err := writeMetrics(errOut, metrics); err != nil && runErr == nil {
		return asExitError(ExitCodeGeneric, err)
	}
	return runErr
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, usageErrorf("%s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("usage: %s %s", cmd.CommandPath(), usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usageErrorf("usage: %s %s", cmd.CommandPath(), usage)
		}
		return nil
	}
}
