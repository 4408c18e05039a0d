package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/configsmith/device-reconciler/internal/core/domain"
	"github.com/configsmith/device-reconciler/internal/core/ports"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}
	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func isTerminal(f *os.File) bool {
	stat, _ := f.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, out *domain.Outcome) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "Reconciliation Report")
	fmt.Fprintln(tw, "=====================")

	if out.Changed {
		fmt.Fprintf(tw, "Changed:\t%s\n", yellow("yes"))
	} else {
		fmt.Fprintf(tw, "Changed:\t%s\n", green("no"))
	}
	fmt.Fprintf(tw, "Saved:\t%t\n", out.Saved)

	if len(out.Commands) > 0 {
		fmt.Fprintln(tw, "\nCommands:")
		for _, cmd := range out.Commands {
			fmt.Fprintf(tw, "  %s\n", cmd)
		}
	}

	if out.Success != nil {
		if *out.Success {
			fmt.Fprintf(tw, "\nIntended config:\t%s\n", green("satisfied"))
		} else {
			fmt.Fprintf(tw, "\nIntended config:\t%s\n", red("mismatch"))
			for _, line := range out.FailedDiffLinesBetweenIntendedCandidate {
				fmt.Fprintf(tw, "  missing:\t%s\n", line)
			}
		}
	}

	if out.DiffAgainstFound != "" {
		fmt.Fprintf(tw, "\nStartup diff found:\t%s\n", out.DiffAgainstFound)
		for _, line := range out.StartupDiff {
			fmt.Fprintf(tw, "  %s\n", line)
		}
	}

	if out.BackupPath != "" {
		fmt.Fprintf(tw, "\nBackup:\t%s\n", out.BackupPath)
	}

	if len(out.Warnings) > 0 {
		fmt.Fprintln(tw, "\nWarnings:")
		for _, w := range out.Warnings {
			fmt.Fprintf(tw, "  %s\n", yellow(w))
		}
	}

	return nil
}

var _ ports.Reporter = (*Reporter)(nil)
