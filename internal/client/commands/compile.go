package commands

import (
	"closurec/internal/application/common/logging"
	"closurec/internal/application/common/slogger"
	"closurec/internal/application/service"
	"closurec/internal/artifact"
	"closurec/internal/client"
	"closurec/internal/config"
	"closurec/internal/domain/errors/domain"
	"closurec/internal/report"
	"closurec/internal/source"
	"closurec/internal/telemetry"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runCompile loads the configuration and runs one compilation. Failures are
// returned to cobra, which prints them as "Error: ..." on stderr; with
// --format json an error envelope is written to stdout as well.
func runCompile(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	v, err := newViper(cmd.Flags(), args)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	format := strings.ToLower(v.GetString(config.KeyReportFormat))

	cfg, err := config.New(v)
	if err != nil {
		return fail(out, format, err)
	}

	if err := slogger.Configure(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "writer",
		Writer: cmd.ErrOrStderr(),
	}); err != nil {
		return fail(out, format, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	metrics := telemetry.New()
	defer func() {
		metrics.LogSnapshot(ctx)
		if err := metrics.Shutdown(context.WithoutCancel(ctx)); err != nil {
			slogger.ErrorWithError(ctx, err, "failed to shut down metrics", nil)
		}
	}()

	clientConfig := cfg.ClientConfig()
	c, err := client.NewClient(&clientConfig, client.WithMeterProvider(metrics.MeterProvider()))
	if err != nil {
		return fail(out, format, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err))
	}

	colored := cfg.ColorEnabled(func() bool { return isTerminal(out) })
	renderer, err := report.NewRenderer(cfg.Report.Format, out, cfg.Compile.Verbose, colored)
	if err != nil {
		return fail(out, format, err)
	}

	selector, err := cfg.LevelSelector()
	if err != nil {
		return fail(out, format, err)
	}

	svc := service.NewCompileService(source.NewLoader(nil), c, renderer, artifact.NewWriter(nil))
	if _, err := svc.Run(ctx, service.Job{
		Inputs:        cfg.Compile.Inputs,
		Output:        cfg.Compile.Output,
		LevelSelector: selector,
		Verbose:       cfg.Compile.Verbose,
	}); err != nil {
		return fail(out, format, err)
	}

	return nil
}

// fail writes the JSON error envelope when that format is selected and
// returns err unchanged so the process still exits non-zero.
func fail(out io.Writer, format string, err error) error {
	if format == report.FormatJSON {
		_ = report.WriteError(out, determineErrorCode(err), err.Error(), nil)
	}
	return err
}

// determineErrorCode classifies err into one of the envelope error codes.
func determineErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return report.ErrCodeInvalidArgument
	case errors.Is(err, domain.ErrFileAccess):
		return report.ErrCodeFileAccess
	case errors.Is(err, domain.ErrNetwork):
		return report.ErrCodeNetwork
	case errors.Is(err, domain.ErrResponseParse):
		return report.ErrCodeResponseParse
	default:
		return report.ErrCodeInternal
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
