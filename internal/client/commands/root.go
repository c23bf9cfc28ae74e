// Package commands provides the closurec command line.
// The root command compiles JavaScript files through the remote Closure
// Compiler service; the version subcommand reports build information.
package commands

import (
	"closurec/internal/client"
	"closurec/internal/config"
	"closurec/internal/domain/compilation"
	"closurec/internal/report"
	"closurec/internal/version"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag names.
const (
	flagInput     = "input"
	flagOutput    = "output"
	flagLevel     = "level"
	flagVerbose   = "verbose"
	flagAPIURL    = "api-url"
	flagTimeout   = "timeout"
	flagFormat    = "format"
	flagColor     = "color"
	flagConfig    = "config"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
)

// flagKeys maps each flag to the configuration key it overrides.
var flagKeys = map[string]string{ //nolint:gochecknoglobals // read-only table
	flagInput:     config.KeyInputs,
	flagOutput:    config.KeyOutput,
	flagLevel:     config.KeyLevel,
	flagVerbose:   config.KeyVerbose,
	flagAPIURL:    config.KeyAPIURL,
	flagTimeout:   config.KeyTimeout,
	flagFormat:    config.KeyReportFormat,
	flagColor:     config.KeyReportColor,
	flagLogLevel:  config.KeyLogLevel,
	flagLogFormat: config.KeyLogFormat,
}

// NewRootCmd creates the closurec root command.
//
// Flags:
//   - -i/--input: JavaScript files to compile, in order (repeatable or
//     comma-separated); positional arguments are appended after them, so
//     "-i a.js b.js" compiles both
//   - -o/--output: file receiving the compiled code
//   - -l/--level: 1 whitespace only, 2 simple (default), 3 advanced
//   - -v/--verbose: print every warning
//   - --api-url, --timeout: compilation service endpoint
//   - --format text|json|yaml, --color auto|on|off: report presentation
//   - --config: YAML configuration file (default ./closurec.yaml)
//   - --log-level, --log-format: diagnostic logging on stderr
//
// Every flag can also be given as CLOSUREC_<SECTION>_<KEY> in the
// environment or in the configuration file; flags win over both.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "closurec -i FILE [FILE...] -o FILE",
		Short: "Compile JavaScript with the Closure Compiler service",
		Long: `closurec sends JavaScript files to the Closure Compiler web service,
prints compression statistics, warnings and errors, and writes the
compiled code to the output file.`,
		Example: `  closurec -i lib.js app.js -o app.min.js
  closurec -i lib.js -i app.js -o app.min.js
  closurec -i app.js -o app.min.js -l 3 -v
  closurec -i app.js -o app.min.js --format json`,
		Version:       version.GetVersion().String(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.Flags()
	flags.StringSliceP(flagInput, "i", nil, "JavaScript file to compile (repeatable)")
	flags.StringP(flagOutput, "o", "", "output file for the compiled code")
	flags.IntP(flagLevel, "l", compilation.DefaultLevelSelector,
		fmt.Sprintf("compilation level %d-%d (whitespace only, simple, advanced)",
			compilation.MinLevelSelector, compilation.MaxLevelSelector))
	flags.BoolP(flagVerbose, "v", false, "print every warning")
	flags.String(flagAPIURL, client.DefaultAPIURL, "compilation service URL")
	flags.Duration(flagTimeout, client.DefaultTimeout, "request timeout")
	flags.String(flagFormat, report.FormatText, "report format: text, json or yaml")
	flags.String(flagColor, config.ColorAuto, "colour the text report: auto, on or off")
	flags.String(flagConfig, "", "configuration file (default ./closurec.yaml)")
	flags.String(flagLogLevel, "warn", "log level: debug, info, warn or error")
	flags.String(flagLogFormat, "text", "log format: text or json")

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// newViper builds the configuration source for cmd: the --config file (or
// the default one), the environment and every flag bound to its key.
// Positional args extend the resolved input list.
func newViper(flags *pflag.FlagSet, args []string) (*viper.Viper, error) {
	file, err := flags.GetString(flagConfig)
	if err != nil {
		return nil, err
	}

	v := config.NewViper(file)
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	if err := config.ReadFile(v); err != nil {
		return nil, err
	}
	if len(args) > 0 {
		inputs := append(v.GetStringSlice(config.KeyInputs), args...)
		v.Set(config.KeyInputs, inputs)
	}
	return v, nil
}
