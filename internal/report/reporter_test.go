package report_test

import (
	"bytes"
	"closurec/internal/domain/compilation"
	"closurec/internal/report"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWarnings() []compilation.Diagnostic {
	return []compilation.Diagnostic{
		{
			File:       "Input_0",
			Type:       "JSC_WRONG_ARGUMENT_COUNT",
			LineNumber: 3,
			Message:    "Function f: called with 0 argument(s).",
			LineText:   "f();",
		},
		{
			File:       "Input_1",
			Type:       "JSC_UNREACHABLE_CODE",
			LineNumber: 12,
			Message:    "unreachable code",
			LineText:   "return; x();",
		},
	}
}

func TestReporter_Statistics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := report.NewReporter(&buf, false, false)

	err := r.Statistics(&compilation.Statistics{
		OriginalSize:       20,
		OriginalGzipSize:   20,
		CompressedSize:     13,
		CompressedGzipSize: 13,
	})

	require.NoError(t, err)
	assert.Equal(t,
		"Original Size: 0.02 KiB gzipped (0.02 KiB uncompressed)\n"+
			"Compiled Size: 0.01 KiB gzipped (0.01 KiB uncompressed)\n",
		buf.String())
}

func TestReporter_Statistics_Absent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.NewReporter(&buf, true, false).Statistics(nil))

	assert.Equal(t, "No statistics!\n", buf.String())
}

func TestReporter_Statistics_Negative(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := report.NewReporter(&buf, false, false).Statistics(&compilation.Statistics{OriginalSize: -5})

	assert.Error(t, err)
}

func TestReporter_Warnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		warnings []compilation.Diagnostic
		verbose  bool
		want     string
	}{
		{name: "nil", warnings: nil, verbose: true, want: "No warnings!\n"},
		{name: "empty", warnings: []compilation.Diagnostic{}, want: "No warnings!\n"},
		{name: "count only", warnings: sampleWarnings(), want: "2 warnings\n"},
		{
			name:     "verbose detail in order",
			warnings: sampleWarnings(),
			verbose:  true,
			want: "2 warnings\n" +
				"File: Input_0\n" +
				"\tType: JSC_WRONG_ARGUMENT_COUNT\n" +
				"\tLine: 3\n" +
				"\tMessage: Function f: called with 0 argument(s).\n" +
				"\tCode: f();\n" +
				"File: Input_1\n" +
				"\tType: JSC_UNREACHABLE_CODE\n" +
				"\tLine: 12\n" +
				"\tMessage: unreachable code\n" +
				"\tCode: return; x();\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, report.NewReporter(&buf, tt.verbose, false).Warnings(tt.warnings))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestReporter_Errors_NeverShowsDetail(t *testing.T) {
	t.Parallel()

	for _, verbose := range []bool{false, true} {
		var buf bytes.Buffer
		r := report.NewReporter(&buf, verbose, false)

		require.NoError(t, r.Errors(nil))
		require.NoError(t, r.Errors(sampleWarnings()))

		assert.Equal(t, "No errors!\n2 errors\n", buf.String(), "verbose=%v", verbose)
	}
}

func TestReporter_ServerErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := report.NewReporter(&buf, false, false)

	require.NoError(t, r.ServerErrors(nil))
	assert.Empty(t, buf.String())

	require.NoError(t, r.ServerErrors([]compilation.ServerError{{Code: 22, Message: "Too many compiles"}}))
	assert.Equal(t, "1 server errors\n\t22: Too many compiles\n", buf.String())
}

func TestReporter_ColorKeepsText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.NewReporter(&buf, false, true).Warnings(nil))

	out := buf.String()
	assert.Contains(t, out, "No warnings!")
	assert.Contains(t, out, "\x1b[", "colored output should carry escape codes")
}
