package commands_test

import (
	"bytes"
	"closurec/internal/client"
	"closurec/internal/client/commands"
	"closurec/internal/version"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests that execute the command are not parallel: each run reconfigures the
// process-wide logger to write into its own stderr buffer.

const endToEndResponse = `{"compiledCode":"var a=1,b=2;","statistics":{"originalSize":20,` +
	`"originalGzipSize":20,"compressedSize":13,"compressedGzipSize":13},"warnings":[],"errors":[]}`

type run struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, args ...string) run {
	t.Helper()

	cmd := commands.NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return run{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func compileServer(t *testing.T, body string) (*httptest.Server, chan url.Values) {
	t.Helper()
	forms := make(chan url.Values, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if assert.NoError(t, r.ParseForm()) {
			forms <- r.PostForm
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, forms
}

func writeInputs(t *testing.T) (dir, a, b string) {
	t.Helper()
	dir = t.TempDir()
	a = filepath.Join(dir, "a.js")
	b = filepath.Join(dir, "b.js")
	require.NoError(t, os.WriteFile(a, []byte("var a = 1;"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("var b = 2;"), 0o600))
	return dir, a, b
}

func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, sub := range cmd.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

// TestNewRootCmd verifies the command metadata and flag surface.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := commands.NewRootCmd()

	require.NotNil(t, cmd)
	assert.Equal(t, "closurec", cmd.Name())
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Version)
	assert.NotNil(t, findSubcommand(cmd, "version"), "version subcommand should be registered")

	tests := []struct {
		name      string
		shorthand string
		typ       string
		def       string
	}{
		{name: "input", shorthand: "i", typ: "stringSlice", def: "[]"},
		{name: "output", shorthand: "o", typ: "string", def: ""},
		{name: "level", shorthand: "l", typ: "int", def: "2"},
		{name: "verbose", shorthand: "v", typ: "bool", def: "false"},
		{name: "api-url", typ: "string", def: client.DefaultAPIURL},
		{name: "timeout", typ: "duration", def: client.DefaultTimeout.String()},
		{name: "format", typ: "string", def: "text"},
		{name: "color", typ: "string", def: "auto"},
		{name: "config", typ: "string", def: ""},
		{name: "log-level", typ: "string", def: "warn"},
		{name: "log-format", typ: "string", def: "text"},
	}
	for _, tt := range tests {
		flag := cmd.Flags().Lookup(tt.name)
		require.NotNil(t, flag, "--%s should be defined", tt.name)
		assert.Equal(t, tt.shorthand, flag.Shorthand, tt.name)
		assert.Equal(t, tt.typ, flag.Value.Type(), tt.name)
		assert.Equal(t, tt.def, flag.DefValue, tt.name)
		assert.NotEmpty(t, flag.Usage, tt.name)
	}
}

func TestRootCmd_CompileEndToEnd(t *testing.T) {
	server, forms := compileServer(t, endToEndResponse)
	dir, a, b := writeInputs(t)
	output := filepath.Join(dir, "out.js")

	res := execute(t, "-i", a, "-i", b, "-o", output, "-l", "2", "--api-url", server.URL)

	require.NoError(t, res.err)
	assert.Equal(t, "Reading files...\n"+
		"Sending request...\n"+
		"\n"+
		"Original Size: 0.02 KiB gzipped (0.02 KiB uncompressed)\n"+
		"Compiled Size: 0.01 KiB gzipped (0.01 KiB uncompressed)\n"+
		"No warnings!\n"+
		"No errors!\n", res.stdout)
	assert.NotContains(t, res.stderr, "Error:")

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "var a=1,b=2;", string(written))

	require.Len(t, forms, 1)
	form := <-forms
	assert.Equal(t, []string{"var a = 1;", "var b = 2;"}, form["js_code"])
	assert.Equal(t, "SIMPLE_OPTIMIZATIONS", form.Get("compilation_level"))
	assert.Equal(t, "json", form.Get("output_format"))
	assert.Equal(t, "VERBOSE", form.Get("warning_level"))
}

func TestRootCmd_CommaSeparatedInputsAndAdvancedLevel(t *testing.T) {
	server, forms := compileServer(t, endToEndResponse)
	dir, a, b := writeInputs(t)

	res := execute(t, "--input", a+","+b, "--output", filepath.Join(dir, "out.js"),
		"--level", "3", "--api-url", server.URL)

	require.NoError(t, res.err)
	require.Len(t, forms, 1)
	form := <-forms
	assert.Len(t, form["js_code"], 2)
	assert.Equal(t, "ADVANCED_OPTIMIZATIONS", form.Get("compilation_level"))
}

func TestRootCmd_PositionalInputsFollowFlag(t *testing.T) {
	server, forms := compileServer(t, endToEndResponse)
	dir, a, b := writeInputs(t)

	res := execute(t, "-i", a, b, "-o", filepath.Join(dir, "out.js"), "--api-url", server.URL)

	require.NoError(t, res.err)
	require.Len(t, forms, 1)
	assert.Equal(t, []string{"var a = 1;", "var b = 2;"}, (<-forms)["js_code"])
}

func TestRootCmd_IncompleteStatisticsFails(t *testing.T) {
	server, _ := compileServer(t, `{"compiledCode":"var a=1;","statistics":{"originalSize":20}}`)
	dir, a, _ := writeInputs(t)
	output := filepath.Join(dir, "out.js")

	res := execute(t, "-i", a, "-o", output, "--api-url", server.URL)

	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Error: compile: unexpected compilation response")
	assert.NotContains(t, res.stdout, "Original Size")
	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err), "no output file is written")
}

func TestRootCmd_LoadFailureReportedOnce(t *testing.T) {
	server, _ := compileServer(t, endToEndResponse)
	dir, a, _ := writeInputs(t)
	missing := filepath.Join(dir, "missing.js")

	res := execute(t, "-i", a, "-i", missing, "-o", filepath.Join(dir, "out.js"), "--api-url", server.URL)

	require.Error(t, res.err)
	lines := strings.Split(strings.TrimSpace(res.stderr), "\n")
	require.Len(t, lines, 1, "stderr: %s", res.stderr)
	assert.True(t, strings.HasPrefix(lines[0], "Error: load inputs: "), lines[0])
	assert.Contains(t, lines[0], missing)
}

func TestRootCmd_JSONFormat(t *testing.T) {
	server, _ := compileServer(t, endToEndResponse)
	dir, a, _ := writeInputs(t)

	res := execute(t, "-i", a, "-o", filepath.Join(dir, "out.js"), "--format", "json", "--api-url", server.URL)
	require.NoError(t, res.err)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			CompilationLevel string `json:"compilationLevel"`
			CompiledBytes    int    `json:"compiledBytes"`
			Statistics       struct {
				OriginalSizeText string `json:"originalSizeText"`
			} `json:"statistics"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &envelope), "stdout must be a single JSON document")
	assert.True(t, envelope.Success)
	assert.Equal(t, "SIMPLE_OPTIMIZATIONS", envelope.Data.CompilationLevel)
	assert.Equal(t, len("var a=1,b=2;"), envelope.Data.CompiledBytes)
	assert.Equal(t, "0.02 KiB", envelope.Data.Statistics.OriginalSizeText)
}

func TestRootCmd_Failures(t *testing.T) {
	server, forms := compileServer(t, endToEndResponse)
	dir, a, _ := writeInputs(t)
	output := filepath.Join(dir, "out.js")
	missing := filepath.Join(dir, "missing.js")

	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{
			name:       "no output",
			args:       []string{"-i", a, "--api-url", server.URL},
			wantStderr: "Error: invalid argument: an output file is required",
		},
		{
			name:       "no input",
			args:       []string{"-o", output, "--api-url", server.URL},
			wantStderr: "Error: invalid argument: at least one input file is required",
		},
		{
			name:       "level out of range",
			args:       []string{"-i", a, "-o", output, "-l", "4", "--api-url", server.URL},
			wantStderr: "between 1 and 3",
		},
		{
			name:       "missing input file",
			args:       []string{"-i", a, "-i", missing, "-o", output, "--api-url", server.URL},
			wantStderr: "Error: load inputs: file access failed: " + missing,
		},
		{
			name:       "unknown format",
			args:       []string{"-i", a, "-o", output, "--format", "xml", "--api-url", server.URL},
			wantStderr: "report.format",
		},
		{
			name:       "missing positional input",
			args:       []string{missing, "-o", output, "--api-url", server.URL},
			wantStderr: "Error: load inputs: file access failed: " + missing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, tt.args...)

			require.Error(t, res.err)
			assert.Contains(t, res.stderr, tt.wantStderr)
			assert.Empty(t, forms, "no request is sent")
			_, err := os.Stat(output)
			assert.True(t, os.IsNotExist(err), "no output file is created")
		})
	}
}

func TestRootCmd_UnreachableServiceJSONError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	dir, a, _ := writeInputs(t)
	output := filepath.Join(dir, "out.js")

	res := execute(t, "-i", a, "-o", output, "--format", "json", "--api-url", "http://"+addr+"/compile")

	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Error: compile: network request failed")

	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "NETWORK_ERROR", envelope.Error.Code)
	assert.Contains(t, envelope.Error.Message, "compile: ")

	_, err = os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestRootCmd_ConfigFileAndFlagPrecedence(t *testing.T) {
	server, forms := compileServer(t, endToEndResponse)
	dir, a, _ := writeInputs(t)
	output := filepath.Join(dir, "from-config.js")

	configPath := filepath.Join(dir, "closurec.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"compiler:\n  api_url: "+server.URL+"\n"+
			"compile:\n  inputs: ["+a+"]\n  output: "+output+"\n  level: whitespace_only\n"+
			"report:\n  color: \"off\"\n"), 0o600))

	res := execute(t, "--config", configPath)
	require.NoError(t, res.err)
	require.Len(t, forms, 1)
	assert.Equal(t, "WHITESPACE_ONLY", (<-forms).Get("compilation_level"))

	res = execute(t, "--config", configPath, "-l", "3")
	require.NoError(t, res.err)
	require.Len(t, forms, 1)
	assert.Equal(t, "ADVANCED_OPTIMIZATIONS", (<-forms).Get("compilation_level"), "flags win over the file")

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "var a=1,b=2;", string(written))
}

func TestRootCmd_MissingConfigFile(t *testing.T) {
	res := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "-i", "a.js", "-o", "out.js")

	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "error reading config file")
}

func TestRootCmd_DebugLoggingGoesToStderr(t *testing.T) {
	server, _ := compileServer(t, endToEndResponse)
	dir, a, _ := writeInputs(t)

	res := execute(t, "-i", a, "-o", filepath.Join(dir, "out.js"),
		"--api-url", server.URL, "--log-level", "debug", "--log-format", "json")

	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, `"level":"DEBUG"`)
	assert.Contains(t, res.stderr, "run metrics")
	assert.NotContains(t, res.stdout, "DEBUG")
}

func TestRootCmd_VersionFlag(t *testing.T) {
	res := execute(t, "--version")

	require.NoError(t, res.err)
	assert.Equal(t, version.GetVersion().String()+"\n", res.stdout)
	assert.True(t, strings.HasPrefix(res.stdout, "closurec "))
}

func TestVersionCmd(t *testing.T) {
	res := execute(t, "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "closurec\nVersion: ")

	res = execute(t, "version", "--short")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "Version:")
	assert.NotEmpty(t, res.stdout)
}
