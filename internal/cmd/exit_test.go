package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/lazygantt/internal/config"
	"github.com/Iron-Ham/lazygantt/internal/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"plain error", errors.New("disk full"), ExitFailure},
		{"data error", errors.NewDataError("x", errors.ErrInvalidValue), ExitInput},
		{"wrapped column error", fmt.Errorf("loading: %w", errors.NewColumnError("x", errors.ErrColumnMissing)), ExitInput},
		{"chart configuration error", errors.NewConfigError("x", errors.ErrMissingKey), ExitInput},
		{"invalid settings", config.ValidationErrors{{Field: "data.separator", Value: "", Message: "must not be empty"}}, ExitInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReportError(t *testing.T) {
	t.Run("input error", func(t *testing.T) {
		var buf bytes.Buffer
		reportError(&buf, renderCmd, errors.NewDataError("duration must be positive", errors.ErrInvalidValue).WithRow(3))
		out := buf.String()
		if !strings.HasPrefix(out, "Error: data error [row=3]") {
			t.Errorf("output = %q", out)
		}
		if strings.Contains(out, "--help") {
			t.Errorf("input errors should not point at usage: %q", out)
		}
	})

	t.Run("other error", func(t *testing.T) {
		var buf bytes.Buffer
		reportError(&buf, renderCmd, errors.New(`unknown flag: --colour`))
		if want := "Run 'lazygantt render --help' for usage."; !strings.Contains(buf.String(), want) {
			t.Errorf("output = %q, want hint %q", buf.String(), want)
		}
	})
}

func TestExitCode_Commands(t *testing.T) {
	tests := []struct {
		name string
		data string
		args []string
		want int
	}{
		{name: "valid data", data: tasksCSV, args: []string{"render", "/data/tasks.csv", "-o", "/out"}, want: ExitOK},
		{name: "missing column", data: "start;group_id\n0;1\n", args: []string{"render", "/data/tasks.csv", "-o", "/out"}, want: ExitInput},
		{name: "package past last month", data: "start;duration\n2147483647;2147483647\n", args: []string{"preview", "/data/tasks.csv"}, want: ExitInput},
		{name: "missing data file", data: tasksCSV, args: []string{"render", "/data/other.csv"}, want: ExitInput},
		{name: "invalid setting", data: tasksCSV, args: []string{"render", "--sep", "ab"}, want: ExitInput},
		{name: "too many args", data: tasksCSV, args: []string{"render", "a.csv", "b.csv"}, want: ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "/data/tasks.csv", tt.data)
			_, _, err := executeCommand(t, fs, tt.args...)
			if got := ExitCode(err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", err, got, tt.want)
			}
		})
	}
}
