package cmd

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/jrjsmrtn/macports-scripts/config"
	"github.com/jrjsmrtn/macports-scripts/internal/log"
)

func TestNew(t *testing.T) {
	cmd := New()
	if cmd == nil {
		t.Fatal("New() returned nil")
	}
	if cmd.Use != "checkports" {
		t.Errorf("expected Use to be 'checkports', got %q", cmd.Use)
	}

	for _, name := range []string{"livecheck", "tickets", "pull-requests", "lint", "verbose", "debug", "port-command", "report"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s to be registered", name)
		}
	}
}

func TestNewCmdConfig(t *testing.T) {
	cmd := NewCmdConfig()
	if cmd == nil {
		t.Fatal("NewCmdConfig() returned nil")
	}
	if cmd.Use != "config" {
		t.Errorf("expected Use to be 'config', got %q", cmd.Use)
	}
}

func TestNewCmdVersion(t *testing.T) {
	cmd := NewCmdVersion()
	if cmd == nil {
		t.Fatal("NewCmdVersion() returned nil")
	}
	if cmd.Use != "version" {
		t.Errorf("expected Use to be 'version', got %q", cmd.Use)
	}

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"checkports ", "commit:", "built:"} {
		if !strings.Contains(output, want) {
			t.Errorf("version output missing %q, got %q", want, output)
		}
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.0.0", "abc123", "2026-01-01")

	if got := versionString(); got != "1.0.0" {
		t.Errorf("versionString() = %q, want %q", got, "1.0.0")
	}
	if got := commitString(); got != "abc123" {
		t.Errorf("commitString() = %q, want %q", got, "abc123")
	}
	if got := dateString(); got != "2026-01-01" {
		t.Errorf("dateString() = %q, want %q", got, "2026-01-01")
	}
}

func TestSelectedChecks(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "none selected runs all in report order",
			opts: Options{},
			want: []string{config.SectionLivecheck, config.SectionTickets, config.SectionPullRequests, config.SectionLint},
		},
		{
			name: "single check",
			opts: Options{Lint: true},
			want: []string{config.SectionLint},
		},
		{
			name: "selection keeps report order regardless of flag order",
			opts: Options{Tickets: true, Livecheck: true},
			want: []string{config.SectionLivecheck, config.SectionTickets},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.SelectedChecks()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SelectedChecks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerbosity(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"default is quiet", Options{}, log.LevelQuiet},
		{"verbose", Options{Verbose: true}, log.LevelVerbose},
		{"debug", Options{Debug: true}, log.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Verbosity(); got != tt.want {
				t.Errorf("Verbosity() = %d, want %d", got, tt.want)
			}
		})
	}
}
