package macports

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/jrjsmrtn/macports-scripts/internal/log"
)

// DefaultBinary is the port executable used when no override is given.
const DefaultBinary = "port"

// DefaultTimeout bounds a single port invocation. Livecheck across a full
// port set hits many upstreams, so the bound is generous.
const DefaultTimeout = 10 * time.Minute

// Client invokes the MacPorts port(1) command.
type Client struct {
	binary  string
	timeout time.Duration
}

// NewClient returns a Client running the given port binary. An empty binary
// selects DefaultBinary.
func NewClient(binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{
		binary:  binary,
		timeout: DefaultTimeout,
	}
}

// Ports evaluates a port expression with `port echo` and returns the names
// of the matching ports.
func (c *Client) Ports(ctx context.Context, expr string) ([]string, error) {
	args := strings.Fields(expr)
	stdout, stderr, err := c.run(ctx, "echo", args...)
	if err != nil {
		return nil, &CommandError{Subcommand: "echo", Args: args, Stderr: stderr, Err: err}
	}
	return parseEcho(stdout), nil
}

// SubportInfo runs `port info --subports` for the given ports and returns
// the raw output. The caller owns the parsing.
func (c *Client) SubportInfo(ctx context.Context, ports []string) (string, error) {
	if len(ports) == 0 {
		return "", nil
	}
	args := append([]string{"--subports"}, ports...)
	stdout, stderr, err := c.run(ctx, "info", args...)
	if err != nil {
		return "", &CommandError{Subcommand: "info", Args: args, Stderr: stderr, Err: err}
	}
	return stdout, nil
}

// Livecheck runs `port livecheck` across the given ports and returns the
// combined stdout and stderr. livecheck exits nonzero when ports are
// outdated, so a nonzero exit that still produced output is output, not an
// error; a nonzero exit with no output at all is a real failure.
func (c *Client) Livecheck(ctx context.Context, ports []string) (string, error) {
	if len(ports) == 0 {
		return "", nil
	}
	args := append([]string{"livecheck"}, ports...)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	log.Debug("running port", "binary", c.binary, "args", strings.Join(args, " "))

	var combined bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Stdout = &combined
	cmd.Stderr = &combined
	if err := cmd.Run(); err != nil && combined.Len() == 0 {
		return "", &CommandError{Subcommand: "livecheck", Args: args[1:], Err: err}
	}
	return combined.String(), nil
}

// Lint runs `port lint` for a single port and returns its output. Like
// livecheck, lint exits nonzero when it found errors; output wins over the
// exit status.
func (c *Client) Lint(ctx context.Context, port string) (string, error) {
	stdout, stderr, err := c.run(ctx, "lint", port)
	if err != nil && stdout == "" {
		return "", &CommandError{Subcommand: "lint", Args: []string{port}, Stderr: stderr, Err: err}
	}
	return stdout, nil
}

// run executes one port subcommand, capturing stdout and stderr separately.
// Every invocation is bounded by the client timeout.
func (c *Client) run(ctx context.Context, subcommand string, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	argv := append([]string{subcommand}, args...)
	log.Debug("running port", "binary", c.binary, "args", strings.Join(argv, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, argv...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// parseEcho extracts port names from `port echo` output, one port per line.
// Lines may carry extra columns (versions, variants); the name is the first
// field.
func parseEcho(output string) []string {
	var ports []string
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		ports = append(ports, fields[0])
	}
	return ports
}
