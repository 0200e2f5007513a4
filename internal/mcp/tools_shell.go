package mcp

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const (
	// defaultShellTimeout bounds command execution when the caller does
	// not specify one.
	defaultShellTimeout = 30 * time.Second

	// maxShellTimeout is the hard ceiling for caller-supplied timeouts.
	maxShellTimeout = 5 * time.Minute

	// maxShellOutput caps the captured combined output.
	maxShellOutput = 64 * 1024
)

type shellCommandInput struct {
	QualifiedName  string `json:"qualified_name" jsonschema:"required,Qualified symbol name used to route to the owning project"`
	Command        string `json:"command" jsonschema:"required,Shell command to run with the resolved project root as working directory"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" jsonschema:"Command timeout in seconds (default 30, max 300)"`
}

type shellCommandOutput struct {
	Project   string `json:"project"`
	Dir       string `json:"dir" jsonschema:"Working directory the command ran in"`
	ExitCode  int    `json:"exit_code"`
	Output    string `json:"output" jsonschema:"Combined stdout and stderr, truncated at 64KB"`
	Truncated bool   `json:"truncated,omitempty"`
}

func (s *Server) registerShellTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "execute_shell_command",
		Description: "Run a shell command with the working directory set to the project that owns the given qualified symbol name.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args shellCommandInput) (*mcp.CallToolResult, shellCommandOutput, error) {
		start := time.Now()
		var toolErr error
		defer func() {
			s.metrics.RecordInvocation(ctx, "execute_shell_command", time.Since(start), toolErr)
		}()

		if args.Command == "" {
			toolErr = fmt.Errorf("command is required")
			return nil, shellCommandOutput{}, toolErr
		}

		namespace, root, err := s.resolve(ctx, args.QualifiedName)
		if err != nil {
			toolErr = err
			return nil, shellCommandOutput{}, err
		}

		timeout := defaultShellTimeout
		if args.TimeoutSeconds > 0 {
			timeout = time.Duration(args.TimeoutSeconds) * time.Second
			if timeout > maxShellTimeout {
				timeout = maxShellTimeout
			}
		}
		cmdCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		cmd := exec.CommandContext(cmdCtx, "sh", "-c", args.Command)
		cmd.Dir = root

		output, runErr := cmd.CombinedOutput()

		truncated := false
		if len(output) > maxShellOutput {
			output = output[:maxShellOutput]
			truncated = true
		}

		exitCode := 0
		if runErr != nil {
			exitErr, ok := runErr.(*exec.ExitError)
			if !ok {
				toolErr = fmt.Errorf("command failed to start: %w", runErr)
				return nil, shellCommandOutput{}, toolErr
			}
			exitCode = exitErr.ExitCode()
		}

		s.logger.Debug("shell command executed",
			zap.String("project", namespace),
			zap.String("dir", root),
			zap.Int("exit_code", exitCode),
		)

		return nil, shellCommandOutput{
			Project:   namespace,
			Dir:       root,
			ExitCode:  exitCode,
			Output:    string(output),
			Truncated: truncated,
		}, nil
	})
}
