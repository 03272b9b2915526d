package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/ochairo/stampkit/internal/domain/entities"
	"github.com/ochairo/stampkit/internal/domain/interfaces"
)

// VersionProbe runs a program with a version flag and extracts the version
// token from its standard output
type VersionProbe struct {
	flag           string
	pattern        string
	defaultTimeout time.Duration
	logger         interfaces.Logger
}

// NewVersionProbe creates a new version probe
func NewVersionProbe(flag, pattern string, timeout time.Duration, logger interfaces.Logger) *VersionProbe {
	if flag == "" {
		flag = entities.DefaultVersionFlag
	}
	if pattern == "" {
		pattern = entities.DefaultVersionPattern
	}
	if timeout <= 0 {
		timeout = entities.DefaultVersionTimeout
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &VersionProbe{
		flag:           flag,
		pattern:        pattern,
		defaultTimeout: timeout,
		logger:         logger,
	}
}

// ExecuteResult contains the result of running the probed program
type ExecuteResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Error    error
}

// Execute runs programPath with args and captures its output
func (p *VersionProbe) Execute(ctx context.Context, programPath string, args ...string) *ExecuteResult {
	startTime := time.Now()
	result := &ExecuteResult{}

	execCtx, cancel := context.WithTimeout(ctx, p.defaultTimeout)
	defer cancel()

	//nolint:gosec // G204: Running the user-supplied program is the purpose of the probe
	cmd := exec.CommandContext(execCtx, programPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	p.logger.Debug("executing program", interfaces.F("path", programPath), interfaces.F("args", args))

	err := cmd.Run()
	result.Duration = time.Since(startTime)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		result.Error = err
		var exitErr *exec.ExitError
		//nolint:gocritic // ifElseChain: checking different error types, not suitable for switch
		if execCtx.Err() == context.DeadlineExceeded {
			result.Error = fmt.Errorf("program execution timeout after %v", p.defaultTimeout)
			result.ExitCode = -1
		} else if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		return result
	}

	result.Success = true
	return result
}

// ProbeVersion runs `<programPath> <flag>` and returns the first version token
// printed on stdout
func (p *VersionProbe) ProbeVersion(ctx context.Context, programPath string) (*entities.Version, error) {
	result := p.Execute(ctx, programPath, p.flag)
	if !result.Success {
		return nil, fmt.Errorf("%s %s failed (exit %d): %w\nStderr: %s",
			programPath, p.flag, result.ExitCode, result.Error, result.Stderr)
	}

	p.logger.Debug("program finished", interfaces.F("duration", result.Duration), interfaces.F("stdout", result.Stdout))

	version, err := entities.ExtractVersion(result.Stdout, p.pattern)
	if err != nil {
		return nil, fmt.Errorf("version extraction failed: %w", err)
	}

	return version, nil
}
