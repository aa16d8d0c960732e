package actions

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/PixPMusic/gopher-surface/internal/logger"
)

// ShellHandler handles Shell Command execution logic. Commands are started
// and reaped in the background; Execute never waits for them.
type ShellHandler struct {
	log *logger.Log
}

func NewShellHandler(log *logger.Log) *ShellHandler {
	return &ShellHandler{log: log.Module("shell")}
}

func (h *ShellHandler) IsSupported() bool {
	switch runtime.GOOS {
	case "windows", "darwin", "linux":
		return true
	}
	return false
}

// Execute starts code with the arguments as positional parameters ($1,
// $2, ... on Unix, $args on Windows).
func (h *ShellHandler) Execute(code string, args []float64) (string, error) {
	cmd, err := h.command(code, args)
	if err != nil {
		return "", err
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("shell execution failed: %w", err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			entry := h.log.WithError(err).WithField("pid", cmd.Process.Pid)
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				entry = entry.WithField("stderr", msg)
			}
			entry.Warn("shell command failed")
		}
	}()

	return fmt.Sprintf("started pid %d", cmd.Process.Pid), nil
}

func (h *ShellHandler) command(code string, args []float64) (*exec.Cmd, error) {
	params := make([]string, 0, len(args))
	for _, a := range args {
		params = append(params, strconv.FormatFloat(a, 'f', -1, 64))
	}

	switch runtime.GOOS {
	case "windows":
		return exec.Command("powershell", append([]string{"-NoProfile", "-NonInteractive", "-Command", code}, params...)...), nil
	case "darwin", "linux":
		shell := "/bin/bash"
		if runtime.GOOS == "darwin" {
			if _, err := exec.LookPath("zsh"); err == nil {
				shell = "/bin/zsh"
			}
		}
		return exec.Command(shell, append([]string{"-c", code, "gopher-surface"}, params...)...), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func (h *ShellHandler) Validate(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("empty command")
	}
	if strings.Contains(code, "\x00") {
		return fmt.Errorf("command contains null bytes")
	}
	return nil
}
