// Package ilspy locates and invokes the external ilspycmd decompiler.
//
// Resolution order: explicit config path, then PATH, then the dotnet
// global tools directory. The binary can be bootstrapped with
// `dotnet tool install` when missing. Invocations run under a bounded
// concurrency gate and a per-run timeout, and their output is
// concatenated under configured file-count and byte ceilings.
package ilspy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"ilspymcp/internal/config"
)

// ErrNotFound is returned when no ilspycmd binary can be located.
var ErrNotFound = errors.New("ilspycmd not found")

// InstallHint tells the user how to get the decompiler.
const InstallHint = "install it with `ilspymcp install` or `dotnet tool install --global ilspycmd`"

// Info describes a resolved decompiler binary.
type Info struct {
	// Path is the absolute path to the binary.
	Path string
	// Version is the first line of `ilspycmd --version` output, or ""
	// when the probe failed.
	Version string
}

// Resolve locates the ilspycmd binary. An explicit config path wins;
// otherwise PATH is searched, then the dotnet global tools directory.
// The returned Info includes a best-effort version probe.
func Resolve(cfg config.Config) (Info, error) {
	path, err := locate(cfg)
	if err != nil {
		return Info{}, err
	}
	return Info{Path: path, Version: probeVersion(path)}, nil
}

func locate(cfg config.Config) (string, error) {
	if cfg.DecompilerPath != "" {
		if _, err := os.Stat(cfg.DecompilerPath); err != nil {
			return "", fmt.Errorf("%w: configured path %s is not usable: %v", ErrNotFound, cfg.DecompilerPath, err)
		}
		return cfg.DecompilerPath, nil
	}

	if path, err := exec.LookPath(binaryName()); err == nil {
		return path, nil
	}

	// dotnet global tools live under ~/.dotnet/tools and are not always
	// on PATH for non-interactive processes.
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".dotnet", "tools", binaryName())
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, InstallHint)
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "ilspycmd.exe"
	}
	return "ilspycmd"
}

// probeVersion runs `ilspycmd --version` and returns the first output
// line. Failures are silently ignored — the version is advisory.
func probeVersion(path string) string {
	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}

// Install bootstraps ilspycmd as a dotnet global tool, updating it when
// already installed. Requires the dotnet SDK on PATH.
func Install(ctx context.Context) error {
	dotnet, err := exec.LookPath("dotnet")
	if err != nil {
		return fmt.Errorf("dotnet SDK not found on PATH (required to install ilspycmd): %w", err)
	}

	if err := runDotnet(ctx, dotnet, "tool", "install", "--global", "ilspycmd"); err != nil {
		// `tool install` fails when the tool exists; fall through to update.
		if updateErr := runDotnet(ctx, dotnet, "tool", "update", "--global", "ilspycmd"); updateErr != nil {
			return fmt.Errorf("installing ilspycmd: %w", err)
		}
	}
	return nil
}

func runDotnet(ctx context.Context, dotnet string, args ...string) error {
	cmd := exec.CommandContext(ctx, dotnet, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("dotnet %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
