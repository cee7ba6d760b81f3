package ilspy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"ilspymcp/internal/config"
)

// ErrOutputTooLarge is returned when decompiler output exceeds the
// configured file-count or byte ceiling.
var ErrOutputTooLarge = errors.New("decompiler output exceeds configured limits")

// Options modify a single decompile invocation.
type Options struct {
	// TypeName restricts decompilation to one fully qualified type.
	TypeName string
}

// Runner invokes ilspycmd under a bounded concurrency gate. Each run
// gets its own scratch directory for the decompiler's output files,
// which are concatenated (sorted by path for determinism) into a single
// text blob.
type Runner struct {
	cfg  config.Config
	info Info
	sem  *semaphore.Weighted
}

// NewRunner creates a Runner for a resolved decompiler.
func NewRunner(cfg config.Config, info Info) *Runner {
	n := cfg.Concurrency
	if n < 1 {
		n = 1
	}
	return &Runner{cfg: cfg, info: info, sem: semaphore.NewWeighted(int64(n))}
}

// Info returns the resolved decompiler this runner uses.
func (r *Runner) Info() Info {
	return r.info
}

// Decompile runs the decompiler on the assembly and returns the
// concatenated source text. The call blocks while the concurrency gate
// is full; the spawned process is bounded by the configured timeout.
func (r *Runner) Decompile(ctx context.Context, assemblyPath string, opts Options) (string, error) {
	if _, err := os.Stat(assemblyPath); err != nil {
		return "", fmt.Errorf("assembly %s: %w", assemblyPath, err)
	}

	if err := r.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("waiting for decompiler slot: %w", err)
	}
	defer r.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	scratch := filepath.Join(r.cfg.ScratchDir(), uuid.NewString())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return "", fmt.Errorf("creating scratch directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	args := []string{assemblyPath, "-o", scratch}
	if opts.TypeName != "" {
		args = append(args, "-t", opts.TypeName)
	}

	cmd := exec.CommandContext(ctx, r.info.Path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("ilspycmd failed: %w: %s", err, msg)
		}
		return "", fmt.Errorf("ilspycmd failed: %w", err)
	}

	return r.collect(scratch)
}

// collect concatenates the .cs files the decompiler wrote, enforcing
// the file-count and byte ceilings.
func (r *Runner) collect(scratch string) (string, error) {
	var files []string
	err := filepath.WalkDir(scratch, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".cs") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("reading decompiler output: %w", err)
	}
	sort.Strings(files)

	if len(files) == 0 {
		return "", nil
	}
	if len(files) > r.cfg.MaxFiles {
		return "", fmt.Errorf("%w: %d source files (limit %d)", ErrOutputTooLarge, len(files), r.cfg.MaxFiles)
	}

	var sb strings.Builder
	var total int64
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", f, err)
		}
		needsSep := len(data) > 0 && data[len(data)-1] != '\n'
		total += int64(len(data))
		if needsSep {
			total++
		}
		if total > r.cfg.MaxBytes {
			return "", fmt.Errorf("%w: more than %s of source (limit %s)",
				ErrOutputTooLarge, humanize.IBytes(uint64(total)), humanize.IBytes(uint64(r.cfg.MaxBytes)))
		}
		sb.Write(data)
		if needsSep {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}
