package ilspy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ilspymcp/internal/config"
)

// scriptFindOutDir is the shell prelude that extracts the -o argument
// into $out, the way the real decompiler receives its output directory.
const scriptFindOutDir = `
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "-o" ]; then out="$a"; fi
  prev="$a"
done
mkdir -p "$out"
`

func testRunner(t *testing.T, script string, mutate func(*config.Config)) *Runner {
	t.Helper()
	dir := t.TempDir()
	path := writeFakeDecompiler(t, dir, script)

	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.TimeoutSeconds = 30
	if mutate != nil {
		mutate(&cfg)
	}
	return NewRunner(cfg, Info{Path: path, Version: "test"})
}

func fakeAssembly(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Acme.Widgets.dll")
	if err := os.WriteFile(path, []byte("MZ fake"), 0o644); err != nil {
		t.Fatalf("writing fake assembly: %v", err)
	}
	return path
}

func TestDecompile_ConcatenatesOutput(t *testing.T) {
	script := scriptFindOutDir + `
printf 'namespace A { class One { } }\n' > "$out/A.cs"
printf 'namespace B { class Two { } }\n' > "$out/B.cs"
`
	r := testRunner(t, script, nil)

	text, err := r.Decompile(context.Background(), fakeAssembly(t), Options{})
	if err != nil {
		t.Fatalf("Decompile failed: %v", err)
	}
	// Sorted by path: A.cs before B.cs.
	iA := strings.Index(text, "namespace A")
	iB := strings.Index(text, "namespace B")
	if iA < 0 || iB < 0 {
		t.Fatalf("output missing namespaces: %q", text)
	}
	if iA > iB {
		t.Error("output files not concatenated in sorted order")
	}
}

func TestDecompile_MissingAssembly(t *testing.T) {
	r := testRunner(t, scriptFindOutDir, nil)

	_, err := r.Decompile(context.Background(), filepath.Join(t.TempDir(), "gone.dll"), Options{})
	if err == nil {
		t.Fatal("expected error for missing assembly")
	}
	if !strings.Contains(err.Error(), "gone.dll") {
		t.Errorf("error %q should name the missing assembly", err)
	}
}

func TestDecompile_ToolFailureCarriesStderr(t *testing.T) {
	r := testRunner(t, `echo "PEFile: invalid header" >&2; exit 1`, nil)

	_, err := r.Decompile(context.Background(), fakeAssembly(t), Options{})
	if err == nil {
		t.Fatal("expected error from failing decompiler")
	}
	if !strings.Contains(err.Error(), "invalid header") {
		t.Errorf("error %q should carry the tool's stderr", err)
	}
}

func TestDecompile_FileCountCeiling(t *testing.T) {
	script := scriptFindOutDir + `
for i in 1 2 3; do printf 'class C%s { }\n' "$i" > "$out/$i.cs"; done
`
	r := testRunner(t, script, func(cfg *config.Config) { cfg.MaxFiles = 2 })

	_, err := r.Decompile(context.Background(), fakeAssembly(t), Options{})
	if !errors.Is(err, ErrOutputTooLarge) {
		t.Fatalf("err = %v, want ErrOutputTooLarge", err)
	}
}

func TestDecompile_ByteCeiling(t *testing.T) {
	script := scriptFindOutDir + `
head -c 4096 /dev/zero | tr '\0' 'x' > "$out/Big.cs"
`
	r := testRunner(t, script, func(cfg *config.Config) { cfg.MaxBytes = 1024 })

	_, err := r.Decompile(context.Background(), fakeAssembly(t), Options{})
	if !errors.Is(err, ErrOutputTooLarge) {
		t.Fatalf("err = %v, want ErrOutputTooLarge", err)
	}
}

func TestDecompile_ByteCeilingCountsSeparators(t *testing.T) {
	// Two 512-byte files without trailing newlines fill a 1024-byte
	// limit exactly; the newlines appended between them must push the
	// total over the ceiling.
	script := scriptFindOutDir + `
head -c 512 /dev/zero | tr '\0' 'x' > "$out/A.cs"
head -c 512 /dev/zero | tr '\0' 'y' > "$out/B.cs"
`
	r := testRunner(t, script, func(cfg *config.Config) { cfg.MaxBytes = 1024 })

	_, err := r.Decompile(context.Background(), fakeAssembly(t), Options{})
	if !errors.Is(err, ErrOutputTooLarge) {
		t.Fatalf("err = %v, want ErrOutputTooLarge", err)
	}
}

func TestDecompile_ResultNeverExceedsByteCeiling(t *testing.T) {
	script := scriptFindOutDir + `
head -c 500 /dev/zero | tr '\0' 'x' > "$out/A.cs"
head -c 500 /dev/zero | tr '\0' 'y' > "$out/B.cs"
`
	r := testRunner(t, script, func(cfg *config.Config) { cfg.MaxBytes = 1024 })

	text, err := r.Decompile(context.Background(), fakeAssembly(t), Options{})
	if err != nil {
		t.Fatalf("Decompile failed: %v", err)
	}
	if int64(len(text)) > 1024 {
		t.Errorf("result is %d bytes, exceeds the 1024-byte limit", len(text))
	}
}

func TestDecompile_TypeNamePassedThrough(t *testing.T) {
	script := scriptFindOutDir + `
printf '%s\n' "$@" > "$out/Args.cs"
`
	r := testRunner(t, script, nil)

	text, err := r.Decompile(context.Background(), fakeAssembly(t), Options{TypeName: "Acme.Widgets.Widget"})
	if err != nil {
		t.Fatalf("Decompile failed: %v", err)
	}
	if !strings.Contains(text, "-t") || !strings.Contains(text, "Acme.Widgets.Widget") {
		t.Errorf("decompiler args missing -t flag: %q", text)
	}
}

func TestDecompile_EmptyOutput(t *testing.T) {
	r := testRunner(t, scriptFindOutDir, nil)

	text, err := r.Decompile(context.Background(), fakeAssembly(t), Options{})
	if err != nil {
		t.Fatalf("Decompile failed: %v", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty for producing no files", text)
	}
}

func TestDecompile_ScratchCleanedUp(t *testing.T) {
	script := scriptFindOutDir + `printf 'class C { }\n' > "$out/C.cs"`
	r := testRunner(t, script, nil)

	if _, err := r.Decompile(context.Background(), fakeAssembly(t), Options{}); err != nil {
		t.Fatalf("Decompile failed: %v", err)
	}

	entries, err := os.ReadDir(r.cfg.ScratchDir())
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("scratch dir not cleaned: %d entries remain", len(entries))
	}
}
