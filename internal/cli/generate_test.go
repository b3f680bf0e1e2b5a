// Package cli_test exercises the commands end to end.
package cli_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/jmylchreest/autobase16/internal/cli"
)

const testPool = `#1d1f21
#282a36
#373b41
#44475a
#6272a4
#c5c8c6
#f8f8f2
#ff5555
#50fa7b
#f1fa8c
#bd93f9
#ff79c6
#8be9fd
#ffb86c
#cc6666
#b5bd68
#81a2be
#b294bb
#8abeb7
#de935f
#969896
#e0e0e0
`

// setupTests isolates the user config directory and writes a pool file.
func setupTests(t *testing.T) (dir, poolPath string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))

	poolPath = filepath.Join(dir, "pool.txt")
	if err := os.WriteFile(poolPath, []byte(testPool), 0o600); err != nil {
		t.Fatalf("Failed to write pool: %v", err)
	}
	return dir, poolPath
}

func runCmd(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	if stdin != nil {
		rootCmd.SetIn(stdin)
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func writeTestImage(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	bands := []color.RGBA{
		{R: 0x10, G: 0x10, B: 0x18, A: 255},
		{R: 0x20, G: 0x22, B: 0x30, A: 255},
		{R: 0xd0, G: 0xd0, B: 0xc8, A: 255},
		{R: 0xe0, G: 0x60, B: 0x50, A: 255},
	}
	for x := range 16 {
		for y := range 16 {
			img.Set(x, y, bands[x/4])
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

var hexLine = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestGenerateReport(t *testing.T) {
	_, poolPath := setupTests(t)

	stdout, _, err := runCmd(t, nil, "generate", "--pool", poolPath, "--seed", "1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if !strings.HasPrefix(stdout, "Pool: 22 colours") {
		t.Errorf("report should start with the pool size, got:\n%s", stdout)
	}
	for _, want := range []string{"ROLE", "base00", "base0F", "force-dark", "ceiling 0.08"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("report missing %q:\n%s", want, stdout)
		}
	}
}

func TestGenerateJSON(t *testing.T) {
	_, poolPath := setupTests(t)

	stdout, _, err := runCmd(t, nil, "generate", "--pool", poolPath, "--seed", "1", "--format", "json", "--scheme-name", "Test Scheme")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	var got struct {
		Scheme  string            `json:"scheme"`
		Slug    string            `json:"slug"`
		Colours map[string]string `json:"colours"`
		Order   []string          `json:"order"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON report: %v\n%s", err, stdout)
	}
	if got.Scheme != "Test Scheme" || got.Slug != "test-scheme" {
		t.Errorf("unexpected metadata: %+v", got)
	}
	if len(got.Colours) != 16 || len(got.Order) != 16 {
		t.Errorf("want 16 colours, got %d (order %d)", len(got.Colours), len(got.Order))
	}
}

func TestGenerateRenderAndReRender(t *testing.T) {
	dir, poolPath := setupTests(t)

	tmplPath := filepath.Join(dir, "colors.mustache")
	tmpl := "name={{scheme-name}}\nbg=#{{base00-hex}}\nred={{base08-rgb-r}}\n"
	if err := os.WriteFile(tmplPath, []byte(tmpl), 0o600); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "out", "colors.conf")
	schemePath := filepath.Join(dir, "auto.yaml")

	_, _, err := runCmd(t, nil, "generate",
		"--pool", poolPath, "--seed", "1",
		"--template", tmplPath, "--output", outPath,
		"--save-scheme", schemePath, "--scheme-name", "Auto")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	rendered, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("rendered output not written: %v", err)
	}
	if !regexp.MustCompile(`^name=Auto\nbg=#[0-9a-f]{6}\nred=\d+\n$`).Match(rendered) {
		t.Errorf("unexpected rendered output:\n%s", rendered)
	}

	// Rendering the saved scheme reproduces the same output on stdout.
	stdout, _, err := runCmd(t, nil, "render", "--scheme", schemePath, "--template", tmplPath)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if stdout != string(rendered) {
		t.Errorf("render output differs:\n%s\nwant:\n%s", stdout, rendered)
	}
}

func TestGenerateTemplateToStdout(t *testing.T) {
	dir, poolPath := setupTests(t)

	tmplPath := filepath.Join(dir, "colors.tmpl")
	if err := os.WriteFile(tmplPath, []byte(`{{ .base00 | hex }}`), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := runCmd(t, nil, "generate", "--pool", poolPath, "--seed", "1", "--template", tmplPath, "--syntax", "go")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !hexLine.MatchString(stdout) {
		t.Errorf("stdout = %q, want only the rendered colour", stdout)
	}
	if strings.Contains(stderr, "ROLE") {
		t.Errorf("report shown without --verbose:\n%s", stderr)
	}
}

func TestGenerateStdinPool(t *testing.T) {
	setupTests(t)

	stdout, _, err := runCmd(t, strings.NewReader("#000000\n#ff0000\n#FF0000\n"), "generate", "--pool", "-", "--seed", "3", "-q")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("--quiet should suppress the report, got:\n%s", stdout)
	}

	stdout, stderr, err := runCmd(t, strings.NewReader("#000000\n#ff0000\n#FF0000\n"), "generate", "--pool", "-", "--seed", "3")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "Pool: 2 colours") {
		t.Errorf("duplicates should collapse, got:\n%s", stdout)
	}
	if !strings.Contains(stderr, "no viable candidate") {
		t.Errorf("expected fallback warnings on stderr, got:\n%s", stderr)
	}
}

func TestGenerateFromImage(t *testing.T) {
	dir, _ := setupTests(t)
	imgPath := filepath.Join(dir, "wall.png")
	writeTestImage(t, imgPath)

	stdout, _, err := runCmd(t, nil, "generate", "--image", imgPath, "--seed", "1", "--colours", "8")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "Pool: 4 colours") {
		t.Errorf("unexpected report:\n%s", stdout)
	}
}

func TestGenerateDryRun(t *testing.T) {
	dir, poolPath := setupTests(t)
	schemePath := filepath.Join(dir, "never.yaml")

	if _, _, err := runCmd(t, nil, "generate", "--pool", poolPath, "--save-scheme", schemePath, "--dry-run"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := os.Stat(schemePath); !os.IsNotExist(err) {
		t.Errorf("--dry-run wrote %s", schemePath)
	}
}

func TestGenerateConfig(t *testing.T) {
	dir, poolPath := setupTests(t)

	t.Run("default config file is loaded", func(t *testing.T) {
		cfgDir := filepath.Join(dir, "config", "autobase16")
		if err := os.MkdirAll(cfgDir, 0o755); err != nil {
			t.Fatal(err)
		}
		cfgPath := filepath.Join(cfgDir, "config.toml")
		if err := os.WriteFile(cfgPath, []byte("background_ceilings = [0.05]\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(cfgPath)

		stdout, _, err := runCmd(t, nil, "generate", "--pool", poolPath, "--seed", "1")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if !strings.Contains(stdout, "ceiling 0.05") || strings.Contains(stdout, "ceiling 0.08") {
			t.Errorf("config file ceilings not applied:\n%s", stdout)
		}
	})

	t.Run("flags override", func(t *testing.T) {
		stdout, _, err := runCmd(t, nil, "generate", "--pool", poolPath, "--seed", "1",
			"--background-ceilings", "0.1,0.12", "--role", "base08=random")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if !strings.Contains(stdout, "ceiling 0.12") {
			t.Errorf("flag ceilings not applied:\n%s", stdout)
		}
		if !strings.Contains(stdout, "random") {
			t.Errorf("role override not applied:\n%s", stdout)
		}
	})

	t.Run("explicit config file", func(t *testing.T) {
		cfgPath := filepath.Join(dir, "custom.toml")
		if err := os.WriteFile(cfgPath, []byte("[roles]\nbase06 = \"nonsense\"\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, _, err := runCmd(t, nil, "generate", "--pool", poolPath, "--config", cfgPath)
		if err == nil || !strings.Contains(err.Error(), "unknown strategy") {
			t.Errorf("error = %v, want unknown strategy", err)
		}
	})

	t.Run("inconsistent thresholds", func(t *testing.T) {
		_, _, err := runCmd(t, nil, "generate", "--pool", poolPath, "--min-text-contrast", "0.9")
		if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
			t.Errorf("error = %v, want invalid configuration", err)
		}
	})
}

func TestGenerateErrors(t *testing.T) {
	dir, poolPath := setupTests(t)

	emptyPool := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(emptyPool, []byte("\n\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	badPool := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(badPool, []byte("#000000\n#12345\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no pool", args: []string{"generate"}, wantErr: "a colour pool is required"},
		{name: "empty pool", args: []string{"generate", "--pool", emptyPool}, wantErr: "colour pool is empty"},
		{name: "malformed colour", args: []string{"generate", "--pool", badPool}, wantErr: "invalid hex colour"},
		{name: "missing pool", args: []string{"generate", "--pool", filepath.Join(dir, "nope.txt")}, wantErr: "not found"},
		{name: "bad format", args: []string{"generate", "--pool", poolPath, "--format", "xml"}, wantErr: "unsupported format"},
		{name: "bad syntax", args: []string{"generate", "--pool", poolPath, "--syntax", "jinja"}, wantErr: "unknown template syntax"},
		{name: "missing template", args: []string{"generate", "--pool", poolPath, "--template", filepath.Join(dir, "nope.tmpl")}, wantErr: "failed to read template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCmd(t, nil, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	dir, _ := setupTests(t)
	imgPath := filepath.Join(dir, "wall.png")
	writeTestImage(t, imgPath)

	stdout, _, err := runCmd(t, nil, "extract", imgPath, "--seed", "1")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 4 {
		t.Fatalf("want 4 colours, got %d:\n%s", len(lines), stdout)
	}
	for _, l := range lines {
		if !hexLine.MatchString(l) {
			t.Errorf("pool line %q is not a hex colour", l)
		}
	}

	// The extracted pool feeds straight back into generate.
	poolPath := filepath.Join(dir, "extracted.txt")
	if _, _, err := runCmd(t, nil, "extract", imgPath, "--seed", "1", "-o", poolPath); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if _, _, err := runCmd(t, nil, "generate", "--pool", poolPath, "--seed", "1"); err != nil {
		t.Errorf("generate on extracted pool failed: %v", err)
	}

	if _, _, err := runCmd(t, nil, "extract", imgPath, "--colours", "0"); err == nil {
		t.Error("extract accepted --colours 0")
	}
}

func TestRenderErrors(t *testing.T) {
	dir, _ := setupTests(t)
	schemePath := filepath.Join(dir, "short.yaml")
	if err := os.WriteFile(schemePath, []byte("scheme: short\nbase00: \"000000\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	tmplPath := filepath.Join(dir, "t.mustache")
	if err := os.WriteFile(tmplPath, []byte("{{base00-hex}}"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCmd(t, nil, "render", "--template", tmplPath); err == nil {
		t.Error("render without --scheme succeeded")
	}
	_, _, err := runCmd(t, nil, "render", "--scheme", schemePath, "--template", tmplPath)
	if err == nil || !strings.Contains(err.Error(), "missing base01") {
		t.Errorf("error = %v, want missing base01", err)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCmd(t, nil, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "autobase16 version") {
		t.Errorf("unexpected version output: %q", stdout)
	}
}
