package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

type testFlags struct {
	DiagFile string `default:"default.log"`
	MaxDepth int    `default:"10"`
	Color    bool   `default:"true" negatable:""`
	History  string `default:"hist"`
}

func parseWithConfig(t *testing.T, content string, args ...string) testFlags {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var flags testFlags
	p, err := kong.New(&flags,
		kong.Configuration(loadYAML, path),
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }),
	)
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}
	if _, err := p.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return flags
}

func TestLoadYAML(t *testing.T) {
	got := parseWithConfig(t, "diag-file: /tmp/x.log\nmax_depth: 42\ncolor: false\n")
	want := testFlags{DiagFile: "/tmp/x.log", MaxDepth: 42, Color: false, History: "hist"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("flags mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAMLFlagsWin(t *testing.T) {
	got := parseWithConfig(t, "max-depth: 42\nhistory: from-config\n", "--max-depth=7")
	if got.MaxDepth != 7 {
		t.Fatalf("MaxDepth = %d, want the command-line value 7", got.MaxDepth)
	}
	if got.History != "from-config" {
		t.Fatalf("History = %q, want from-config", got.History)
	}
}

func TestLoadYAMLEmpty(t *testing.T) {
	got := parseWithConfig(t, "")
	want := testFlags{DiagFile: "default.log", MaxDepth: 10, Color: true, History: "hist"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("flags mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAMLInvalid(t *testing.T) {
	if _, err := loadYAML(strings.NewReader("key: [unclosed")); err == nil {
		t.Fatalf("expected an error for malformed YAML")
	}
}

func TestConfigResolveNames(t *testing.T) {
	cfg := config{"log_level": "debug", "color": false}
	flag := &kong.Flag{Value: &kong.Value{Name: "log-level"}}
	v, err := cfg.Resolve(nil, nil, flag)
	if err != nil || v != "debug" {
		t.Fatalf("Resolve(log-level) = %v, %v", v, err)
	}
	flag = &kong.Flag{Value: &kong.Value{Name: "history"}}
	if v, _ := cfg.Resolve(nil, nil, flag); v != nil {
		t.Fatalf("Resolve(history) = %v, want nil", v)
	}
}

func TestConfigFlag(t *testing.T) {
	tests := []struct {
		args []string
		want string
		ok   bool
	}{
		{[]string{"--config=/etc/v.yaml"}, "/etc/v.yaml", true},
		{[]string{"--log-level", "debug", "--config", "c.yaml", "prog.vp"}, "c.yaml", true},
		{[]string{"prog.vp"}, "", false},
		{[]string{"--", "--config=x"}, "", false},
	}
	for _, tt := range tests {
		got, ok := configFlag(tt.args)
		if got != tt.want || ok != tt.ok {
			t.Errorf("configFlag(%q) = %q, %v; want %q, %v", tt.args, got, ok, tt.want, tt.ok)
		}
	}
}
