package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDiagnostics_WritesStreamAndFile(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "nested", "diagnostics.log")

	d, err := NewDiagnostics(&out, WithDiagFile(path), WithDiagColor(true))
	if err != nil {
		t.Fatalf("NewDiagnostics: %v", err)
	}
	d.Report(errors.New("[1:3] unexpected character '@'"))
	d.Report(nil)
	d.Report(errors.New("assert failed"))
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := "[1:3] unexpected character '@'\nassert failed\n"
	if out.String() != want {
		t.Fatalf("stream = %q, want %q", out.String(), want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read diagnostics file: %v", err)
	}
	if string(data) != want {
		t.Fatalf("file = %q, want %q", data, want)
	}
	if d.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", d.Count())
	}
}

func TestDiagnostics_AppendsAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.log")
	for _, msg := range []string{"first", "second"} {
		d, err := NewDiagnostics(nil, WithDiagFile(path))
		if err != nil {
			t.Fatalf("NewDiagnostics: %v", err)
		}
		d.Report(errors.New(msg))
		d.Close()
	}
	data, _ := os.ReadFile(path)
	if string(data) != "first\nsecond\n" {
		t.Fatalf("file = %q", data)
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Fatal("buffer reported as terminal")
	}
}
