package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectEditor(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		expect string
	}{
		{"sapcli editor wins", map[string]string{"SAPCLI_EDITOR": "nano", "VISUAL": "code -w", "EDITOR": "vim"}, "nano"},
		{"visual before editor", map[string]string{"VISUAL": "code -w", "EDITOR": "vim"}, "code -w"},
		{"editor", map[string]string{"EDITOR": "vim"}, "vim"},
		{"fallback", map[string]string{}, "vi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range []string{"SAPCLI_EDITOR", "VISUAL", "EDITOR"} {
				t.Setenv(name, tt.env[name])
			}
			if got := DetectEditor(); got != tt.expect {
				t.Errorf("DetectEditor() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestWriteTempFile(t *testing.T) {
	path, err := writeTempFile("zfoo", []byte("REPORT zfoo."))
	if err != nil {
		t.Fatalf("writeTempFile() error = %v", err)
	}
	defer os.Remove(path)

	if filepath.Ext(path) != ".abap" {
		t.Errorf("extension = %q, want .abap", filepath.Ext(path))
	}
	if !strings.HasPrefix(filepath.Base(path), "zfoo-") {
		t.Errorf("name = %q, want zfoo- prefix", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "REPORT zfoo." {
		t.Errorf("content = %q, want REPORT zfoo.", data)
	}
}

func TestEditUnchanged(t *testing.T) {
	t.Setenv("SAPCLI_EDITOR", "true")

	got, changed, err := Edit("zfoo.prog.abap", []byte("REPORT zfoo."))
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if changed {
		t.Error("changed = true, want false")
	}
	if string(got) != "REPORT zfoo." {
		t.Errorf("content = %q, want REPORT zfoo.", got)
	}
}

func TestEditChanged(t *testing.T) {
	script := filepath.Join(t.TempDir(), "append.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho 'WRITE 42.' >> \"$1\"\n"), 0o755); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("SAPCLI_EDITOR", script)

	got, changed, err := Edit("zfoo", []byte("REPORT zfoo.\n"))
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if !changed {
		t.Error("changed = false, want true")
	}
	if string(got) != "REPORT zfoo.\nWRITE 42.\n" {
		t.Errorf("content = %q", got)
	}
}
