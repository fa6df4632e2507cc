package editor

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

func DetectEditor() string {
	for _, name := range []string{"SAPCLI_EDITOR", "VISUAL", "EDITOR"} {
		if e := os.Getenv(name); e != "" {
			return e
		}
	}
	return "vi"
}

// Open opens the file in the user's editor and blocks until the editor exits.
func Open(path string) error {
	parts := strings.Fields(DetectEditor())
	bin := parts[0]
	args := append(parts[1:], path)

	cmd := exec.Command(bin, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}

// Edit lets the user modify content in a temporary file named after name
// and returns the result and whether it differs from content.
func Edit(name string, content []byte) ([]byte, bool, error) {
	tmpFile, err := writeTempFile(name, content)
	if err != nil {
		return nil, false, err
	}
	defer os.Remove(tmpFile)

	if err := Open(tmpFile); err != nil {
		return nil, false, err
	}

	modified, err := os.ReadFile(tmpFile)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read edited file: %w", err)
	}

	return modified, !bytes.Equal(content, modified), nil
}

func writeTempFile(name string, content []byte) (string, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		ext = ".abap"
	}
	prefix := strings.TrimSuffix(name, ext) + "-"

	f, err := os.CreateTemp("", prefix+"*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	f.Close()
	return f.Name(), nil
}
