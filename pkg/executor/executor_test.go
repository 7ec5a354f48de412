package executor

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	ctx := context.Background()
	e := New()

	out, err := e.Execute(ctx, "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("Execute() = %q, want %q", out, "hello")
	}

	_, err = e.Execute(ctx, "sh", "-c", "echo boom >&2; exit 3")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Execute() error = %v, want stderr in message", err)
	}
}

func TestExecuteInDir(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	dir := t.TempDir()
	out, err := New().ExecuteInDir(context.Background(), dir, "sh", "-c", "pwd")
	if err != nil {
		t.Fatalf("ExecuteInDir() error = %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), strings.TrimPrefix(dir, "/private")) {
		t.Errorf("ExecuteInDir() pwd = %q, want %q", out, dir)
	}
}

func TestLastLines(t *testing.T) {
	in := "a\nb\nc\nd"
	if got := lastLines(in, 2); got != "c\nd" {
		t.Errorf("lastLines() = %q", got)
	}
	if got := lastLines(in, 10); got != in {
		t.Errorf("lastLines() = %q", got)
	}
}
