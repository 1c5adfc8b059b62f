package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"
)

// setupTestDir creates a temporary directory with a file and a subdirectory.
func setupTestDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLocalFS_Stat_File(t *testing.T) {
	l := NewLocalFS(setupTestDir(t))

	info, err := l.Stat("a.txt")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.IsDir {
		t.Error("expected a.txt to be a file")
	}
	if !info.IsRegular() {
		t.Error("expected a.txt to be regular")
	}
	if info.Size != 6 {
		t.Errorf("expected size 6, got %d", info.Size)
	}
}

func TestLocalFS_Stat_Root(t *testing.T) {
	l := NewLocalFS(setupTestDir(t))

	info, err := l.Stat("")
	if err != nil {
		t.Fatalf("Stat('') failed: %v", err)
	}
	if !info.IsDir {
		t.Error("expected root to be a directory")
	}
}

func TestLocalFS_Stat_NotExist(t *testing.T) {
	l := NewLocalFS(setupTestDir(t))

	_, err := l.Stat("missing.txt")
	if !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLocalFS_ReadFile(t *testing.T) {
	l := NewLocalFS(setupTestDir(t))

	content, err := l.ReadFile("a.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "hello\n" {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestLocalFS_ReadDir(t *testing.T) {
	l := NewLocalFS(setupTestDir(t))

	entries, err := l.ReadDir("")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	byName := make(map[string]DirEntry)
	for _, e := range entries {
		byName[e.Name] = e
	}
	if e, ok := byName["a.txt"]; !ok || e.IsDir || !e.IsRegular() {
		t.Errorf("expected a.txt as regular file, got %+v", e)
	}
	if e, ok := byName["sub"]; !ok || !e.IsDir {
		t.Errorf("expected sub as directory, got %+v", e)
	}
}

func TestDirEntry_Symlink_NotRegular(t *testing.T) {
	dir := setupTestDir(t)
	if err := os.Symlink(filepath.Join(dir, "a.txt"), filepath.Join(dir, "link")); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	l := NewLocalFS(dir)
	entries, err := l.ReadDir("")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if e.Name == "link" {
			if e.IsDir || e.IsRegular() {
				t.Errorf("expected link to be neither regular nor directory, got %+v", e)
			}
			return
		}
	}
	t.Error("link entry not found")
}
