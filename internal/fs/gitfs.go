package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// GitFS implements FileSystem by reading from a git ref (branch, tag, or
// commit) instead of the working tree. All operations are read-only.
type GitFS struct {
	repoPath string
	ref      string
}

// NewGitFS creates a GitFS that serves the tree of the given ref in the
// repository at repoPath.
func NewGitFS(repoPath, ref string) *GitFS {
	return &GitFS{repoPath: repoPath, ref: ref}
}

func (g *GitFS) git(args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", g.repoPath}, args...)...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}

// ReadFile reads the contents of the file at the given path from the git ref.
func (g *GitFS) ReadFile(path string) ([]byte, error) {
	if path == "" || path == "." {
		return nil, fmt.Errorf("cannot read directory as file")
	}
	cmd := exec.Command("git", "-C", g.repoPath, "show", g.ref+":"+path)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			if strings.Contains(stderr, "does not exist") || strings.Contains(stderr, "not exist") {
				return nil, os.ErrNotExist
			}
			return nil, fmt.Errorf("git show: %s", stderr)
		}
		return nil, err
	}
	return out, nil
}

// Stat returns metadata for the file or directory at the given path in the git ref.
func (g *GitFS) Stat(path string) (FileInfo, error) {
	if path == "" || path == "." {
		// Root is the tree of the ref itself; verify the ref exists.
		if _, err := g.git("rev-parse", "--verify", g.ref); err != nil {
			return FileInfo{}, os.ErrNotExist
		}
		return FileInfo{
			Name:    g.ref,
			IsDir:   true,
			Mode:    iofs.ModeDir,
			ModTime: g.commitTime(""),
		}, nil
	}

	out, err := g.git("ls-tree", g.ref, path)
	if err != nil {
		return FileInfo{}, os.ErrNotExist
	}

	line := strings.TrimSpace(out)
	if line == "" {
		// ls-tree on "dir" prints nothing; retry with a trailing slash,
		// which lists the directory's children if it exists.
		out, err = g.git("ls-tree", g.ref, path+"/")
		if err != nil || strings.TrimSpace(out) == "" {
			return FileInfo{}, os.ErrNotExist
		}
		return FileInfo{
			Name:    baseName(path),
			IsDir:   true,
			Mode:    iofs.ModeDir,
			ModTime: g.commitTime(path),
		}, nil
	}

	entry, ok := parseTreeLine(line)
	if !ok {
		return FileInfo{}, os.ErrNotExist
	}

	info := FileInfo{
		Name:    baseName(path),
		IsDir:   entry.IsDir,
		Mode:    entry.Mode,
		ModTime: g.commitTime(path),
	}
	if entry.IsRegular() {
		if sizeOut, err := g.git("cat-file", "-s", g.ref+":"+path); err == nil {
			info.Size, _ = strconv.ParseInt(strings.TrimSpace(sizeOut), 10, 64)
		}
	}
	return info, nil
}

// ReadDir lists the immediate children of the directory at the given path in the git ref.
func (g *GitFS) ReadDir(path string) ([]DirEntry, error) {
	var out string
	var err error
	if path == "" || path == "." {
		out, err = g.git("ls-tree", g.ref)
	} else {
		out, err = g.git("ls-tree", g.ref, path+"/")
	}
	if err != nil {
		return nil, os.ErrNotExist
	}

	entries := []DirEntry{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if entry, ok := parseTreeLine(strings.TrimSpace(line)); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// parseTreeLine parses one "<mode> <type> <hash>\t<path>" line of ls-tree output.
func parseTreeLine(line string) (DirEntry, bool) {
	tabIdx := strings.IndexByte(line, '\t')
	if tabIdx < 0 {
		return DirEntry{}, false
	}
	fields := strings.Fields(line[:tabIdx])
	if len(fields) < 3 {
		return DirEntry{}, false
	}
	mode := objectMode(fields[0])
	return DirEntry{
		Name:  baseName(line[tabIdx+1:]),
		IsDir: mode&iofs.ModeDir != 0,
		Mode:  mode,
	}, true
}

// objectMode maps a git tree-entry mode string to file mode type bits.
func objectMode(mode string) iofs.FileMode {
	switch mode {
	case "040000":
		return iofs.ModeDir
	case "120000":
		return iofs.ModeSymlink
	case "160000": // submodule commit
		return iofs.ModeIrregular
	default: // 100644, 100755: regular blob
		return 0
	}
}

func (g *GitFS) commitTime(path string) time.Time {
	args := []string{"log", "-1", "--format=%ct", g.ref}
	if path != "" && path != "." {
		args = append(args, "--", path)
	}
	out, err := g.git(args...)
	if err != nil {
		return time.Time{}
	}
	sec, err := strconv.ParseInt(strings.TrimSpace(out), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
