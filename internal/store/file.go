// Package store provides todo.Repository backends: a todo.txt file and a
// SQLite database of todo.txt lines.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/MihkelHunter/todotxt/todo"
)

// FileStore implements todo.Repository on a todo.txt file. A task's ID is
// its line number. Deleted tasks leave a blank line behind so the numbers of
// the remaining tasks never shift, as todo.sh does.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFile opens the todo.txt file at path, creating it and its directory
// when missing.
func NewFile(fsys afero.Fs, path string) (*FileStore, error) {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create todo dir: %w", err)
	}
	if _, err := fsys.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := afero.WriteFile(fsys, path, nil, 0o644); err != nil {
			return nil, fmt.Errorf("create todo file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat todo file: %w", err)
	}
	return &FileStore{fs: fsys, path: path}, nil
}

// Path returns the todo.txt path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) List() ([]*todo.Task, error) {
	f, err := s.fs.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open todo file: %w", err)
	}
	defer f.Close()

	l, err := todo.Load(f)
	if err != nil {
		return nil, err
	}
	return l.Tasks(), nil
}

func (s *FileStore) Create(t *todo.Task) error {
	lines, err := s.readLines()
	if err != nil {
		return err
	}
	lines = append(lines, t.String())
	if err := s.writeLines(lines); err != nil {
		return err
	}
	t.ID = int64(len(lines))
	return nil
}

func (s *FileStore) Update(t *todo.Task) error {
	lines, err := s.readLines()
	if err != nil {
		return err
	}
	i, err := lineIndex(lines, t.ID)
	if err != nil {
		return err
	}
	lines[i] = t.String()
	return s.writeLines(lines)
}

func (s *FileStore) Delete(id int64) error {
	lines, err := s.readLines()
	if err != nil {
		return err
	}
	i, err := lineIndex(lines, id)
	if err != nil {
		return err
	}
	lines[i] = ""
	return s.writeLines(lines)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) readLines() ([]string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("read todo file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

func (s *FileStore) writeLines(lines []string) error {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if err := afero.WriteFile(s.fs, s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}
	return nil
}

// lineIndex maps a line-number ID to a slice index. Blank lines hold no
// task.
func lineIndex(lines []string, id int64) (int, error) {
	if id < 1 || id > int64(len(lines)) || strings.TrimSpace(lines[id-1]) == "" {
		return 0, fmt.Errorf("task %d: %w", id, todo.ErrNotFound)
	}
	return int(id - 1), nil
}
