package todo

import (
	"strings"
	"sync"
	"time"

	"github.com/MihkelHunter/todotxt/internal/logging"
)

// DateLayout is the layout of every date in a todo.txt line.
const DateLayout = "2006-01-02"

// now is swapped in tests.
var now = time.Now

// Priority is a single uppercase letter, A being the most urgent.
// The zero value means the task has no priority.
type Priority byte

// NoPriority marks a task without a priority letter.
const NoPriority Priority = 0

// ParsePriority accepts a single letter A-Z. Lowercase letters are not
// priorities in todo.txt and are rejected.
func ParsePriority(s string) (Priority, bool) {
	if len(s) != 1 || s[0] < 'A' || s[0] > 'Z' {
		return NoPriority, false
	}
	return Priority(s[0]), true
}

func (p Priority) String() string {
	if p == NoPriority {
		return ""
	}
	return string(rune(p))
}

// Compare orders priorities by urgency: A > B > ... > Z > NoPriority.
func (p Priority) Compare(q Priority) int {
	switch {
	case p == q:
		return 0
	case p == NoPriority:
		return -1
	case q == NoPriority:
		return 1
	case p < q:
		return 1
	default:
		return -1
	}
}

// Task is one line of a todo.txt file.
type Task struct {
	// ID is the storage identity: the line number for file-backed lists,
	// the row id for SQLite. Zero until the task is stored.
	ID int64

	// Original is the line the task was parsed from.
	Original string

	// CompletedOn is set iff the task is done.
	CompletedOn *time.Time
	CreatedOn   *time.Time
	DueOn       *time.Time
	Priority    Priority
	Contexts    []string
	Projects    []string

	words    []string
	textOnce sync.Once
	text     string
}

// Parse builds a Task from a single todo.txt line.
func Parse(line string) *Task {
	t := &Task{Original: line}
	t.extract(strings.TrimRight(line, "\r\n"))
	return t
}

// Done reports whether the task is completed.
func (t *Task) Done() bool {
	return t.CompletedOn != nil
}

// Do marks the task completed today. Calling it on a done task moves the
// completion date to today.
func (t *Task) Do() {
	d := today()
	t.CompletedOn = &d
}

// Undo marks the task as not completed. The creation date and every other
// field are left alone.
func (t *Task) Undo() {
	t.CompletedOn = nil
}

// Toggle flips the completion state.
func (t *Task) Toggle() {
	if t.Done() {
		t.Undo()
		return
	}
	t.Do()
}

// Overdue reports whether the due date is strictly before today.
func (t *Task) Overdue() bool {
	return t.DueOn != nil && t.DueOn.Before(today())
}

// Text returns the description with the completion marker, priority,
// dates, contexts, projects and due annotation removed.
func (t *Task) Text() string {
	t.textOnce.Do(func() {
		t.text = strings.Join(t.words, " ")
	})
	return t.text
}

// Date returns the creation date.
//
// Deprecated: use CreatedOn.
func (t *Task) Date() *time.Time {
	logging.Logger().Warn("Task.Date is deprecated, use CreatedOn", "task", t.Original)
	return t.CreatedOn
}

func today() time.Time {
	y, m, d := now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseDate accepts YYYY-MM-DD calendar dates only; 2012-02-30 is rejected.
func parseDate(s string) (*time.Time, bool) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, false
	}
	return &d, true
}

func formatDate(d *time.Time) string {
	return d.Format(DateLayout)
}
