package todo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strings"
)

// ErrInvalidInput is returned by NewList for inputs that carry no task.
var ErrInvalidInput = errors.New("todo: invalid list input")

// Input is either a raw line or an already parsed task. Build one with
// Raw or Parsed.
type Input interface {
	task() (*Task, error)
}

type rawInput string

func (r rawInput) task() (*Task, error) {
	return Parse(string(r)), nil
}

type parsedInput struct {
	t *Task
}

func (p parsedInput) task() (*Task, error) {
	if p.t == nil {
		return nil, ErrInvalidInput
	}
	return p.t, nil
}

// Raw wraps a todo.txt line to be parsed by NewList.
func Raw(line string) Input { return rawInput(line) }

// Parsed wraps a task that NewList stores as is.
func Parsed(t *Task) Input { return parsedInput{t: t} }

// List is an ordered collection of tasks.
type List struct {
	tasks []*Task
}

// NewList converts every input to a task, keeping input order. A nil input
// or a nil parsed task fails the whole construction.
func NewList(inputs ...Input) (*List, error) {
	l := &List{tasks: make([]*Task, 0, len(inputs))}
	for i, in := range inputs {
		if in == nil {
			return nil, fmt.Errorf("input %d: %w", i, ErrInvalidInput)
		}
		t, err := in.task()
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		l.tasks = append(l.tasks, t)
	}
	return l, nil
}

// ParseLines parses one task per element, blank elements included.
func ParseLines(lines []string) *List {
	l := &List{tasks: make([]*Task, 0, len(lines))}
	for _, line := range lines {
		l.tasks = append(l.tasks, Parse(line))
	}
	return l
}

// Load reads one task per line from r. Blank lines are skipped but still
// counted, so each task's ID is its 1-based line number.
func Load(r io.Reader) (*List, error) {
	l := &List{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var n int64
	for sc.Scan() {
		n++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		t := Parse(line)
		t.ID = n
		l.tasks = append(l.tasks, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read todo lines: %w", err)
	}
	return l, nil
}

// LoadFile reads a todo.txt file. The file is closed before returning.
func LoadFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open todo file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Add appends tasks to the list.
func (l *List) Add(tasks ...*Task) {
	l.tasks = append(l.tasks, tasks...)
}

// Len returns the number of tasks.
func (l *List) Len() int { return len(l.tasks) }

// Tasks returns a copy of the task slice. The tasks themselves are shared.
func (l *List) Tasks() []*Task {
	return slices.Clone(l.tasks)
}

// All iterates tasks in list order.
func (l *List) All() iter.Seq[*Task] {
	return slices.Values(l.tasks)
}

// Filter returns a new list with the tasks that satisfy keep.
func (l *List) Filter(keep Predicate) *List {
	return &List{tasks: slices.Collect(Filter(l.All(), keep))}
}

// ByPriority returns the tasks with exactly priority p.
func (l *List) ByPriority(p Priority) *List { return l.Filter(HasPriority(p)) }

// ByContext returns the tasks tagged with context.
func (l *List) ByContext(context string) *List { return l.Filter(HasContext(context)) }

// ByProject returns the tasks tagged with project.
func (l *List) ByProject(project string) *List { return l.Filter(HasProject(project)) }

// ByDone returns the completed tasks, or the open ones when done is false.
func (l *List) ByDone(done bool) *List { return l.Filter(IsDone(done)) }

// ByNotDone returns the open tasks.
func (l *List) ByNotDone() *List { return l.ByDone(false) }

// Overdue returns the tasks due before today.
func (l *List) Overdue() *List { return l.Filter(IsOverdue) }

// SortByPriority orders the list in place, most urgent first. Tasks with
// equal priority keep their relative order.
func (l *List) SortByPriority() {
	slices.SortStableFunc(l.tasks, func(a, b *Task) int {
		return Compare(b, a)
	})
}

// String joins the canonical lines with newlines.
func (l *List) String() string {
	lines := make([]string, len(l.tasks))
	for i, t := range l.tasks {
		lines[i] = t.String()
	}
	return strings.Join(lines, "\n")
}

// WriteTo writes one newline-terminated line per task.
func (l *List) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, t := range l.tasks {
		n, err := bw.WriteString(t.String() + "\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// SaveFile writes the list to path, replacing its contents.
func (l *List) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create todo file: %w", err)
	}
	if _, err := l.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write todo file: %w", err)
	}
	return f.Close()
}
