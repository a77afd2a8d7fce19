package todo

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned for IDs the repository does not hold.
	ErrNotFound = errors.New("todo: task not found")
	// ErrEmptyLine is returned when adding or editing with a blank line.
	ErrEmptyLine = errors.New("todo: empty task line")
)

// Repository is the storage contract. Backends (todo.txt file, SQLite,
// memory) must satisfy it; the front ends only ever see this interface.
type Repository interface {
	// Create stores t and assigns t.ID.
	Create(t *Task) error
	// List returns the stored tasks in storage order, IDs set.
	List() ([]*Task, error)
	// Update replaces the line stored under t.ID.
	Update(t *Task) error
	Delete(id int64) error
	Close() error
}

// Service wraps the repository and holds the task operations shared by the
// CLI, the web server and the desktop app.
type Service struct {
	repo      Repository
	dateOnAdd bool
}

// Option configures a Service.
type Option func(*Service)

// WithCreationDate stamps today's date on added tasks that have none.
func WithCreationDate(on bool) Option {
	return func(s *Service) { s.dateOnAdd = on }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add parses line and stores it as a new task.
func (s *Service) Add(line string) (*Task, error) {
	if strings.TrimSpace(line) == "" {
		return nil, ErrEmptyLine
	}
	t := Parse(line)
	if s.dateOnAdd && t.CreatedOn == nil {
		d := today()
		t.CreatedOn = &d
	}
	if err := s.repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// All returns every stored task in storage order.
func (s *Service) All() (*List, error) {
	tasks, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return &List{tasks: tasks}, nil
}

func (s *Service) Get(id int64) (*Task, error) {
	tasks, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Service) Toggle(id int64) (*Task, error) {
	return s.mutate(id, (*Task).Toggle)
}

func (s *Service) Do(id int64) (*Task, error) {
	return s.mutate(id, (*Task).Do)
}

func (s *Service) Undo(id int64) (*Task, error) {
	return s.mutate(id, (*Task).Undo)
}

// Edit replaces the task stored under id with a freshly parsed line.
func (s *Service) Edit(id int64, line string) (*Task, error) {
	if strings.TrimSpace(line) == "" {
		return nil, ErrEmptyLine
	}
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	t := Parse(line)
	t.ID = id
	if err := s.repo.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(id int64) error {
	return s.repo.Delete(id)
}

func (s *Service) Close() error {
	return s.repo.Close()
}

func (s *Service) mutate(id int64, fn func(*Task)) (*Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	fn(t)
	if err := s.repo.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}
