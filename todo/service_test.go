package todo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo keeps canonical lines in memory, keyed by ID.
type memRepo struct {
	lines  map[int64]string
	nextID int64
	err    error
	closed bool
}

func newMemRepo() *memRepo {
	return &memRepo{lines: make(map[int64]string)}
}

func (m *memRepo) Create(t *Task) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	t.ID = m.nextID
	m.lines[t.ID] = t.String()
	return nil
}

func (m *memRepo) List() ([]*Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	var tasks []*Task
	for id := int64(1); id <= m.nextID; id++ {
		line, ok := m.lines[id]
		if !ok {
			continue
		}
		t := Parse(line)
		t.ID = id
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (m *memRepo) Update(t *Task) error {
	if _, ok := m.lines[t.ID]; !ok {
		return ErrNotFound
	}
	m.lines[t.ID] = t.String()
	return nil
}

func (m *memRepo) Delete(id int64) error {
	if _, ok := m.lines[id]; !ok {
		return ErrNotFound
	}
	delete(m.lines, id)
	return nil
}

func (m *memRepo) Close() error {
	m.closed = true
	return nil
}

func TestServiceAddAndAll(t *testing.T) {
	svc := NewService(newMemRepo())

	a, err := svc.Add("(B) second")
	require.NoError(t, err)
	_, err = svc.Add("(A) first @home")
	require.NoError(t, err)

	_, err = svc.Add("   ")
	assert.ErrorIs(t, err, ErrEmptyLine)

	l, err := svc.All()
	require.NoError(t, err)
	assert.Equal(t, 2, l.Len())

	got, err := svc.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Text())

	_, err = svc.Get(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceWithCreationDate(t *testing.T) {
	freezeToday(t, "2012-03-06")

	stamped := NewService(newMemRepo(), WithCreationDate(true))
	task, err := stamped.Add("(A) Call mom")
	require.NoError(t, err)
	assert.Equal(t, "(A) 2012-03-06 Call mom", task.String())

	kept, err := stamped.Add("2012-01-01 Old task")
	require.NoError(t, err)
	assert.Equal(t, "2012-01-01 Old task", kept.String())

	plain := NewService(newMemRepo())
	task, err = plain.Add("(A) Call mom")
	require.NoError(t, err)
	assert.Nil(t, task.CreatedOn)
}

func TestServiceLifecycle(t *testing.T) {
	freezeToday(t, "2012-03-06")
	repo := newMemRepo()
	svc := NewService(repo)

	task, err := svc.Add("(A) 2012-03-04 Task. @home")
	require.NoError(t, err)

	done, err := svc.Toggle(task.ID)
	require.NoError(t, err)
	assert.True(t, done.Done())
	assert.Equal(t, "x 2012-03-06 2012-03-04 Task. @home priority:A", repo.lines[task.ID])

	undone, err := svc.Undo(task.ID)
	require.NoError(t, err)
	assert.False(t, undone.Done())
	assert.Equal(t, "(A) 2012-03-04 Task. @home", repo.lines[task.ID])

	_, err = svc.Do(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "x 2012-03-06 2012-03-04 Task. @home priority:A", repo.lines[task.ID])

	edited, err := svc.Edit(task.ID, "(C) Rewritten +proj")
	require.NoError(t, err)
	assert.Equal(t, task.ID, edited.ID)
	assert.Equal(t, "(C) Rewritten +proj", repo.lines[task.ID])

	_, err = svc.Edit(task.ID, "")
	assert.ErrorIs(t, err, ErrEmptyLine)
	_, err = svc.Edit(42, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Toggle(42)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(task.ID))
	assert.ErrorIs(t, svc.Delete(task.ID), ErrNotFound)

	require.NoError(t, svc.Close())
	assert.True(t, repo.closed)
}

func TestServicePropagatesRepositoryErrors(t *testing.T) {
	repo := newMemRepo()
	repo.err = errors.New("disk full")
	svc := NewService(repo)

	_, err := svc.Add("task")
	assert.EqualError(t, err, "disk full")
	_, err = svc.All()
	assert.EqualError(t, err, "disk full")
	_, err = svc.Toggle(1)
	assert.EqualError(t, err, "disk full")
}

func TestServiceDoKeepsPriorityOfTextOpeningWithPriority(t *testing.T) {
	svc := NewService(newMemRepo())

	added, err := svc.Add("(A) (B) foo")
	require.NoError(t, err)
	_, err = svc.Do(added.ID)
	require.NoError(t, err)

	got, err := svc.Get(added.ID)
	require.NoError(t, err)
	assert.True(t, got.Done())
	assert.Equal(t, Priority('A'), got.Priority)
	assert.Equal(t, "(B) foo", got.Text())

	undone, err := svc.Undo(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "(A) (B) foo", undone.String())
}
