package todo

import (
	"iter"
	"slices"
	"strings"
)

// Predicate selects tasks.
type Predicate func(*Task) bool

// Filter yields the tasks of seq that satisfy keep.
func Filter(seq iter.Seq[*Task], keep Predicate) iter.Seq[*Task] {
	return func(yield func(*Task) bool) {
		for t := range seq {
			if keep(t) && !yield(t) {
				return
			}
		}
	}
}

// HasPriority matches an exact priority; NoPriority matches tasks without one.
func HasPriority(p Priority) Predicate {
	return func(t *Task) bool { return t.Priority == p }
}

// HasContext matches tasks carrying the context. The leading @ is optional.
func HasContext(context string) Predicate {
	want := withSigil(context, '@')
	return func(t *Task) bool { return slices.Contains(t.Contexts, want) }
}

// HasProject matches tasks carrying the project. The leading + is optional.
func HasProject(project string) Predicate {
	want := withSigil(project, '+')
	return func(t *Task) bool { return slices.Contains(t.Projects, want) }
}

// IsDone matches tasks whose completion state equals done.
func IsDone(done bool) Predicate {
	return func(t *Task) bool { return t.Done() == done }
}

// IsOverdue matches tasks due before today.
func IsOverdue(t *Task) bool { return t.Overdue() }

// And matches tasks that satisfy every predicate.
func And(preds ...Predicate) Predicate {
	return func(t *Task) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}
}

func withSigil(s string, sigil byte) string {
	if strings.HasPrefix(s, string(sigil)) {
		return s
	}
	return string(sigil) + s
}
