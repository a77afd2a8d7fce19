package todo

import "strings"

// String renders the canonical todo.txt line.
//
// Active:    (A) 2012-03-04 text @ctx +proj due:2012-03-10
// Completed: x 2012-03-05 2012-03-04 text @ctx +proj due:2012-03-10 priority:A
//
// A completed task without priority or creation date whose text opens with
// a "(X)" word gets a second space after the completion date, so the word
// stays text when the line is parsed again.
func (t *Task) String() string {
	var b strings.Builder

	switch {
	case t.Done():
		b.WriteString("x ")
		b.WriteString(formatDate(t.CompletedOn))
		b.WriteByte(' ')
		// Text opening with "(X)" would read back as the priority.
		if t.Priority == NoPriority && t.CreatedOn == nil && priorityPattern.MatchString(t.Text()+" ") {
			b.WriteByte(' ')
		}
	case t.Priority != NoPriority:
		b.WriteByte('(')
		b.WriteByte(byte(t.Priority))
		b.WriteString(") ")
	}

	if t.CreatedOn != nil {
		b.WriteString(formatDate(t.CreatedOn))
		b.WriteByte(' ')
	}

	b.WriteString(t.Text())

	if len(t.Contexts) > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Join(t.Contexts, " "))
	}
	if len(t.Projects) > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Join(t.Projects, " "))
	}
	if t.DueOn != nil {
		b.WriteString(" due:")
		b.WriteString(formatDate(t.DueOn))
	}
	if t.Done() && t.Priority != NoPriority {
		b.WriteString(" priority:")
		b.WriteByte(byte(t.Priority))
	}

	return b.String()
}

// Compare orders tasks by priority alone: a task with a higher priority
// compares greater, so Compare(A, B) > 0 and Compare(A, none) > 0. Equal
// priorities, including two tasks without one, compare equal.
func Compare(a, b *Task) int {
	return a.Priority.Compare(b.Priority)
}
