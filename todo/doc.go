// Package todo parses and serializes todo.txt task lists.
//
// A todo.txt line carries, in order, an optional completion marker and date,
// an optional priority, an optional creation date and a free-text
// description with embedded annotations:
//
//	x 2012-03-05 2012-03-04 Call mom @phone +family due:2012-03-10 priority:A
//	(A) 2012-03-04 Call mom @phone +family due:2012-03-10
//
// # Parsing
//
// [Parse] never fails. A field whose micro-pattern does not match at its
// required position is simply absent: a nil date, [NoPriority], an empty
// slice. Tokens that fail to match fall through to the description returned
// by [Task.Text].
//
// # Serialization
//
// [Task.String] rebuilds the canonical line. Active tasks carry their
// priority as a "(X) " prefix; completed tasks carry it as a trailing
// "priority:X" annotation. Parsing a completed line reads the suffix back,
// so formatting a completed task is stable across parse round trips.
//
// # Lists
//
// [List] is an ordered collection built from raw lines, readers, files or
// already parsed tasks. Its filters return new lists; the standalone
// [Filter] works on any iter.Seq of tasks.
//
// # Storage
//
// [Service] wraps a [Repository]. Backends live in internal/store.
package todo
