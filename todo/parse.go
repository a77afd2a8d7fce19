package todo

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Marker and date match together: "x 2012-13-99 " is not a completion.
	completedPattern = regexp.MustCompile(`^x (\d{4}-\d{2}-\d{2}) `)
	priorityPattern  = regexp.MustCompile(`^\(([A-Z])\) `)
	createdPattern   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})(?:\s|$)`)
	duePattern       = regexp.MustCompile(`(?i)^due:(\d{4}-\d{2}-\d{2})$`)

	// Written by the formatter as the last word of completed tasks.
	priorityTagPattern = regexp.MustCompile(`^priority:([A-Z])$`)

	tagPattern = regexp.MustCompile(`^([A-Za-z0-9_-]+):([^\s/][^\s]*)$`)
)

// extract fills every derived field from line. Leading fields are consumed
// positionally; the rest of the line is classified word by word.
//
// A completed line ending in priority:X takes its priority from that word,
// which is the form String writes. A leading "(X) " then belongs to the
// text. Without the suffix the leading form is the priority.
func (t *Task) extract(line string) {
	rest := line

	if m := completedPattern.FindStringSubmatch(rest); m != nil {
		if d, ok := parseDate(m[1]); ok {
			t.CompletedOn = d
			rest = rest[len(m[0]):]
		}
	}

	words := strings.Fields(rest)
	if t.Done() && len(words) > 0 {
		if m := priorityTagPattern.FindStringSubmatch(words[len(words)-1]); m != nil {
			t.Priority = Priority(m[1][0])
		}
	}

	if t.Priority == NoPriority {
		if m := priorityPattern.FindStringSubmatch(rest); m != nil {
			t.Priority = Priority(m[1][0])
			rest = rest[len(m[0]):]
		}
	} else {
		rest = strings.TrimRightFunc(rest, unicode.IsSpace)
		rest = rest[:strings.LastIndexFunc(rest, unicode.IsSpace)+1]
	}

	if m := createdPattern.FindStringSubmatch(rest); m != nil {
		if d, ok := parseDate(m[1]); ok {
			t.CreatedOn = d
			rest = rest[len(m[1]):]
		}
	}

	for _, word := range strings.Fields(rest) {
		switch {
		case isAnnotation(word, '@'):
			t.Contexts = append(t.Contexts, word)
		case isAnnotation(word, '+'):
			t.Projects = append(t.Projects, word)
		case t.takeDue(word):
		default:
			t.words = append(t.words, word)
		}
	}
}

// takeDue consumes a valid due:YYYY-MM-DD word. The first one sets DueOn;
// later valid ones are dropped so the formatter emits a single annotation.
func (t *Task) takeDue(word string) bool {
	m := duePattern.FindStringSubmatch(word)
	if m == nil {
		return false
	}
	d, ok := parseDate(m[1])
	if !ok {
		return false
	}
	if t.DueOn == nil {
		t.DueOn = d
	}
	return true
}

func isAnnotation(word string, sigil byte) bool {
	return len(word) > 1 && word[0] == sigil
}

// Tag is a key:value annotation left in the description.
type Tag struct {
	Key   string
	Value string
}

// Tags lists the key:value words of the description in order. They stay
// part of Text; due and priority annotations are not included because the
// parser has already consumed them. URLs such as http://x are not tags.
func (t *Task) Tags() []Tag {
	var tags []Tag
	for _, word := range t.words {
		if m := tagPattern.FindStringSubmatch(word); m != nil {
			tags = append(tags, Tag{Key: m[1], Value: m[2]})
		}
	}
	return tags
}
