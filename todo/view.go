package todo

// View is a flat, serializable snapshot of a task for JSON and YAML output.
type View struct {
	ID          int64    `json:"id" yaml:"id"`
	Line        string   `json:"line" yaml:"line"`
	Text        string   `json:"text" yaml:"text"`
	Done        bool     `json:"done" yaml:"done"`
	Priority    string   `json:"priority,omitempty" yaml:"priority,omitempty"`
	CreatedOn   string   `json:"created_on,omitempty" yaml:"created_on,omitempty"`
	CompletedOn string   `json:"completed_on,omitempty" yaml:"completed_on,omitempty"`
	DueOn       string   `json:"due_on,omitempty" yaml:"due_on,omitempty"`
	Overdue     bool     `json:"overdue" yaml:"overdue"`
	Contexts    []string `json:"contexts" yaml:"contexts"`
	Projects    []string `json:"projects" yaml:"projects"`
}

// NewView snapshots t.
func NewView(t *Task) View {
	v := View{
		ID:       t.ID,
		Line:     t.String(),
		Text:     t.Text(),
		Done:     t.Done(),
		Priority: t.Priority.String(),
		Overdue:  t.Overdue(),
		Contexts: nonNil(t.Contexts),
		Projects: nonNil(t.Projects),
	}
	if t.CreatedOn != nil {
		v.CreatedOn = formatDate(t.CreatedOn)
	}
	if t.CompletedOn != nil {
		v.CompletedOn = formatDate(t.CompletedOn)
	}
	if t.DueOn != nil {
		v.DueOn = formatDate(t.DueOn)
	}
	return v
}

// Views snapshots every task of the list.
func (l *List) Views() []View {
	views := make([]View, 0, l.Len())
	for t := range l.All() {
		views = append(views, NewView(t))
	}
	return views
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
