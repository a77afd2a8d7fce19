// Command desktop is a fyne window over a todo.txt list.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/MihkelHunter/todotxt/internal/config"
	"github.com/MihkelHunter/todotxt/internal/logging"
	"github.com/MihkelHunter/todotxt/internal/store"
	"github.com/MihkelHunter/todotxt/todo"
)

// ── Colour palette ───────────────────────────────────────────────────────────

var (
	colBackground = color.NRGBA{R: 15, G: 15, B: 20, A: 255}
	colSurface    = color.NRGBA{R: 26, G: 26, B: 36, A: 255}
	colAccent     = color.NRGBA{R: 99, G: 102, B: 241, A: 255}
	colHighPri    = color.NRGBA{R: 239, G: 68, B: 68, A: 255}
	colMedPri     = color.NRGBA{R: 245, G: 158, B: 11, A: 255}
	colLowPri     = color.NRGBA{R: 100, G: 116, B: 139, A: 255}
	colOverdue    = color.NRGBA{R: 60, G: 24, B: 28, A: 255}
)

// ── App state ────────────────────────────────────────────────────────────────

type appState struct {
	svc        *todo.Service
	win        fyne.Window
	taskList   *widget.List
	statsLabel *widget.Label
	tasks      []*todo.Task
	filter     string // "all" | "active" | "done"
	context    string // "" or an @context
}

func main() {
	configPath := flag.String("config", "", "config file (default ~/.todoapp/config.toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if lvl, ok := logging.ParseLevel(cfg.Log.Level); ok {
		logging.SetLevel(lvl)
	}

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	svc := todo.NewService(st, todo.WithCreationDate(cfg.DateOnAdd))
	defer svc.Close()
	logging.Logger().Info("desktop started", "backend", cfg.Backend, "file", cfg.TodoFile)

	a := app.New()
	a.Settings().SetTheme(&darkTheme{})

	win := a.NewWindow("todo.txt")
	win.Resize(fyne.NewSize(740, 600))
	win.CenterOnScreen()

	s := &appState{svc: svc, win: win, filter: "all"}
	win.SetContent(s.buildUI())
	s.refresh()

	win.ShowAndRun()
}

// ── Build UI ─────────────────────────────────────────────────────────────────

func (s *appState) buildUI() fyne.CanvasObject {
	// Header
	title := canvas.NewText("  ✓  todo.txt", color.White)
	title.TextSize = 20
	title.TextStyle = fyne.TextStyle{Bold: true}

	addBtn := widget.NewButton("+ Add Task", func() { s.showTaskForm(nil) })
	addBtn.Importance = widget.HighImportance

	header := container.NewBorder(nil, nil, title, container.NewPadded(addBtn))
	headerBG := canvas.NewRectangle(colSurface)
	headerStack := container.NewStack(headerBG, container.NewPadded(header))

	// Filter tabs
	allBtn := widget.NewButton("All", func() { s.filter = "all"; s.refresh() })
	activeBtn := widget.NewButton("Active", func() { s.filter = "active"; s.refresh() })
	doneBtn := widget.NewButton("Done", func() { s.filter = "done"; s.refresh() })
	contextEntry := widget.NewEntry()
	contextEntry.SetPlaceHolder("@context")
	contextEntry.OnChanged = func(v string) { s.context = strings.TrimSpace(v); s.refresh() }
	filterRow := container.NewHBox(layout.NewSpacer(), allBtn, activeBtn, doneBtn, contextEntry, layout.NewSpacer())

	// Task list
	s.taskList = widget.NewList(
		func() int { return len(s.tasks) },
		s.makeTaskRow,
		s.updateTaskRow,
	)
	s.taskList.OnSelected = func(id widget.ListItemID) { s.taskList.Unselect(id) }

	// Footer / stats
	s.statsLabel = widget.NewLabel("")
	footerBG := canvas.NewRectangle(colSurface)
	footerStack := container.NewStack(footerBG, container.NewPadded(container.NewCenter(s.statsLabel)))

	// Root layout
	bg := canvas.NewRectangle(colBackground)
	ui := container.NewBorder(
		container.NewVBox(headerStack, filterRow),
		footerStack,
		nil, nil,
		container.NewScroll(s.taskList),
	)
	return container.NewStack(bg, ui)
}

// ── Task row template ─────────────────────────────────────────────────────────

func (s *appState) makeTaskRow() fyne.CanvasObject {
	priDot := canvas.NewCircle(colLowPri)
	// priDot.SetMinSize(fyne.NewSize(12, 12))
	priDot.Resize(fyne.NewSize(12, 12))

	checkBtn := widget.NewButtonWithIcon("", theme.RadioButtonIcon(), func() {})
	checkBtn.Importance = widget.LowImportance

	titleLabel := widget.NewLabel("title")
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	descLabel := widget.NewLabel("desc")

	editBtn := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {})
	editBtn.Importance = widget.LowImportance

	deleteBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {})
	deleteBtn.Importance = widget.DangerImportance

	left := container.NewHBox(
		container.NewCenter(priDot),
		checkBtn,
		container.NewVBox(titleLabel, descLabel),
	)
	right := container.NewHBox(editBtn, deleteBtn)
	rowContent := container.NewBorder(nil, nil, left, right)

	rowBG := canvas.NewRectangle(colSurface)
	rowBG.CornerRadius = 8

	return container.NewStack(rowBG, container.NewPadded(rowContent))
}

func (s *appState) updateTaskRow(i widget.ListItemID, obj fyne.CanvasObject) {
	if i >= len(s.tasks) {
		return
	}
	t := s.tasks[i]

	stack := obj.(*fyne.Container)
	rowBG := stack.Objects[0].(*canvas.Rectangle)
	padded := stack.Objects[1].(*fyne.Container)
	border := padded.Objects[0].(*fyne.Container)

	// container.NewBorder stores children as: [top, bottom, left, right, center...]
	// With only left & right set (nil top/bottom), indices: 0=top(nil),1=bottom(nil),2=left,3=right
	left := border.Objects[0].(*fyne.Container)
	right := border.Objects[1].(*fyne.Container)

	priDotBox := left.Objects[0].(*fyne.Container)
	priDot := priDotBox.Objects[0].(*canvas.Circle)
	checkBtn := left.Objects[1].(*widget.Button)
	textBox := left.Objects[2].(*fyne.Container)
	titleLabel := textBox.Objects[0].(*widget.Label)
	descLabel := textBox.Objects[1].(*widget.Label)

	editBtn := right.Objects[0].(*widget.Button)
	deleteBtn := right.Objects[1].(*widget.Button)

	// Priority dot colour
	switch t.Priority {
	case 'A':
		priDot.FillColor = colHighPri
	case 'B':
		priDot.FillColor = colMedPri
	default:
		priDot.FillColor = colLowPri
	}
	priDot.Refresh()

	// Done state
	switch {
	case t.Done():
		checkBtn.SetIcon(theme.ConfirmIcon())
		titleLabel.TextStyle = fyne.TextStyle{Italic: true}
		rowBG.FillColor = color.NRGBA{R: 20, G: 30, B: 25, A: 255}
	case t.Overdue():
		checkBtn.SetIcon(theme.RadioButtonIcon())
		titleLabel.TextStyle = fyne.TextStyle{Bold: true}
		rowBG.FillColor = colOverdue
	default:
		checkBtn.SetIcon(theme.RadioButtonIcon())
		titleLabel.TextStyle = fyne.TextStyle{Bold: true}
		rowBG.FillColor = colSurface
	}
	rowBG.Refresh()

	title := t.Text()
	if t.Priority != todo.NoPriority {
		title = "(" + t.Priority.String() + ") " + title
	}
	titleLabel.SetText(title)
	descLabel.SetText(describe(t))

	task := t
	checkBtn.OnTapped = func() { s.toggleTask(task) }
	editBtn.OnTapped = func() { s.showTaskForm(task) }
	deleteBtn.OnTapped = func() { s.confirmDelete(task) }
}

// ── Actions ───────────────────────────────────────────────────────────────────

func (s *appState) refresh() {
	all, err := s.svc.All()
	if err != nil {
		dialog.ShowError(err, s.win)
		return
	}
	filtered := all
	switch s.filter {
	case "active":
		filtered = filtered.ByNotDone()
	case "done":
		filtered = filtered.ByDone(true)
	}
	if s.context != "" {
		filtered = filtered.ByContext(s.context)
	}
	filtered.SortByPriority()
	s.tasks = filtered.Tasks()
	s.taskList.Refresh()

	s.statsLabel.SetText(fmt.Sprintf("%d / %d completed · %d overdue",
		all.ByDone(true).Len(), all.Len(), all.ByNotDone().Overdue().Len()))
}

func (s *appState) toggleTask(t *todo.Task) {
	if _, err := s.svc.Toggle(t.ID); err != nil {
		dialog.ShowError(err, s.win)
		return
	}
	s.refresh()
}

func (s *appState) confirmDelete(t *todo.Task) {
	dialog.ShowConfirm("Delete Task",
		fmt.Sprintf("Delete \"%s\"?", t.Text()),
		func(ok bool) {
			if ok {
				if err := s.svc.Delete(t.ID); err != nil {
					dialog.ShowError(err, s.win)
					return
				}
				s.refresh()
			}
		}, s.win)
}

func (s *appState) showTaskForm(existing *todo.Task) {
	lineEntry := widget.NewEntry()
	lineEntry.SetPlaceHolder("(A) Call mom @phone +family due:2012-03-10")

	priorities := []string{"none"}
	for p := 'A'; p <= 'Z'; p++ {
		priorities = append(priorities, string(p))
	}
	prioritySelect := widget.NewSelect(priorities, nil)
	prioritySelect.SetSelected("none")

	if existing != nil {
		// Edit the active form so the priority stays a prefix.
		line := existing.Text()
		if existing.CreatedOn != nil {
			line = existing.CreatedOn.Format(todo.DateLayout) + " " + line
		}
		lineEntry.SetText(strings.TrimSpace(line + " " + annotations(existing)))
		if existing.Priority != todo.NoPriority {
			prioritySelect.SetSelected(existing.Priority.String())
		}
	}

	form := widget.NewForm(
		widget.NewFormItem("Task *", lineEntry),
		widget.NewFormItem("Priority", prioritySelect),
	)

	label := "Add Task"
	if existing != nil {
		label = "Edit Task"
	}

	dialog.ShowCustomConfirm(label, "Save", "Cancel", form, func(ok bool) {
		if !ok {
			return
		}
		if strings.TrimSpace(lineEntry.Text) == "" {
			dialog.ShowError(fmt.Errorf("task cannot be empty"), s.win)
			return
		}
		line := withPriority(lineEntry.Text, prioritySelect.Selected)
		var err error
		if existing == nil {
			_, err = s.svc.Add(line)
		} else {
			edited := todo.Parse(line)
			edited.CompletedOn = existing.CompletedOn
			_, err = s.svc.Edit(existing.ID, edited.String())
		}
		if err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		s.refresh()
	}, s.win)
}

// withPriority puts the selected priority in front of line, replacing any
// "(X) " the user typed.
func withPriority(line, sel string) string {
	line = strings.TrimSpace(line)
	if t := todo.Parse(line); !t.Done() && t.Priority != todo.NoPriority {
		line = strings.TrimSpace(line[len("(X) "):])
	}
	p, ok := todo.ParsePriority(sel)
	if !ok {
		return line
	}
	return "(" + p.String() + ") " + line
}

// annotations renders contexts, projects and the due date in canonical order.
func annotations(t *todo.Task) string {
	parts := append(append([]string{}, t.Contexts...), t.Projects...)
	if t.DueOn != nil {
		parts = append(parts, "due:"+t.DueOn.Format(todo.DateLayout))
	}
	return strings.Join(parts, " ")
}

func describe(t *todo.Task) string {
	var parts []string
	if a := annotations(t); a != "" {
		parts = append(parts, a)
	}
	if t.CreatedOn != nil {
		parts = append(parts, "created "+t.CreatedOn.Format("Jan 2"))
	}
	if t.Done() {
		parts = append(parts, "done "+t.CompletedOn.Format("Jan 2"))
	}
	if len(parts) == 0 {
		return "no annotations"
	}
	return strings.Join(parts, " · ")
}

// ── Custom dark theme ─────────────────────────────────────────────────────────

type darkTheme struct{}

func (darkTheme) Color(n fyne.ThemeColorName, v fyne.ThemeVariant) color.Color {
	switch n {
	case theme.ColorNameBackground:
		return colBackground
	case theme.ColorNameButton:
		return colAccent
	case theme.ColorNamePrimary:
		return colAccent
	case theme.ColorNameForeground:
		return color.White
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 35, G: 35, B: 50, A: 255}
	case theme.ColorNameDisabled:
		return color.NRGBA{R: 80, G: 80, B: 100, A: 255}
	case theme.ColorNameSeparator:
		return color.NRGBA{R: 50, G: 50, B: 65, A: 255}
	}
	return theme.DefaultTheme().Color(n, v)
}

func (darkTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (darkTheme) Icon(n fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(n)
}

func (darkTheme) Size(n fyne.ThemeSizeName) float32 {
	switch n {
	case theme.SizeNamePadding:
		return 10
	case theme.SizeNameText:
		return 14
	case theme.SizeNameInlineIcon:
		return 20
	}
	return theme.DefaultTheme().Size(n)
}
