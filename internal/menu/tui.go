package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/corvidmail/attachbrowser/internal/attach"
)

var (
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	deletedStyle = lipgloss.NewStyle().Strikethrough(true)
	taggedStyle  = lipgloss.NewStyle().Bold(true)
)

// keyOps maps terminal key presses to attach.Op, mirroring the
// original's hard-coded function-key bindings for the attachment
// menu.
var keyOps = map[string]attach.Op{
	"enter": attach.OpViewAttach,
	"v":     attach.OpViewAttach,
	"h":     attach.OpDisplayHeaders,
	"s":     attach.OpSave,
	"|":     attach.OpPipe,
	"p":     attach.OpPrint,
	"d":     attach.OpDelete,
	"u":     attach.OpUndelete,
	"t":     attach.OpAttachCollapse,
	"e":     attach.OpEditType,
	"x":     attach.OpExtractKeys,
	"q":     attach.OpExit,
}

// Model is the bubbletea model rendering one EntryList screen and
// resolving the next attach.Op the session loop should dispatch.
type Model struct {
	list      *attach.EntryList
	formatter *attach.EntryFormatter
	format    string
	cursor    int

	op   attach.Op
	done bool
}

// NewModel builds a Model over list, cursor starting at startCursor.
// format is the user's AttachFormat template (spec.md §4.2), supplied
// by the caller rather than hardcoded here so config stays the single
// source of truth for it.
func NewModel(list *attach.EntryList, formatter *attach.EntryFormatter, format string, startCursor int) *Model {
	return &Model{list: list, formatter: formatter, format: format, cursor: startCursor}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	key := keyMsg.String()

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < m.list.Len()-1 {
			m.cursor++
		}
		return m, nil
	case " ":
		if e := m.list.At(m.cursor); e != nil {
			e.Body.Tagged = !e.Body.Tagged
		}
		return m, nil
	case "ctrl+c":
		m.op = attach.OpExit
		m.done = true
		return m, tea.Quit
	}

	if op, ok := keyOps[key]; ok {
		m.op = op
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	for i := 0; i < m.list.Len(); i++ {
		e := m.list.At(i)
		line := m.formatter.Expand(m.format, e, i+1)

		if e.Body.Deleted {
			line = deletedStyle.Render(line)
		}
		if e.Body.Tagged {
			line = taggedStyle.Render(line)
		}
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		fmt.Fprintln(&b, line)
	}
	return b.String()
}

// Cursor returns the cursor position after the program quits.
func (m *Model) Cursor() int { return m.cursor }

// Op returns the resolved operation after the program quits.
func (m *Model) Op() attach.Op {
	if !m.done {
		return attach.OpNone
	}
	return m.op
}

// RunOnce drives one bubbletea program to completion and returns the
// chosen op and cursor, the menu layer's half of SessionController's
// "fetch next op from menu" step (spec.md §4.8 step 5).
func RunOnce(list *attach.EntryList, formatter *attach.EntryFormatter, format string, cursor int) (attach.Op, int, error) {
	m := NewModel(list, formatter, format, cursor)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return attach.OpExit, cursor, err
	}
	fm := final.(*Model)
	return fm.Op(), fm.Cursor(), nil
}

// Driver adapts RunOnce into attach.MenuDriver, carrying the formatter
// and format template the session loop itself has no business knowing
// about.
type Driver struct {
	Formatter *attach.EntryFormatter
	Format    string
}

func (d *Driver) NextOp(list *attach.EntryList, cursor int) (attach.Op, int, error) {
	return RunOnce(list, d.Formatter, d.Format, cursor)
}
