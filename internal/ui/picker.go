package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Option is one pickable item (a project or an agent).
type Option struct {
	ID   string
	Name string
}

// pickItem adapts Option to bubbles/list.Item.
type pickItem struct {
	opt Option
}

func (i pickItem) Title() string       { return i.opt.Name }
func (i pickItem) Description() string { return "" }
func (i pickItem) FilterValue() string { return i.opt.Name }

// itemDelegate renders options on a single line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(pickItem)
	if !ok {
		return
	}
	if index == m.Index() {
		fmt.Fprint(w, selectedItemStyle.Render("> "+it.opt.Name))
		return
	}
	fmt.Fprint(w, itemStyle.Render(it.opt.Name))
}

type pickModel struct {
	list      list.Model
	choice    *Option
	cancelled bool
}

func (m pickModel) Init() tea.Cmd { return nil }

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keyQuit):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, keySelect):
			if it, ok := m.list.SelectedItem().(pickItem); ok {
				opt := it.opt
				m.choice = &opt
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickModel) View() string {
	return m.list.View() + helpStyle.Render("enter: select  •  q: cancel")
}

var (
	keySelect = key.NewBinding(key.WithKeys("enter"))
	keyQuit   = key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"))
)

// Pick shows an interactive list and returns the chosen option. The list is
// preselected on defaultID when present. Declining returns ErrCancelled.
func Pick(title string, opts []Option, defaultID string) (*Option, error) {
	items := make([]list.Item, len(opts))
	start := 0
	for i, o := range opts {
		items[i] = pickItem{opt: o}
		if defaultID != "" && o.ID == defaultID {
			start = i
		}
	}

	height := len(opts) + 4
	if height > 14 {
		height = 14
	}
	l := list.New(items, itemDelegate{}, 40, height)
	l.Title = title
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Select(start)

	tty, err := OpenTTY()
	if err != nil {
		return nil, err
	}
	defer tty.Close()

	m := pickModel{list: l}
	prog := tea.NewProgram(m, tea.WithInput(tty), tea.WithOutput(os.Stderr))
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("running picker: %w", err)
	}

	result := final.(pickModel)
	if result.cancelled || result.choice == nil {
		return nil, ErrCancelled
	}
	return result.choice, nil
}
