package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "dartest.dev/pkg/dartest/internal/model"
)

// ErrPickCancelled is returned when the user closes the class picker
// without choosing.
var ErrPickCancelled = errors.New("class selection cancelled")

// TUI decorates SimpleUI with an interactive Bubble Tea class picker.
// All non-interactive output stays identical to SimpleUI.
type TUI struct {
	*SimpleUI
}

// NewTUI creates a TUI wrapping the provided SimpleUI.
func NewTUI(simple *SimpleUI) *TUI {
	return &TUI{SimpleUI: simple}
}

// PickClass shows a selectable list of the class declarations in source.
func (t *TUI) PickClass(ctx context.Context, source m.Path, sites []m.ClassSite) (m.ClassSite, error) {
	items := make([]list.Item, 0, len(sites))
	for _, site := range sites {
		items = append(items, classItem{site: site})
	}

	model := newPickerModel(string(source), items)

	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(t.cmd.OutOrStdout()))

	final, err := program.Run()
	if err != nil {
		return m.ClassSite{}, fmt.Errorf("class picker: %w", err)
	}

	picker, ok := final.(pickerModel)
	if !ok || picker.choice == nil {
		return m.ClassSite{}, ErrPickCancelled
	}

	return *picker.choice, nil
}

// classItem adapts a ClassSite to the bubbles list item interface.
type classItem struct {
	site m.ClassSite
}

func (i classItem) Title() string { return i.site.Name }

func (i classItem) Description() string {
	return fmt.Sprintf("line %d", i.site.Line+1)
}

func (i classItem) FilterValue() string { return i.site.Name }

// pickerModel is the Bubble Tea model behind PickClass.
type pickerModel struct {
	list   list.Model
	choice *m.ClassSite
}

func newPickerModel(source string, items []list.Item) pickerModel {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select a class in " + source
	l.SetShowStatusBar(false)
	l.Styles.Title = lipgloss.NewStyle().Bold(true)

	return pickerModel{list: l}
}

func (p pickerModel) Init() tea.Cmd {
	return nil
}

func (p pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.list.SetSize(msg.Width, msg.Height)

		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := p.list.SelectedItem().(classItem); ok {
				site := item.site
				p.choice = &site
			}

			return p, tea.Quit

		case "q", "esc", "ctrl+c":
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)

	return p, cmd
}

func (p pickerModel) View() string {
	return p.list.View()
}
