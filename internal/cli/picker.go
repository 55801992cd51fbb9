package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/lookbook/pkg/deck"
)

var listDimStyle = lipgloss.NewStyle().Foreground(dim)

// =============================================================================
// SlideListModel - Interactive slide selection
// =============================================================================

// SlideListModel is the bubbletea model for interactive slide selection.
// Slides without content are listed but cannot be picked.
type SlideListModel struct {
	Slides   []deck.Slide
	Cursor   int
	Selected *deck.Slide
	Height   int
	Offset   int
}

// NewSlideListModel creates a new slide list model.
func NewSlideListModel(slides []deck.Slide) SlideListModel {
	return SlideListModel{Slides: slides, Height: 15}
}

func (m SlideListModel) Init() tea.Cmd {
	return nil
}

func (m SlideListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Slides)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Slides) == 0 {
				return m, nil
			}
			slide := m.Slides[m.Cursor]
			if !slide.Exportable() {
				return m, nil
			}
			m.Selected = &slide
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m SlideListModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Look"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ export  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Slides))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor}, slideRow(i, m.Slides[i])...))
	}

	headerStyle := lipgloss.NewStyle().Foreground(gray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(dim)).
		Headers(append([]string{""}, slideHeaders...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Slides) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if !m.Slides[idx].Exportable() {
				base = base.Foreground(dim)
			} else if col != 0 {
				base = base.Foreground(gold)
			}
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Slides))))
	b.WriteString("\n")
	return b.String()
}

// pickSlide runs the slide picker and returns the chosen slide ID, or ""
// when the user quit without choosing.
func pickSlide(ctx context.Context, slides []deck.Slide) (string, error) {
	p := tea.NewProgram(NewSlideListModel(slides), tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(SlideListModel); ok && m.Selected != nil {
		return m.Selected.ID, nil
	}
	return "", nil
}

// =============================================================================
// Table helpers
// =============================================================================

var slideHeaders = []string{"#", "Look", "ID", "Images", "Status"}

// slideRow describes the i-th slide for the list table and the picker.
func slideRow(i int, s deck.Slide) []string {
	images := len(s.Inspirations)
	var missing int
	for _, img := range s.Inspirations {
		if !img.Loaded() {
			missing++
		}
	}
	count := fmt.Sprintf("%d", images)
	if missing > 0 {
		count = fmt.Sprintf("%d (%d unavailable)", images, missing)
	}

	status := "ready"
	if !s.Exportable() {
		status = "no content"
	}
	return []string{fmt.Sprintf("%d", i+1), s.Title, shortID(s.ID), count, status}
}

// shortID trims generated UUIDs for display.
func shortID(id string) string {
	if len(id) == 36 && strings.Count(id, "-") == 4 {
		return id[:8]
	}
	return id
}
