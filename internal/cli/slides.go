package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lookbook/pkg/deck"
	"github.com/matzehuels/lookbook/pkg/errors"
)

// slidesCommand creates the command that lists the looks of a deck.
func (c *CLI) slidesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slides",
		Short: "List the looks of a deck and whether they can be exported",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSlides(cmd.Context())
		},
	}
}

func (c *CLI) runSlides(ctx context.Context) error {
	s, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	d := s.deck
	if d.Client != "" {
		printKeyValue("Client", d.Client)
	}
	ref := "none"
	if d.Reference != nil {
		ref = d.Reference.Source
		if !d.Reference.Loaded() {
			ref += " (unavailable)"
		}
	}
	printKeyValue("Reference", ref)
	fmt.Fprintln(stdout)

	if len(d.Slides) == 0 {
		printInfo("The deck has no looks yet")
		return nil
	}

	rows := make([][]string, len(d.Slides))
	for i, sl := range d.Slides {
		rows[i] = slideRow(i, sl)
	}
	headerStyle := lipgloss.NewStyle().Foreground(gray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(dim)).
		Headers(slideHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < len(d.Slides) && !d.Slides[row].Exportable() {
				return lipgloss.NewStyle().Foreground(dim)
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(stdout, t.Render())

	n := len(d.ExportableIDs())
	printDetail("%d of %d looks can be exported", n, len(d.Slides))
	return nil
}

// findSlide resolves a command-line slide reference: an exact ID, a 1-based
// position, or a unique ID prefix.
func findSlide(d *deck.Deck, ref string) (deck.Slide, error) {
	if s, ok := d.Slide(ref); ok {
		return s, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(d.Slides) {
			return d.Slides[n-1], nil
		}
		return deck.Slide{}, errors.New(errors.ErrCodeInvalidInput, "look %d does not exist (deck has %d)", n, len(d.Slides))
	}
	var found []deck.Slide
	for _, s := range d.Slides {
		if strings.HasPrefix(s.ID, ref) {
			found = append(found, s)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return deck.Slide{}, errors.New(errors.ErrCodeInvalidInput, "unknown look %q", ref)
	}
	return deck.Slide{}, errors.New(errors.ErrCodeInvalidInput, "look %q is ambiguous (%d matches)", ref, len(found))
}
