package console

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mergington/activities/pkg/ui"
)

type styles struct {
	title       lipgloss.Style
	label       lipgloss.Style
	placeholder lipgloss.Style
	success     lipgloss.Style
	errorText   lipgloss.Style
}

// newStyles picks colors for what out can display; a plain writer gets
// unstyled text.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:       r.NewStyle().Bold(true),
		placeholder: r.NewStyle().Faint(true).Italic(true),
		success:     r.NewStyle().Foreground(lipgloss.Color("2")),
		errorText:   r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// draw prints the whole view and remembers its remove controls so that
// "remove <n>" clicks what the user was shown.
func (s *Session) draw() {
	view := s.page.View()
	s.removeControls = view.RemoveControls()

	var b strings.Builder
	s.writeActivities(&b, view)

	b.WriteString("\n")
	b.WriteString(s.styles.title.Render("Sign Up for an Activity"))
	b.WriteString("\n")
	s.field(&b, "Email", view.SignupForm.Email)
	s.field(&b, "Activity", selectedLabel(view.ActivitySelect))
	for i, o := range view.ActivitySelect.Options {
		b.WriteString("  ")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(") ")
		b.WriteString(o.Label)
		b.WriteString("\n")
	}

	if !view.Message.Hidden {
		b.WriteString("\n")
		style := s.styles.success
		if view.Message.IsError() {
			style = s.styles.errorText
		}
		b.WriteString(style.Render(view.Message.Text))
		b.WriteString("\n")
	}

	s.printf("%s", b.String())
}

// writeActivities writes the activity cards, numbering participants from 1
// across the whole list.
func (s *Session) writeActivities(b *strings.Builder, view ui.View) {
	b.WriteString("\n")
	b.WriteString(s.styles.title.Render("Available Activities"))
	b.WriteString("\n")

	if view.ActivitiesList.ErrorText != "" {
		b.WriteString(s.styles.errorText.Render(view.ActivitiesList.ErrorText))
		b.WriteString("\n")
	}

	n := 0
	for _, card := range view.ActivitiesList.Cards {
		b.WriteString("\n")
		b.WriteString(s.styles.title.Render(card.Name))
		b.WriteString("\n")
		s.field(b, "Description", card.Description)
		s.field(b, "Schedule", card.Schedule)
		s.field(b, "Max Participants", card.MaxParticipants)
		b.WriteString(s.styles.label.Render("Current Participants:"))
		b.WriteString("\n")

		if card.Placeholder != "" {
			b.WriteString("  ")
			b.WriteString(s.styles.placeholder.Render(card.Placeholder))
			b.WriteString("\n")
		}

		for _, p := range card.Participants {
			n++
			b.WriteString("  [")
			b.WriteString(strconv.Itoa(n))
			b.WriteString("] ")
			b.WriteString(p.Email)
			b.WriteString("\n")
		}
	}
}

func (s *Session) field(b *strings.Builder, label, value string) {
	b.WriteString(s.styles.label.Render(label + ":"))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}

func selectedLabel(sel ui.Select) string {
	for _, o := range sel.Options {
		if o.Value == sel.Value {
			return o.Label
		}
	}

	return sel.Value
}
