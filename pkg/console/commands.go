package console

import (
	"context"
	"strconv"
	"strings"
)

const helpText = `Commands:
  list                     redraw the activities
  refresh                  fetch the activities again
  email <address>          fill in the email field
  select <name|number>     choose an activity (0 clears the selection)
  submit                   sign up with the filled in form
  signup <email> <name>    fill in the form and submit it
  remove <number>          remove the numbered participant
  help                     show this help
  quit                     leave
`

// execute runs one command line and reports whether the session should end.
func (s *Session) execute(ctx context.Context, line string) bool {
	cmd, arg := splitCommand(line)

	switch cmd {
	case "":
		return false

	case "quit", "exit":
		return true

	case "help", "?":
		s.printf(helpText)
		return false

	case "list":

	case "refresh":
		s.page.Load(ctx)

	case "email":
		s.page.SetEmail(arg)

	case "select":
		if !s.selectActivity(arg) {
			s.printf("%s\n", s.styles.errorText.Render("No such activity: "+arg))
			return false
		}

	case "submit":
		s.page.SubmitSignup(ctx)

	case "signup":
		email, activity, _ := strings.Cut(arg, " ")
		activity = strings.TrimSpace(activity)
		s.page.SetEmail(email)
		if !s.selectActivity(activity) {
			s.printf("%s\n", s.styles.errorText.Render("No such activity: "+activity))
			return false
		}
		s.page.SubmitSignup(ctx)

	case "remove":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(s.removeControls) {
			s.printf("%s\n", s.styles.errorText.Render("No such participant number: "+arg))
			return false
		}
		s.removeControls[n-1].Click(ctx)

	default:
		s.printf("%s\n", s.styles.errorText.Render("Unknown command: "+cmd+" (try 'help')"))
		return false
	}

	s.draw()
	return false
}

// selectActivity accepts an option's value or its position in the list.
func (s *Session) selectActivity(arg string) bool {
	options := s.page.View().ActivitySelect.Options
	if n, err := strconv.Atoi(arg); err == nil && n >= 0 && n < len(options) {
		return s.page.SelectActivity(options[n].Value)
	}

	return s.page.SelectActivity(arg)
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(rest)
}
