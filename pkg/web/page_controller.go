package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/pkg/ui"
)

type PageController struct {
	sessions *sessionStore
}

func NewPageController(sessions *sessionStore) *PageController {
	return &PageController{sessions: sessions}
}

type indexData struct {
	View    ui.View
	Pending *pendingRemoval
}

func (c *PageController) Index(ctx echo.Context) error {
	s, err := c.sessions.forRequest(ctx)
	if err != nil {
		return err
	}

	return ctx.Render(http.StatusOK, "index.html", indexData{
		View:    s.page.View(),
		Pending: s.Pending(),
	})
}

// Signup fills the form from the posted fields and submits it. Like a
// browser select, an activity that isn't an option leaves the selection
// unchanged.
func (c *PageController) Signup(ctx echo.Context) error {
	s, err := c.sessions.forRequest(ctx)
	if err != nil {
		return err
	}

	s.page.SetEmail(ctx.FormValue("email"))
	s.page.SelectActivity(ctx.FormValue("activity"))
	s.page.SubmitSignup(ctx.Request().Context())

	return ctx.Redirect(http.StatusSeeOther, "/")
}

// Unregister clicks the remove control for the posted activity and email.
// Without an answer the click only records the confirmation prompt.
func (c *PageController) Unregister(ctx echo.Context) error {
	s, err := c.sessions.forRequest(ctx)
	if err != nil {
		return err
	}

	activity := ctx.FormValue("activity")
	email := ctx.FormValue("email")

	control := findRemoveControl(s.page.View(), activity, email)
	if control == nil {
		// The control went away with a re-render; there is nothing to click.
		s.clearPending()
		return ctx.Redirect(http.StatusSeeOther, "/")
	}

	r := removal{
		answer:   confirmAnswer(ctx.FormValue("confirm")),
		activity: activity,
		email:    email,
	}
	control.Click(withRemoval(ctx.Request().Context(), r))

	return ctx.Redirect(http.StatusSeeOther, "/")
}

// Refresh reloads the catalog, as reloading the browser page would.
func (c *PageController) Refresh(ctx echo.Context) error {
	s, err := c.sessions.forRequest(ctx)
	if err != nil {
		return err
	}

	s.page.Load(ctx.Request().Context())

	return ctx.Redirect(http.StatusSeeOther, "/")
}

func findRemoveControl(view ui.View, activity, email string) *ui.RemoveControl {
	for _, control := range view.RemoveControls() {
		if control.Activity == activity && control.Email == email {
			return control
		}
	}

	return nil
}
