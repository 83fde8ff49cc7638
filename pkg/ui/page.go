// Package ui holds the activities page: its view state, the renderer that
// rebuilds it from a catalog, and the signup and unregister controllers.
// Front ends (console, ssh, web) drive a Page and draw its View.
package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/apex/log"
	"github.com/mergington/activities/pkg/apiclient"
)

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// AlwaysConfirm accepts every prompt.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) bool { return true })

// Page is the view context for one user. It is built once and shared by
// all of that user's controllers. Backend calls are made without holding
// the lock; only view updates take it, so overlapping operations are not
// ordered and whichever fetch finishes last is what gets drawn.
type Page struct {
	mu        sync.Mutex
	api       apiclient.ActivitiesAPI
	confirmer Confirmer
	logger    log.Interface
	view      View
}

func NewPage(api apiclient.ActivitiesAPI, confirmer Confirmer) *Page {
	return &Page{
		api:       api,
		confirmer: confirmer,
		logger:    log.Log,
		view: View{
			ActivitySelect: Select{Options: []Option{{Value: "", Label: SelectPlaceholder}}},
			Message:        Message{Class: ClassHidden, Hidden: true},
		},
	}
}

// WithLogger sets where diagnostics go.
func (p *Page) WithLogger(logger log.Interface) *Page {
	p.logger = logger
	return p
}

// View returns a copy of the current view.
func (p *Page) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view.clone()
}

// Load fetches the catalog and renders it. On failure the list area shows
// an error line and the cause is logged.
func (p *Page) Load(ctx context.Context) {
	catalog, err := p.api.GetActivities(ctx)
	if err != nil {
		p.logger.WithError(err).Error("Error fetching activities")
		p.mu.Lock()
		p.view.ActivitiesList = ActivitiesList{ErrorText: ErrorLoadingText}
		p.mu.Unlock()
		return
	}

	p.Render(catalog)
}

// refresh re-fetches after a mutation. Failures are only logged, the
// message area keeps whatever the mutation put there.
func (p *Page) refresh(ctx context.Context) {
	catalog, err := p.api.GetActivities(ctx)
	if err != nil {
		p.logger.WithError(err).Error("Error re-fetching activities")
		return
	}

	p.Render(catalog)
}

func (p *Page) SetEmail(email string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.SignupForm.Email = email
}

// SelectActivity sets the select control's value. Like a browser select,
// only values that are options can be chosen; anything else is ignored.
func (p *Page) SelectActivity(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, o := range p.view.ActivitySelect.Options {
		if o.Value == name {
			p.view.ActivitySelect.Value = name
			return true
		}
	}

	return false
}

// SubmitSignup sends the form's email and selected activity to the backend
// as is. On success the form is cleared and the catalog re-rendered.
func (p *Page) SubmitSignup(ctx context.Context) {
	p.mu.Lock()
	email := p.view.SignupForm.Email
	activity := p.view.ActivitySelect.Value
	p.mu.Unlock()

	message, err := p.api.Signup(ctx, activity, email)
	if err != nil {
		p.logger.WithError(err).WithField("activity", activity).Debug("Signup failed")
		p.showMessage(apiclient.UserMessage(err), ClassError)
		return
	}

	p.mu.Lock()
	p.view.Message = Message{Text: message, Class: ClassSuccess}
	p.view.SignupForm = SignupForm{}
	p.view.ActivitySelect.Value = ""
	p.mu.Unlock()

	p.refresh(ctx)
}

// Unregister asks for confirmation and then removes email from activity.
// A declined prompt sends nothing.
func (p *Page) Unregister(ctx context.Context, activity, email string) {
	if !p.confirmer.Confirm(ctx, fmt.Sprintf("Remove %s from %s?", email, activity)) {
		return
	}

	message, err := p.api.Unregister(ctx, activity, email)
	if err != nil {
		p.logger.WithError(err).WithField("activity", activity).Debug("Unregister failed")
		p.showMessage(apiclient.UserMessage(err), ClassError)
		return
	}

	p.showMessage(message, ClassSuccess)
	p.refresh(ctx)
}

func (p *Page) showMessage(text, class string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.Message = Message{Text: text, Class: class}
}
