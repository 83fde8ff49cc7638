package ui

import "context"

const (
	SelectPlaceholder  = "-- Select an activity --"
	NoParticipantsText = "No participants yet."
	ErrorLoadingText   = "Error loading activities."

	ClassHidden  = "hidden"
	ClassSuccess = "message success"
	ClassError   = "message error"
)

// View is everything a front end needs to draw the page. A render replaces
// ActivitiesList and ActivitySelect wholesale.
type View struct {
	ActivitiesList ActivitiesList
	ActivitySelect Select
	SignupForm     SignupForm
	Message        Message
}

// ActivitiesList is either a list of cards or, after a failed initial
// load, a single error line.
type ActivitiesList struct {
	Cards     []Card
	ErrorText string
}

type Card struct {
	// ID is a URL safe element ID derived from Name.
	ID              string
	Name            string
	Description     string
	Schedule        string
	MaxParticipants string
	Participants    []ParticipantEntry
	// Placeholder is set instead of Participants when there are none.
	Placeholder string
}

type ParticipantEntry struct {
	Email  string
	Remove *RemoveControl
}

type Option struct {
	Value string
	Label string
}

type Select struct {
	Options []Option
	Value   string
}

type SignupForm struct {
	Email string
}

type Message struct {
	Text   string
	Class  string
	Hidden bool
}

func (m Message) IsError() bool {
	return m.Class == ClassError
}

// RemoveControl is the removal affordance attached to one participant. Its
// click handler is bound by the render that created it.
type RemoveControl struct {
	Activity string
	Email    string
	onClick  func(ctx context.Context)
}

// Click runs the handler bound at render time.
func (r *RemoveControl) Click(ctx context.Context) {
	if r == nil || r.onClick == nil {
		return
	}

	r.onClick(ctx)
}

// RemoveControls returns every remove control in display order.
func (v View) RemoveControls() []*RemoveControl {
	var controls []*RemoveControl
	for _, card := range v.ActivitiesList.Cards {
		for _, p := range card.Participants {
			controls = append(controls, p.Remove)
		}
	}

	return controls
}

func (v View) clone() View {
	c := v
	c.ActivitiesList.Cards = make([]Card, len(v.ActivitiesList.Cards))
	for i, card := range v.ActivitiesList.Cards {
		card.Participants = append([]ParticipantEntry(nil), card.Participants...)
		c.ActivitiesList.Cards[i] = card
	}
	c.ActivitySelect.Options = append([]Option(nil), v.ActivitySelect.Options...)

	return c
}
