package ui

import (
	"context"

	"github.com/gosimple/slug"
	"github.com/mergington/activities/pkg/activities"
)

// Render replaces the activities list and the select options with ones
// built from catalog. Every call builds new remove controls bound to this
// page; controls from earlier renders are dropped with the old list.
// Replacing the options resets the selection to the placeholder.
func (p *Page) Render(catalog *activities.Catalog) {
	list := ActivitiesList{Cards: []Card{}}
	options := []Option{{Value: "", Label: SelectPlaceholder}}

	for _, a := range catalog.Activities() {
		list.Cards = append(list.Cards, p.card(a))
		options = append(options, Option{Value: a.Name, Label: a.Name})
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.ActivitiesList = list
	p.view.ActivitySelect = Select{Options: options}
}

func (p *Page) card(a activities.Activity) Card {
	card := Card{
		ID:              "activity-" + slug.Make(a.Name),
		Name:            a.Name,
		Description:     a.DescriptionText(),
		Schedule:        a.ScheduleText(),
		MaxParticipants: a.MaxParticipantsText(),
	}

	if !a.HasParticipants() {
		card.Placeholder = NoParticipantsText
		return card
	}

	for _, email := range a.Participants {
		card.Participants = append(card.Participants, ParticipantEntry{
			Email:  email,
			Remove: p.removeControl(a.Name, email),
		})
	}

	return card
}

func (p *Page) removeControl(activity, email string) *RemoveControl {
	return &RemoveControl{
		Activity: activity,
		Email:    email,
		onClick: func(ctx context.Context) {
			p.Unregister(ctx, activity, email)
		},
	}
}
