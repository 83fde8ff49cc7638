// Package apiclient talks to the activities backend: it lists the catalog
// and signs participants up for, or removes them from, an activity.
package apiclient

import (
	"context"

	"github.com/mergington/activities/pkg/activities"
)

// ActivitiesAPI is the backend as seen by the UI.
type ActivitiesAPI interface {
	GetActivities(ctx context.Context) (*activities.Catalog, error)
	Signup(ctx context.Context, activity, email string) (string, error)
	Unregister(ctx context.Context, activity, email string) (string, error)
}
