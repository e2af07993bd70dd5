package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/shoppulse/pulse/components/dashboard"
)

type preferencesService interface {
	Preferences(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.Preferences, error)
}

// PreferencesQuery returns a viewer's stored display preferences.
type PreferencesQuery struct {
	service preferencesService
}

// NewPreferencesQuery builds the query.
func NewPreferencesQuery(service preferencesService) *PreferencesQuery {
	return &PreferencesQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, dashboard.Preferences] = (*PreferencesQuery)(nil)

// Query resolves preferences for the viewer.
func (q *PreferencesQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.Preferences, error) {
	return q.service.Preferences(ctx, viewer)
}
