package actions

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/pins/internal/ui/features/actions/pages"
)

// Button renders the action as a button carrying its descriptor in
// data-pins-action. A nil action renders nothing.
func Button(action *Action) templ.Component {
	if action == nil {
		return templ.NopComponent
	}
	return pages.ActionButton(action.Label, action)
}
