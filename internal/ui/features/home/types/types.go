// Package types provides shared types for the home feature.
package types //nolint:revive // intentional: imported with alias hometypes

import (
	"github.com/leapstack-labs/pins/internal/metadata"
	"github.com/leapstack-labs/pins/pkg/core"
)

// Item is a pin decorated with its resource metadata.
type Item struct {
	core.PinnedItem
	Metadata *metadata.Entry `json:"metadata,omitempty"`
}

// Title is the display name: the metadata title when present, otherwise the pin label.
func (i Item) Title() string {
	if i.Metadata != nil && i.Metadata.Title != "" {
		return i.Metadata.Title
	}
	return i.Label()
}

// Description is the metadata description, or "".
func (i Item) Description() string {
	if i.Metadata == nil {
		return ""
	}
	return i.Metadata.Description
}
