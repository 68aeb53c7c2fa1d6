// Package home provides the pinned-items block for the application homepage.
package home

import hometypes "github.com/leapstack-labs/pins/internal/ui/features/home/types"

// Item is a pin decorated with its resource metadata.
type Item = hometypes.Item
