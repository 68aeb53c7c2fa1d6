package pages

import (
	"net/url"

	hometypes "github.com/leapstack-labs/pins/internal/ui/features/home/types"
)

// Element ids the homepage script reads.
const (
	TargetID = "pins-homepage-target"
	DataID   = "pins-data"
)

// resourcePath is the host-relative path of a pinned resource.
func resourcePath(it hometypes.Item) string {
	p := "/" + url.PathEscape(it.OriginDatabase)
	if it.OriginTable != nil {
		p += "/" + url.PathEscape(*it.OriginTable)
	}
	return p
}

// dataItems keeps the data island a JSON array when nothing is pinned.
func dataItems(items []hometypes.Item) []hometypes.Item {
	if items == nil {
		return []hometypes.Item{}
	}
	return items
}
