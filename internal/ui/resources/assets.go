// Package resources provides static asset handling for the pins UI.
package resources

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// StaticPath returns the URL path for a static asset served under basePath.
func StaticPath(basePath, name string) string {
	return basePath + "/static/" + name
}
