// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Deep links with resume, content hot reload, navigation journal
// 0.2.0 - Holocard panels, scroll track with organic wheel input
// 0.1.0 - Initial release: navigation machine, top-down scene, headless stops/card commands
