package ui

import (
	"fmt"

	"cutdesk/internal/theme"
)

// VersionInfo holds version information for display in UI headers.
// Populated by main.go from ldflags-injected values.
type VersionInfo struct {
	Commit    string
	Date      string
	GoVersion string
	Tagline   string
	Version   string
}

// DefaultVersionInfo provides default values when version info is not available
var DefaultVersionInfo = VersionInfo{
	Commit:    "unknown",
	Date:      "unknown",
	GoVersion: "unknown",
	Tagline:   "Frame-accurate scrubbing from the keyboard",
	Version:   "dev",
}

var versionInfo = DefaultVersionInfo

// SetVersionInfo sets the global version info (called from main.go)
func SetVersionInfo(info VersionInfo) {
	versionInfo = info
}

// renderHeader renders the app name, the version details in dev mode, and the user and preset in use.
func renderHeader(devMode bool, user, preset string) string {
	line := theme.AppNameStyle.Render("cutdesk")
	if devMode {
		commit := versionInfo.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		line += theme.VersionStyle.Render(fmt.Sprintf(" %s | %s | %s | %s",
			versionInfo.Version, commit, versionInfo.Date, versionInfo.GoVersion))
	}

	sub := versionInfo.Tagline
	if user != "" {
		sub = fmt.Sprintf("%s  ·  %s  ·  preset %s", versionInfo.Tagline, user, preset)
	}
	return line + "\n" + theme.TaglineStyle.Render(sub) + "\n"
}
