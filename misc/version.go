// Package misc keeps build time information.
package misc

import (
	"path/filepath"
	"strings"
)

// Set by the linker: -X tprint/misc.version=... -X tprint/misc.buildHash=...
var (
	version   = "dev"
	buildHash = "unknown"
	appName   = "tprint"
)

// GetVersion returns version of the program.
func GetVersion() string {
	return version
}

// GetGitHash returns commit hash the program was built from.
func GetGitHash() string {
	return buildHash
}

// GetAppName returns short program name, it is used for naming logs, reports
// and temporary files.
func GetAppName() string {
	return strings.TrimSuffix(filepath.Base(appName), filepath.Ext(appName))
}
