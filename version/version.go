package version

import "fmt"

// appName is the canonical application name, shared by every binary built
// from this module.
const appName = "emberd"

const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0
)

// appBuild carries optional build metadata. It is meant to be set at link
// time with '-ldflags "-X github.com/emberchain/emberd/version.appBuild=foo"'
// and may only contain alphanumerics and dashes; anything else is dropped.
var appBuild string

var version string

// AppName returns the canonical application name, independent of the binary
// it is linked into.
func AppName() string {
	return appName
}

// Version returns the semantic version of this build, with sanitized build
// metadata appended when present.
func Version() string {
	if version == "" {
		version = fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
		if build := sanitizeBuild(appBuild); build != "" {
			version += "-" + build
		}
	}
	return version
}

func sanitizeBuild(build string) string {
	for _, r := range build {
		isDigit := r >= '0' && r <= '9'
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isDigit && !isLetter && r != '-' {
			return ""
		}
	}
	return build
}
