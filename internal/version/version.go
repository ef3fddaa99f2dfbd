// Package version reports the version of this build.
package version

import "runtime/debug"

// Default is the version string when none could be determined.
const Default = "dev"

// version is overridable at link time:
//
//	go build -ldflags "-X github.com/valentinnodan/compilers-supplementary/internal/version.version=v1.2.3"
var version string

// GetVersion returns the linked version if set, otherwise the module version
// recorded by the Go toolchain, otherwise Default.
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Default
}
