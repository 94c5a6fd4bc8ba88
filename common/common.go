// Package common holds process-wide constants and the logger setup shared by
// the registry server and CLI.
package common

var (
	// PackageName is used as the metrics namespace and default service tag.
	PackageName = "inventor-registry"

	// Version is overridden at build time with -ldflags "-X ...common.Version=..."
	Version = "dev"
)
