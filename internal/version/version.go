// Package version exposes the build version of the ledger service.
package version

// Version is stamped at build time via -ldflags.
var Version = "dev"
