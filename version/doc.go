// Package version reports build information for the progressive binary.
//
// Version, commit and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/progressive/version.Version=1.0.0" ./cmd/progressive
//
// Missing values fall back to the VCS settings recorded by the Go toolchain.
package version
