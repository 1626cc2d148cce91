package version

// Version is overridden at build time via
// -ldflags "-X github.com/c9s/mesa/pkg/version.Version=...".
var Version = "v0.2.0-dev"
