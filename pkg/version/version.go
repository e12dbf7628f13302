package version

// Version is overridden at build time with
// -ldflags "-X github.com/publitio/publitio-go/pkg/version.Version=..."
var Version = "v0.1.0-dev"
