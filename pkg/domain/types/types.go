package types

// AppName is the canonical binary name, used in staging-directory prefixes
// and user-facing messages.
const AppName = "fdget"

// Version is the application version, overridden at build time via ldflags.
var Version = "dev"
