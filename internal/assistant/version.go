package assistant

// Build information, set via -ldflags at build time
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
