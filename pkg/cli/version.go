package cli

// Version is the running build's semantic version. Release builds override it
// with -ldflags "-X github.com/Fepozopo/patternfill/pkg/cli.Version=x.y.z".
var Version = "0.1.0"
