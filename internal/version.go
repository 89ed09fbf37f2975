// Package internal holds build-time metadata shared by the service binary.
package internal

// Version is the build version, set at build time with -ldflags.
var Version = "dev"
