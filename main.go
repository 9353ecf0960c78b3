package main

import (
	"github.com/cnosuke/mcp-apk-repack/cmd"
)

var (
	// Version and Revision are replaced when building.
	// To set specific version, edit Makefile.
	Version  = "0.0.1"
	Revision = "xxx"

	Name = "mcp-apk-repack"
)

func main() {
	cmd.Execute(Name, Version, Revision)
}
