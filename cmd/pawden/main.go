// Package main is the single-binary entrypoint for Pawden, a virtual-pet
// daemon: one binary, an HTTP API, and a local SQLite store.
package main

import "github.com/pawden-app/pawden/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
