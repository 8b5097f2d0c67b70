// Command geoschema exports scene geometry into the attribute file schema.
//
// Usage:
//
//	geoschema export [--config path] [--frame N] [--format F] [--verbose]
//	geoschema nodes <scene>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd := newRootCommand(afero.NewOsFs(), os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
