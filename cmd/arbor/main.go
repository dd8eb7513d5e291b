// Command arbor shows game project and scene hierarchies in tree view
// panels.
package main

import "os"

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
