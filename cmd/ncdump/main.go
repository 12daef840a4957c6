// Command ncdump inspects files and converts them to and from the NetCDF
// classic format.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
