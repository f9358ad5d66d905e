// Command enrich adds department fields to a JSON array of documents
// read from a file or stdin and writes the result to stdout.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
