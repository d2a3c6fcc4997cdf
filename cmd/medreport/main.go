// medreport turns free-text symptoms into a structured, locally stored report.
// Single binary: symptom search, offline analysis, and a local HTTP picker.
package main

import (
	"os"

	"github.com/corey/medreport/cmd/medreport/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
