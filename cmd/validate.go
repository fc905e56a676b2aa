package cmd

import (
	"fmt"
	"io"

	"github.com/projmatch/projmatch/match"
)

// validateInputs loads both record files and lists every diagnostic.
func validateInputs(applicantsPath, projectsPath string, w io.Writer) (*match.LoadReport, error) {
	store := match.NewStore()
	load, err := store.LoadFiles(applicantsPath, projectsPath)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "projects: %d, applicants: %d, warnings: %d\n", load.Projects, load.Applicants, len(load.Warnings))
	for _, warning := range load.Warnings {
		fmt.Fprintf(w, "  - %v\n", warning)
	}
	return load, nil
}
