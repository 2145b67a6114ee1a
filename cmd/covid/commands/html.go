package commands

import (
	"fmt"
	"os"

	"github.com/wonny/covid-europe/internal/render"
	"github.com/wonny/covid-europe/internal/report"
)

// writeHTML renders the report page to path
func writeHTML(path string, r *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := render.HTML(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
