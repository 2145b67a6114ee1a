package render

import (
	"errors"

	"github.com/wonny/covid-europe/internal/external/ecdc"
	"github.com/wonny/covid-europe/internal/report"
)

// InternetRequired heads the connectivity failure message
const InternetRequired = "This app requires internet access."

// ErrorLines turns a pipeline error into the lines shown to the user
func ErrorLines(err error) []string {
	var connErr *ecdc.ConnectivityError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, report.ErrNoCountries):
		return []string{report.NoCountriesMessage}
	case errors.As(err, &connErr):
		return []string{InternetRequired, "Connection error: " + connErr.Reason}
	default:
		return []string{err.Error()}
	}
}
