package server

import (
	"errors"
	"net/http"

	"github.com/sartorproj/goseason/forecast"
	"github.com/sartorproj/goseason/stats"
	"github.com/sartorproj/goseason/timeseries"
)

// classify maps an Analyzer error to an HTTP status and a metrics outcome.
// Upload errors are handled before the pipeline runs.
func classify(err error) (status int, outcome string) {
	var (
		schemaErr       *timeseries.SchemaError
		parseErr        *timeseries.ParseError
		insufficientErr *timeseries.InsufficientDataError
		divErr          *stats.DivisionByZeroError
		convergenceErr  *forecast.ConvergenceError
	)

	switch {
	case errors.As(err, &schemaErr):
		return http.StatusBadRequest, "schema_error"
	case errors.As(err, &parseErr):
		return http.StatusBadRequest, "parse_error"
	case errors.As(err, &insufficientErr):
		return http.StatusBadRequest, "insufficient_data"
	case errors.As(err, &divErr):
		return http.StatusBadRequest, "division_by_zero"
	case errors.As(err, &convergenceErr):
		return http.StatusUnprocessableEntity, "convergence_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
