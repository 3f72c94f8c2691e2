package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/iho/salesledger/internal/adapter/http/dto"
	"github.com/iho/salesledger/internal/domain"
	"github.com/iho/salesledger/internal/usecase"
)

// WindowResolver converts caller timestamps into business-zone windows.
type WindowResolver interface {
	ParseCallerTime(value string) (time.Time, error)
	Explicit(from, to *time.Time) (domain.TimeWindow, error)
	Resolve(in usecase.ResolveInput) (usecase.ResolvedWindow, error)
	Location() *time.Location
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSaleNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOldBalanceRequired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidClientName):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAmountTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSignInconsistent):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoteTooLong):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAccessoryNameTooLong):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// explicitQuery parses clientId/from/to into a resolved ledger query.
func explicitQuery(r *http.Request, resolver WindowResolver) (domain.LedgerQuery, error) {
	rq, err := dto.ParseRangeQuery(r.URL.Query(), resolver.ParseCallerTime)
	if err != nil {
		return domain.LedgerQuery{}, err
	}

	window, err := resolver.Explicit(rq.From, rq.To)
	if err != nil {
		return domain.LedgerQuery{}, err
	}

	return domain.LedgerQuery{ClientID: rq.ClientID, Window: window}, nil
}

// mapQueryError maps errors raised while reading query parameters. Anything
// that is not a domain error is a malformed parameter.
func mapQueryError(err error) int {
	if status := mapDomainError(err); status != http.StatusInternalServerError {
		return status
	}
	return http.StatusBadRequest
}
