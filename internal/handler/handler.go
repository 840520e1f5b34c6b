// Package handler glues HTTP to the services: decode and validate input
// against the contract shapes, resolve the caller, invoke the service, and
// map domain errors to statuses and the {message, field?} error body.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"storefront/api"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var validate = newValidator()

// newValidator builds a validator that reports JSON field names, so the
// "field" of a 400 body matches what the client sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate decodes the JSON body into dst and validates it against
// its contract tags. Failures come back as validation domain errors naming
// the first offending field, matching the original single-error convention.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return api.NewValidationError("invalid request body", "")
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return api.NewValidationError(validationMessage(fe), fe.Field())
		}
		return api.NewValidationError("validation error", "")
	}

	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// idParam extracts the numeric ":id" path parameter.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, api.NewValidationError("invalid id", "id")
	}
	return id, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Too late to change the status; nothing useful to do here.
		return
	}
}

// writeError maps an error to its wire representation. Domain errors carry
// their contract status and body; anything else is an internal error with no
// detail leaked to the client.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *api.DomainError
	if errors.As(err, &domainErr) {
		writeJSON(w, statusForCode(domainErr.Code), api.ErrorResponse{
			Message: domainErr.Message,
			Field:   domainErr.Field,
		})
		return
	}

	logger.Error().Err(err).Msg("internal error")
	writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
}

// writeUnauthorized rejects a request that carries no caller identity.
func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Message: "Unauthorized"})
}

// statusForCode maps domain error codes to HTTP statuses. Duplicate email is
// 400, not 409, by contract.
func statusForCode(code string) int {
	switch code {
	case api.CodeValidation, api.CodeEmailTaken, api.CodeCartEmpty:
		return http.StatusBadRequest
	case api.CodeInvalidCredentials, api.CodeUnauthorized:
		return http.StatusUnauthorized
	case api.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
