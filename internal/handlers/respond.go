package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"marketplace/internal/apperr"

	"github.com/rs/zerolog"
)

type errorBody struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// respondError is the single point translating service failures to
// status codes. Internal causes are logged, never sent to clients.
func respondError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	e := apperr.From(err)
	switch e.Kind {
	case apperr.KindValidation:
		respondJSON(w, http.StatusBadRequest, errorBody{
			Error:  "validation_failed",
			Errors: e.Fields,
		})
	case apperr.KindUnauthenticated:
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthenticated", Message: e.Message})
	case apperr.KindConflict:
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "conflict", Message: e.Message})
	case apperr.KindNotFound:
		respondJSON(w, http.StatusNotFound, errorBody{Error: "not_found", Message: e.Message})
	case apperr.KindForbidden:
		respondJSON(w, http.StatusForbidden, errorBody{Error: "forbidden", Message: e.Message})
	default:
		logger.Error().Err(e).Msg("Internal error")
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal_error", Message: "Internal server error"})
	}
}

// decodeBody parses a JSON request body into an explicit per-route
// schema. Type mismatches surface as field-level validation errors so
// a string where a number belongs names the offending field.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			return apperr.Validation(apperr.Field(ute.Field, typeMismatchMessage(ute)))
		}
		return apperr.Validation(apperr.Field("body", "Invalid request body"))
	}
	return nil
}

func typeMismatchMessage(ute *json.UnmarshalTypeError) string {
	switch ute.Type.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return ute.Field + " must be a number"
	case reflect.String:
		return ute.Field + " must be a string"
	default:
		return ute.Field + " is invalid"
	}
}
