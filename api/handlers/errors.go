// ABOUTME: Error-to-HTTP mapping for the JSON surfaces
// ABOUTME: NotFound maps to 404, Validation to 400, everything else to 500

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/copus-io/copus-edge/core/discovery"
	coreerrors "github.com/copus-io/copus-edge/core/errors"
)

// writeJSON serializes v with the given status. Headers must be set
// before calling.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a pipeline error onto the JSON error contract.
func writeError(w http.ResponseWriter, err error) {
	var notFound *coreerrors.NotFoundError
	if errors.As(err, &notFound) {
		body := map[string]interface{}{"error": notFound.Resource + " not found"}
		switch notFound.Resource {
		case "user", "treasury":
			body["namespace"] = notFound.ID
		default:
			body["id"] = notFound.ID
		}
		writeJSON(w, http.StatusNotFound, body)
		return
	}

	var validation *coreerrors.ValidationError
	if errors.As(err, &validation) {
		body := map[string]interface{}{"error": validation.Message}
		if validation.Field == "topic" {
			body["examples"] = discovery.ExampleTopics
		}
		writeJSON(w, http.StatusBadRequest, body)
		return
	}

	writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"error":   "internal error",
		"details": err.Error(),
	})
}
