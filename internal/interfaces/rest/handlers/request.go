package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/DanielPopoola/dinepay/internal/interfaces/rest"
)

const maxBodyBytes = 1 << 20

// decode reads a JSON body into dst and validates its struct tags.
// It writes the error response itself and reports whether to continue.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(fmt.Errorf("malformed JSON body: %w", err)), h.logger)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return false
	}
	return true
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, application.NewInvalidInputError(fmt.Errorf("invalid id %q", raw))
	}
	return id, nil
}
