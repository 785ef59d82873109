package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/foodmart/internal/middleware"
	"github.com/example/foodmart/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		return
	}
}

// writeError maps domain errors onto the HTTP taxonomy.
func writeError(w http.ResponseWriter, err error) {
	var invalidTransition *models.InvalidTransitionError
	var orderTerminal *models.OrderTerminalError

	switch {
	case errors.Is(err, models.ErrDataNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, models.ErrAssignmentConflict),
		errors.Is(err, models.ErrAlreadyProcessed),
		errors.Is(err, models.ErrConflictData):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrInsufficientBalance),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidPaymentState),
		errors.Is(err, models.ErrCancellationRejected),
		errors.Is(err, models.ErrGracePeriodActive),
		errors.Is(err, models.ErrRestaurantTimeout),
		errors.Is(err, models.ErrWithdrawalNotAllowed),
		errors.As(err, &invalidTransition),
		errors.As(err, &orderTerminal):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidCredentials):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// actorID extracts the authenticated actor from the request context.
func actorID(r *http.Request) (uuid.UUID, bool) {
	payload, ok := middleware.GetAuthPayload(r.Context())
	if !ok {
		return uuid.Nil, false
	}
	return payload.UserID, true
}
