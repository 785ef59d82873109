package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/foodmart/internal/models"
	"github.com/google/uuid"
)

// AssignmentService is the coordination surface used by the handlers
type AssignmentService interface {
	// OfferAssignment records one offer per driver for the wave
	OfferAssignment(ctx context.Context, orderID uuid.UUID, driverIDs []uuid.UUID, wave int, ttl time.Duration) ([]models.Assignment, error)
	// AcceptAssignment binds the driver through a conditional update
	AcceptAssignment(ctx context.Context, orderID, driverID uuid.UUID) (*models.Assignment, error)
	// DeclineAssignment records a driver's refusal
	DeclineAssignment(ctx context.Context, assignmentID uuid.UUID) error
}

// DriverStateService is the presence surface used by the handlers
type DriverStateService interface {
	// RecordHeartbeat marks the driver online
	RecordHeartbeat(ctx context.Context, driverID uuid.UUID, at time.Time) error
	// GetDriverState returns the presence row
	GetDriverState(ctx context.Context, driverID uuid.UUID) (*models.DriverState, error)
}

// DriverHandler represents HTTP handler for driver-related requests
type DriverHandler struct {
	assignments AssignmentService
	orders      OrderService
	escrow      EscrowService
	drivers     DriverStateService
}

// NewDriverHandler creates new DriverHandler instance
func NewDriverHandler(assignments AssignmentService, orders OrderService, escrow EscrowService, drivers DriverStateService) *DriverHandler {
	return &DriverHandler{
		assignments: assignments,
		orders:      orders,
		escrow:      escrow,
		drivers:     drivers,
	}
}

type assignmentResponse struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	DriverID  string `json:"driver_id"`
	Status    string `json:"status"`
	Wave      int    `json:"wave"`
	ExpiresAt string `json:"expires_at"`
}

func toAssignmentResponse(a *models.Assignment) assignmentResponse {
	return assignmentResponse{
		ID:        a.ID.String(),
		OrderID:   a.OrderID.String(),
		DriverID:  a.DriverID.String(),
		Status:    a.Status,
		Wave:      a.Wave,
		ExpiresAt: a.ExpiresAt.Format(time.RFC3339),
	}
}

type offerRequest struct {
	DriverIDs  []string `json:"driver_ids"`
	Wave       int      `json:"wave"`
	TTLSeconds int      `json:"ttl_seconds"`
}

// OfferAssignment dispatches offers for an order to a wave of drivers
// 201 — offers recorded
// 400 — malformed body
// 409 — order already assigned or wave went backward
func (dh *DriverHandler) OfferAssignment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		var req offerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		driverIDs := make([]uuid.UUID, 0, len(req.DriverIDs))
		for _, raw := range req.DriverIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				http.Error(w, "invalid driver id", http.StatusBadRequest)
				return
			}
			driverIDs = append(driverIDs, id)
		}

		offers, err := dh.assignments.OfferAssignment(r.Context(), orderID, driverIDs,
			req.Wave, time.Duration(req.TTLSeconds)*time.Second)
		if err != nil {
			writeError(w, err)
			return
		}

		resp := make([]assignmentResponse, 0, len(offers))
		for i := range offers {
			resp = append(resp, toAssignmentResponse(&offers[i]))
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}

// AcceptAssignment lets the driver claim an offered order
// 200 — assignment won
// 404 — no open offer for this driver
// 409 — another driver already holds the order
func (dh *DriverHandler) AcceptAssignment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID, ok := actorID(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orderID, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		assignment, err := dh.assignments.AcceptAssignment(r.Context(), orderID, driverID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAssignmentResponse(assignment))
	}
}

// DeclineAssignment records a driver's refusal of an offer
func (dh *DriverHandler) DeclineAssignment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid assignment id", http.StatusBadRequest)
			return
		}

		if err := dh.assignments.DeclineAssignment(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus applies a driver-side lifecycle transition.
// DELIVERED settles through the escrow release so the earnings credit
// and the status flip share one transaction.
func (dh *DriverHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID, ok := actorID(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orderID, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		var order *models.Order
		if req.Status == models.OrderStatusDelivered {
			order, err = dh.escrow.ReleaseEscrowOnDelivery(r.Context(), orderID, driverID)
		} else {
			order, err = dh.orders.Transition(r.Context(), orderID, req.Status)
		}
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOrderResponse(order))
	}
}

type heartbeatResponse struct {
	IsOnline               bool   `json:"is_online"`
	ActiveAssignmentsCount int    `json:"active_assignments_count"`
	LastHeartbeatAt        string `json:"last_heartbeat_at"`
}

// Heartbeat marks the driver online and stamps the heartbeat
func (dh *DriverHandler) Heartbeat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID, ok := actorID(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		now := time.Now()
		if err := dh.drivers.RecordHeartbeat(r.Context(), driverID, now); err != nil {
			writeError(w, err)
			return
		}

		state, err := dh.drivers.GetDriverState(r.Context(), driverID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, heartbeatResponse{
			IsOnline:               state.IsOnline,
			ActiveAssignmentsCount: state.ActiveAssignmentsCount,
			LastHeartbeatAt:        state.LastHeartbeatAt.Format(time.RFC3339),
		})
	}
}
