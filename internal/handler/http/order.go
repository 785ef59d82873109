package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/foodmart/internal/models"
	"github.com/example/foodmart/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService is the order lifecycle surface used by the handlers
type OrderService interface {
	// PlaceOrder creates a PENDING order with its money split
	PlaceOrder(ctx context.Context, params service.PlaceOrderParams) (*models.Order, error)
	// GetOrder returns order by id
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// AcceptByRestaurant moves PENDING -> ACCEPTED under time gates
	AcceptByRestaurant(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// Transition applies a forward lifecycle edge
	Transition(ctx context.Context, id uuid.UUID, to string) (*models.Order, error)
}

// EscrowService is the payment state machine surface used by the handlers
type EscrowService interface {
	// CanCancel returns the cancellation verdict
	CanCancel(ctx context.Context, orderID uuid.UUID) (models.CancelCheck, error)
	// ProcessEscrowPayment moves funds into hold
	ProcessEscrowPayment(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	// CancelOrderWithRefund cancels and refunds the order
	CancelOrderWithRefund(ctx context.Context, orderID uuid.UUID, reason string) (*models.Order, error)
	// ReleaseEscrowOnDelivery settles the order on delivery
	ReleaseEscrowOnDelivery(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error)
	// CheckRestaurantTimeout returns the timeout verdict
	CheckRestaurantTimeout(ctx context.Context, orderID uuid.UUID) (models.TimeoutCheck, error)
	// ProcessTimeoutRefund refunds an order past the acceptance window
	ProcessTimeoutRefund(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
}

// OrderHandler represents HTTP handler for order-related requests
type OrderHandler struct {
	orders OrderService
	escrow EscrowService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(orders OrderService, escrow EscrowService) *OrderHandler {
	return &OrderHandler{orders: orders, escrow: escrow}
}

type createOrderRequest struct {
	RestaurantID  string `json:"restaurant_id"`
	ItemsSubtotal string `json:"items_subtotal"`
	DeliveryFee   string `json:"delivery_fee"`
	PaymentMethod string `json:"payment_method"`
}

type orderResponse struct {
	ID                  string  `json:"id"`
	Status              string  `json:"status"`
	PaymentStatus       string  `json:"payment_status"`
	PaymentMethod       string  `json:"payment_method"`
	ItemsSubtotal       string  `json:"items_subtotal"`
	DeliveryFee         string  `json:"delivery_fee"`
	TotalPrice          string  `json:"total_price"`
	DriverID            *string `json:"driver_id,omitempty"`
	CreatedAt           string  `json:"created_at"`
	AcceptedAt          *string `json:"accepted_at,omitempty"`
	DeliveredAt         *string `json:"delivered_at,omitempty"`
	EstimatedPickupTime *string `json:"estimated_pickup_time,omitempty"`
}

func toOrderResponse(order *models.Order) orderResponse {
	resp := orderResponse{
		ID:            order.ID.String(),
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		PaymentMethod: order.PaymentMethod,
		ItemsSubtotal: order.ItemsSubtotal.StringFixed(2),
		DeliveryFee:   order.DeliveryFee.StringFixed(2),
		TotalPrice:    order.TotalPrice.StringFixed(2),
		CreatedAt:     order.CreatedAt.Format(time.RFC3339),
	}
	if order.DriverID != nil {
		s := order.DriverID.String()
		resp.DriverID = &s
	}
	if order.AcceptedAt != nil {
		s := order.AcceptedAt.Format(time.RFC3339)
		resp.AcceptedAt = &s
	}
	if order.DeliveredAt != nil {
		s := order.DeliveredAt.Format(time.RFC3339)
		resp.DeliveredAt = &s
	}
	if order.EstimatedPickupTime != nil {
		s := order.EstimatedPickupTime.Format(time.RFC3339)
		resp.EstimatedPickupTime = &s
	}
	return resp
}

// CreateOrder places a new order for the authenticated customer
// 201 — order created
// 400 — malformed body or negative amounts
// 401 — missing or invalid token
// 500 — internal error
func (oh *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := actorID(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		restaurantID, err := uuid.Parse(req.RestaurantID)
		if err != nil {
			http.Error(w, "invalid restaurant id", http.StatusBadRequest)
			return
		}
		subtotal, err := decimal.NewFromString(req.ItemsSubtotal)
		if err != nil {
			http.Error(w, "invalid items subtotal", http.StatusBadRequest)
			return
		}
		fee, err := decimal.NewFromString(req.DeliveryFee)
		if err != nil {
			http.Error(w, "invalid delivery fee", http.StatusBadRequest)
			return
		}

		order, err := oh.orders.PlaceOrder(r.Context(), service.PlaceOrderParams{
			CustomerID:    customerID,
			RestaurantID:  restaurantID,
			ItemsSubtotal: subtotal,
			DeliveryFee:   fee,
			PaymentMethod: req.PaymentMethod,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toOrderResponse(order))
	}
}

// GetOrder returns a single order
func (oh *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		order, err := oh.orders.GetOrder(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOrderResponse(order))
	}
}

type canCancelResponse struct {
	CanCancel bool   `json:"can_cancel"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
}

// CanCancel returns the cancellation verdict for the order
func (oh *OrderHandler) CanCancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		check, err := oh.escrow.CanCancel(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, canCancelResponse{
			CanCancel: check.CanCancel,
			Reason:    check.Reason,
			Message:   check.Message,
		})
	}
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder cancels the order with a refund when eligible
// 200 — cancelled
// 400 — cancellation not allowed
// 404 — unknown order
func (oh *OrderHandler) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		var req cancelOrderRequest
		// body is optional
		_ = json.NewDecoder(r.Body).Decode(&req)
		defer r.Body.Close()

		order, err := oh.escrow.CancelOrderWithRefund(r.Context(), id, req.Reason)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOrderResponse(order))
	}
}

// ProcessEscrow moves the order payment into hold
// 200 — escrowed
// 400 — payment is not PENDING or balance insufficient
func (oh *OrderHandler) ProcessEscrow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		order, err := oh.escrow.ProcessEscrowPayment(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOrderResponse(order))
	}
}

// AcceptOrder lets the restaurant accept a pending order
// 200 — accepted
// 400 — grace period active, window expired or wrong status
// 409 — lost a concurrent update
func (oh *OrderHandler) AcceptOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		order, err := oh.orders.AcceptByRestaurant(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOrderResponse(order))
	}
}

type timeoutCheckResponse struct {
	HasTimedOut bool    `json:"has_timed_out"`
	AgeSeconds  float64 `json:"age_seconds"`
}

// TimeoutCheck reports whether the restaurant acceptance window expired
func (oh *OrderHandler) TimeoutCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		check, err := oh.escrow.CheckRestaurantTimeout(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, timeoutCheckResponse{
			HasTimedOut: check.HasTimedOut,
			AgeSeconds:  check.Age.Seconds(),
		})
	}
}

// TimeoutRefund cancels and refunds a timed-out order
func (oh *OrderHandler) TimeoutRefund() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		order, err := oh.escrow.ProcessTimeoutRefund(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOrderResponse(order))
	}
}

// DeliverOrder releases escrow on delivery completion
// 200 — settled
// 400 — payment is not ESCROWED
// 409 — driver does not hold the order
func (oh *OrderHandler) DeliverOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID, ok := actorID(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		order, err := oh.escrow.ReleaseEscrowOnDelivery(r.Context(), id, driverID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOrderResponse(order))
	}
}
