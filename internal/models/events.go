package models

// notification event types
const (
	EventOrderPlaced        = "order.placed"
	EventOrderEscrowed      = "order.escrowed"
	EventOrderAccepted      = "order.accepted"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderCancelled     = "order.cancelled"
	EventOrderDelivered     = "order.delivered"
	EventAssignmentOffered  = "assignment.offered"
	EventAssignmentAccepted = "assignment.accepted"
	EventWalletTxRequested  = "wallet.transaction_requested"
	EventWalletTxProcessed  = "wallet.transaction_processed"
)

// OrderEvent is the payload published after an order transition
type OrderEvent struct {
	OrderID       string `json:"order_id"`
	CustomerID    string `json:"customer_id"`
	RestaurantID  string `json:"restaurant_id"`
	DriverID      string `json:"driver_id,omitempty"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	Reason        string `json:"reason,omitempty"`
}

// AssignmentEvent is the payload published after an offer or acceptance
type AssignmentEvent struct {
	AssignmentID string `json:"assignment_id"`
	OrderID      string `json:"order_id"`
	DriverID     string `json:"driver_id"`
	Status       string `json:"status"`
	Wave         int    `json:"wave"`
}

// WalletEvent is the payload published after a ledger mutation or request
type WalletEvent struct {
	TransactionID string `json:"transaction_id"`
	OwnerID       string `json:"owner_id"`
	OwnerKind     string `json:"owner_kind"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Amount        string `json:"amount"`
}
