package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/foodmart/internal/handler/http/mocks"
	"github.com/example/foodmart/internal/middleware"
	"github.com/example/foodmart/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withRouteID builds a request context carrying the {id} route param
// and, optionally, the verified token payload.
func withRouteID(req *http.Request, id uuid.UUID, token *models.TokenPayload) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id.String())

	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if token != nil {
		ctx = middleware.WithAuthPayload(ctx, token)
	}
	return req.WithContext(ctx)
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	customerID := uuid.New()
	restaurantID := uuid.New()

	tests := []struct {
		name           string
		token          *models.TokenPayload
		body           string
		setup          func(t *testing.T) *mocks.MockOrderService
		wantStatusCode int
	}{
		{
			// 201 — order created
			name:  "valid_request_return_201",
			token: &models.TokenPayload{UserID: customerID, Role: models.RoleCustomer},
			body:  `{"restaurant_id":"` + restaurantID.String() + `","items_subtotal":"210.00","delivery_fee":"40.00","payment_method":"WALLET"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).Return(&models.Order{
					ID:            uuid.New(),
					CustomerID:    customerID,
					RestaurantID:  restaurantID,
					Status:        models.OrderStatusPending,
					PaymentStatus: models.PaymentStatusPending,
					PaymentMethod: models.PaymentMethodWallet,
					ItemsSubtotal: decimal.RequireFromString("210.00"),
					DeliveryFee:   decimal.RequireFromString("40.00"),
					TotalPrice:    decimal.RequireFromString("250.00"),
					CreatedAt:     time.Now(),
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			// 400 — malformed body
			name:  "malformed_body_return_400",
			token: &models.TokenPayload{UserID: customerID, Role: models.RoleCustomer},
			body:  `{"restaurant_id":`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 400 — negative amount rejected by the service
			name:  "negative_amount_return_400",
			token: &models.TokenPayload{UserID: customerID, Role: models.RoleCustomer},
			body:  `{"restaurant_id":"` + restaurantID.String() + `","items_subtotal":"-5.00","delivery_fee":"40.00","payment_method":"WALLET"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).Return(nil, models.ErrInvalidAmount).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 401 — no token in context
			name: "unauthorized_request_return_401",
			body: `{"restaurant_id":"` + restaurantID.String() + `","items_subtotal":"210.00","delivery_fee":"40.00","payment_method":"WALLET"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			// 500 — internal error
			name:  "internal_error_return_500",
			token: &models.TokenPayload{UserID: customerID, Role: models.RoleCustomer},
			body:  `{"restaurant_id":"` + restaurantID.String() + `","items_subtotal":"210.00","delivery_fee":"40.00","payment_method":"WALLET"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).Return(nil, models.ErrInternalError).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tt.body))
			require.NoError(t, err)

			ctx := req.Context()
			if tt.token != nil {
				ctx = middleware.WithAuthPayload(ctx, tt.token)
			}

			w := httptest.NewRecorder()
			handler := NewOrderHandler(tt.setup(t), nil)
			h := handler.CreateOrder()
			h(w, req.WithContext(ctx))

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestOrderHandler_CanCancel(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name           string
		setup          func(t *testing.T) *mocks.MockEscrowService
		wantStatusCode int
		wantBody       *canCancelResponse
	}{
		{
			name: "free_window_return_200",
			setup: func(t *testing.T) *mocks.MockEscrowService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockEscrowService(ctrl)
				svcMock.EXPECT().CanCancel(gomock.Any(), orderID).Return(models.CancelCheck{
					CanCancel: true,
					Reason:    models.CancelReasonFreeWindow,
					Message:   "order is within the free cancellation window",
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody: &canCancelResponse{
				CanCancel: true,
				Reason:    models.CancelReasonFreeWindow,
				Message:   "order is within the free cancellation window",
			},
		},
		{
			name: "accepted_order_return_200_with_refusal",
			setup: func(t *testing.T) *mocks.MockEscrowService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockEscrowService(ctrl)
				svcMock.EXPECT().CanCancel(gomock.Any(), orderID).Return(models.CancelCheck{
					CanCancel: false,
					Reason:    models.CancelReasonAccepted,
					Message:   "restaurant has accepted the order",
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody: &canCancelResponse{
				CanCancel: false,
				Reason:    models.CancelReasonAccepted,
				Message:   "restaurant has accepted the order",
			},
		},
		{
			name: "unknown_order_return_404",
			setup: func(t *testing.T) *mocks.MockEscrowService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockEscrowService(ctrl)
				svcMock.EXPECT().CanCancel(gomock.Any(), orderID).Return(models.CancelCheck{}, models.ErrDataNotFound).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/api/orders/"+orderID.String()+"/can-cancel", nil)
			require.NoError(t, err)
			req = withRouteID(req, orderID, nil)

			w := httptest.NewRecorder()
			handler := NewOrderHandler(nil, tt.setup(t))
			h := handler.CanCancel()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)

			if tt.wantBody != nil {
				resBody, err := io.ReadAll(res.Body)
				require.NoError(t, err)

				var got canCancelResponse
				require.NoError(t, json.Unmarshal(resBody, &got))

				if diff := cmp.Diff(*tt.wantBody, got); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestOrderHandler_CancelOrder(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setup          func(t *testing.T) *mocks.MockEscrowService
		wantStatusCode int
	}{
		{
			// 200 — cancelled with refund
			name: "valid_request_return_200",
			body: `{"reason":"changed my mind"}`,
			setup: func(t *testing.T) *mocks.MockEscrowService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockEscrowService(ctrl)
				svcMock.EXPECT().CancelOrderWithRefund(gomock.Any(), orderID, "changed my mind").Return(&models.Order{
					ID:            orderID,
					Status:        models.OrderStatusCancelled,
					PaymentStatus: models.PaymentStatusRefunded,
					PaymentMethod: models.PaymentMethodWallet,
					CreatedAt:     time.Now(),
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// body is optional
			name: "empty_body_return_200",
			body: "",
			setup: func(t *testing.T) *mocks.MockEscrowService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockEscrowService(ctrl)
				svcMock.EXPECT().CancelOrderWithRefund(gomock.Any(), orderID, "").Return(&models.Order{
					ID:            orderID,
					Status:        models.OrderStatusCancelled,
					PaymentStatus: models.PaymentStatusRefunded,
					PaymentMethod: models.PaymentMethodWallet,
					CreatedAt:     time.Now(),
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// 400 — cancellation not allowed
			name: "rejected_cancellation_return_400",
			body: "",
			setup: func(t *testing.T) *mocks.MockEscrowService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockEscrowService(ctrl)
				svcMock.EXPECT().CancelOrderWithRefund(gomock.Any(), orderID, "").Return(nil, models.ErrCancellationRejected).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 404 — unknown order
			name: "unknown_order_return_404",
			body: "",
			setup: func(t *testing.T) *mocks.MockEscrowService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockEscrowService(ctrl)
				svcMock.EXPECT().CancelOrderWithRefund(gomock.Any(), orderID, "").Return(nil, models.ErrDataNotFound).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/orders/"+orderID.String()+"/cancel", strings.NewReader(tt.body))
			require.NoError(t, err)
			req = withRouteID(req, orderID, nil)

			w := httptest.NewRecorder()
			handler := NewOrderHandler(nil, tt.setup(t))
			h := handler.CancelOrder()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestOrderHandler_ProcessEscrow(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name           string
		setup          func(t *testing.T) *mocks.MockEscrowService
		wantStatusCode int
	}{
		{
			// 200 — payment escrowed
			name: "valid_request_return_200",
			setup: func(t *testing.T) *mocks.MockEscrowService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockEscrowService(ctrl)
				svcMock.EXPECT().ProcessEscrowPayment(gomock.Any(), orderID).Return(&models.Order{
					ID:            orderID,
					Status:        models.OrderStatusPending,
					PaymentStatus: models.PaymentStatusEscrowed,
					PaymentMethod: models.PaymentMethodWallet,
					CreatedAt:     time.Now(),
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// 400 — not in PENDING payment state
			name: "already_escrowed_return_400",
			setup: func(t *testing.T) *mocks.MockEscrowService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockEscrowService(ctrl)
				svcMock.EXPECT().ProcessEscrowPayment(gomock.Any(), orderID).Return(nil, models.ErrInvalidPaymentState).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 400 — wallet balance below the total
			name: "insufficient_balance_return_400",
			setup: func(t *testing.T) *mocks.MockEscrowService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockEscrowService(ctrl)
				svcMock.EXPECT().ProcessEscrowPayment(gomock.Any(), orderID).Return(nil, models.ErrInsufficientBalance).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/orders/"+orderID.String()+"/escrow", nil)
			require.NoError(t, err)
			req = withRouteID(req, orderID, nil)

			w := httptest.NewRecorder()
			handler := NewOrderHandler(nil, tt.setup(t))
			h := handler.ProcessEscrow()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestOrderHandler_AcceptOrder(t *testing.T) {
	orderID := uuid.New()
	now := time.Now()

	tests := []struct {
		name           string
		setup          func(t *testing.T) *mocks.MockOrderService
		wantStatusCode int
	}{
		{
			// 200 — accepted
			name: "valid_request_return_200",
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().AcceptByRestaurant(gomock.Any(), orderID).Return(&models.Order{
					ID:            orderID,
					Status:        models.OrderStatusAccepted,
					PaymentStatus: models.PaymentStatusEscrowed,
					PaymentMethod: models.PaymentMethodWallet,
					CreatedAt:     now.Add(-5 * time.Minute),
					AcceptedAt:    &now,
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// 400 — the customer still owns the free cancellation window
			name: "grace_period_return_400",
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().AcceptByRestaurant(gomock.Any(), orderID).Return(nil, models.ErrGracePeriodActive).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 400 — acceptance window expired
			name: "timeout_return_400",
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().AcceptByRestaurant(gomock.Any(), orderID).Return(nil, models.ErrRestaurantTimeout).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 409 — lost a concurrent update
			name: "conflict_return_409",
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().AcceptByRestaurant(gomock.Any(), orderID).Return(nil, models.ErrConflictData).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/orders/"+orderID.String()+"/accept", nil)
			require.NoError(t, err)
			req = withRouteID(req, orderID, nil)

			w := httptest.NewRecorder()
			handler := NewOrderHandler(tt.setup(t), nil)
			h := handler.AcceptOrder()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestOrderHandler_DeliverOrder(t *testing.T) {
	orderID := uuid.New()
	driverID := uuid.New()
	now := time.Now()

	tests := []struct {
		name           string
		token          *models.TokenPayload
		setup          func(t *testing.T) *mocks.MockEscrowService
		wantStatusCode int
	}{
		{
			// 200 — escrow released, order settled
			name:  "valid_request_return_200",
			token: &models.TokenPayload{UserID: driverID, Role: models.RoleDriver},
			setup: func(t *testing.T) *mocks.MockEscrowService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockEscrowService(ctrl)
				svcMock.EXPECT().ReleaseEscrowOnDelivery(gomock.Any(), orderID, driverID).Return(&models.Order{
					ID:            orderID,
					Status:        models.OrderStatusDelivered,
					PaymentStatus: models.PaymentStatusPaid,
					PaymentMethod: models.PaymentMethodWallet,
					DriverID:      &driverID,
					CreatedAt:     now.Add(-time.Hour),
					DeliveredAt:   &now,
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// 409 — a different driver holds the order
			name:  "wrong_driver_return_409",
			token: &models.TokenPayload{UserID: driverID, Role: models.RoleDriver},
			setup: func(t *testing.T) *mocks.MockEscrowService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockEscrowService(ctrl)
				svcMock.EXPECT().ReleaseEscrowOnDelivery(gomock.Any(), orderID, driverID).Return(nil, models.ErrAssignmentConflict).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			// 401 — no token in context
			name: "unauthorized_request_return_401",
			setup: func(t *testing.T) *mocks.MockEscrowService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockEscrowService(ctrl)
				svcMock.EXPECT().ReleaseEscrowOnDelivery(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/orders/"+orderID.String()+"/deliver", nil)
			require.NoError(t, err)
			req = withRouteID(req, orderID, tt.token)

			w := httptest.NewRecorder()
			handler := NewOrderHandler(nil, tt.setup(t))
			h := handler.DeliverOrder()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}
