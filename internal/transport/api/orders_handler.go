package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/founderpass/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type OrdersHandler struct {
	orderSvs OrderServicer
	currency string
}

func NewOrdersHandler(orderSvs OrderServicer, currency string) *OrdersHandler {
	return &OrdersHandler{
		orderSvs: orderSvs,
		currency: currency,
	}
}

type CreateOrderRequest struct {
	// Amount сумма в мажорных единицах, строкой: JSON числа с плавающей точкой
	// для денег не годятся.
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
	// Amount в минимальных единицах валюты.
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type OrderResponse struct {
	CreatedAt time.Time              `json:"created_at"`
	OrderID   string                 `json:"orderId"`
	Amount    int64                  `json:"amount"`
	Currency  string                 `json:"currency"`
	Status    domain.OrderStatusType `json:"status"`
}

// Create POST RouteGroup + OrderRoute.
func (o *OrdersHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var req CreateOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(bindErr)})
		return
	}

	amount, amountErr := decimal.NewFromString(req.Amount)
	if amountErr != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	// Продукт один, валюта одна: всё прочее отклоняем до похода на шлюз.
	if req.Currency != o.currency {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unsupported currency"})
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, createErr := o.orderSvs.Create(reqCtx, currentUserID, amount)
	if createErr != nil {
		if errors.Is(createErr, domain.ErrInvalidAmount) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidAmount.Error()})
			return
		}
		// конфигурация, шлюз, хранилище: детали в лог, клиенту обезличенный 500.
		_ = c.AbortWithError(http.StatusInternalServerError, createErr).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, CreateOrderResponse{
		OrderID:  order.GatewayOrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
	})
}

// Index GET RouteGroup + UserOrdersRoute.
func (o *OrdersHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	orders, err := o.orderSvs.GetByUserID(reqCtx, currentUserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}

	if len(orders) == 0 {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	var response = make([]OrderResponse, len(orders))
	for i, order := range orders {
		response[i] = OrderResponse{
			CreatedAt: order.CreatedAt,
			OrderID:   order.GatewayOrderID,
			Amount:    order.Amount,
			Currency:  order.Currency,
			Status:    order.Status,
		}
	}

	c.JSON(http.StatusOK, response)
}
