package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/founderpass/internal/domain"
	"github.com/fsdevblog/founderpass/internal/service"
	"github.com/gin-gonic/gin"
)

type PaymentsHandler struct {
	paymentSvs PaymentServicer
}

func NewPaymentsHandler(paymentSvs PaymentServicer) *PaymentsHandler {
	return &PaymentsHandler{
		paymentSvs: paymentSvs,
	}
}

// VerifyPaymentRequest пейлоад колбека hosted checkout. Имена полей фиксирует шлюз.
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

type PaymentResponse struct {
	ID               int64                    `json:"id"`
	OrderID          int64                    `json:"order_id"`
	UserID           string                   `json:"user_id"`
	GatewayOrderID   string                   `json:"razorpay_order_id"`
	GatewayPaymentID string                   `json:"razorpay_payment_id"`
	Status           domain.PaymentStatusType `json:"status"`
	Amount           int64                    `json:"amount"`
	PaymentMethod    string                   `json:"payment_method"`
	CreatedAt        time.Time                `json:"created_at"`
}

// VerifyPaymentResponse единая форма ответа ручки: и успех, и отказ.
type VerifyPaymentResponse struct {
	Success bool             `json:"success"`
	Data    *PaymentResponse `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// Verify POST RouteGroup + VerifyPaymentRoute.
func (p *PaymentsHandler) Verify(c *gin.Context) {
	var req VerifyPaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, VerifyPaymentResponse{
			Success: false,
			Error:   bindingErrorMessage(bindErr),
		})
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, verifyErr := p.paymentSvs.Verify(reqCtx, service.VerifyPaymentArgs{
		GatewayOrderID:   req.OrderID,
		GatewayPaymentID: req.PaymentID,
		Signature:        req.Signature,
	})
	if verifyErr != nil {
		p.renderVerifyError(c, verifyErr)
		return
	}

	payment := result.Payment
	c.JSON(http.StatusOK, VerifyPaymentResponse{
		Success: true,
		Data: &PaymentResponse{
			ID:               payment.ID,
			OrderID:          payment.OrderID,
			UserID:           payment.UserID,
			GatewayOrderID:   payment.GatewayOrderID,
			GatewayPaymentID: payment.GatewayPaymentID,
			Status:           payment.Status,
			Amount:           payment.Amount,
			PaymentMethod:    payment.PaymentMethod,
			CreatedAt:        payment.CreatedAt,
		},
	})
}

// renderVerifyError ожидаемые отказы (подпись, неизвестный или терминальный заказ)
// отдаем как 400 с конкретной причиной, всё прочее - обезличенный 500 плюс
// приватная ошибка в лог.
func (p *PaymentsHandler) renderVerifyError(c *gin.Context, verifyErr error) {
	switch {
	case errors.Is(verifyErr, domain.ErrSignatureMismatch):
		c.AbortWithStatusJSON(http.StatusBadRequest, VerifyPaymentResponse{
			Success: false,
			Error:   domain.ErrSignatureMismatch.Error(),
		})
	case errors.Is(verifyErr, domain.ErrRecordNotFound):
		c.AbortWithStatusJSON(http.StatusBadRequest, VerifyPaymentResponse{
			Success: false,
			Error:   "order not found",
		})
	case errors.Is(verifyErr, domain.ErrOrderNotPayable):
		c.AbortWithStatusJSON(http.StatusBadRequest, VerifyPaymentResponse{
			Success: false,
			Error:   domain.ErrOrderNotPayable.Error(),
		})
	default:
		_ = c.Error(verifyErr).SetType(gin.ErrorTypePrivate)
		c.AbortWithStatusJSON(http.StatusInternalServerError, VerifyPaymentResponse{
			Success: false,
			Error:   "internal server error during payment verification",
		})
	}
}
