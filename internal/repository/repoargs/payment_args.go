package repoargs

import "github.com/fsdevblog/founderpass/internal/domain"

type CreatePayment struct {
	OrderID          int64
	UserID           string
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	Status           domain.PaymentStatusType
	Amount           int64
	PaymentMethod    string
}
