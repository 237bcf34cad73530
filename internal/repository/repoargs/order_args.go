package repoargs

import "github.com/fsdevblog/founderpass/internal/domain"

type CreateOrder struct {
	UserID         string
	GatewayOrderID string
	// Amount в минимальных единицах валюты.
	Amount   int64
	Currency string
	Status   domain.OrderStatusType
}
