package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/founderpass/internal/domain"
	"github.com/fsdevblog/founderpass/internal/service"
)

type OrderServicer interface {
	Create(ctx context.Context, userID string, amount decimal.Decimal) (*service.CheckoutOrder, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Order, error)
}

type PaymentServicer interface {
	Verify(ctx context.Context, args service.VerifyPaymentArgs) (*service.VerificationResult, error)
}

type ProfileServicer interface {
	GetByID(ctx context.Context, userID string) (*domain.Profile, error)
}
