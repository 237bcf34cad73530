package service

import (
	"context"
	"time"

	"github.com/fsdevblog/founderpass/internal/domain"
	"github.com/fsdevblog/founderpass/internal/repository/repoargs"
	"github.com/fsdevblog/founderpass/internal/transport/razorpay"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type OrderRepository interface {
	CreateOrder(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Order, error)
	MarkPaid(ctx context.Context, gatewayOrderID string) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Order, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, args repoargs.CreatePayment) (*domain.Payment, error)
	FindByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*domain.Payment, error)
}

type ProfileRepository interface {
	FindByID(ctx context.Context, userID string) (*domain.Profile, error)
	GrantBetaAccess(ctx context.Context, userID string, boughtAt time.Time) error
}

type GatewayClient interface {
	CreateOrder(ctx context.Context, args razorpay.CreateOrderArgs) (*razorpay.Order, error)
}
