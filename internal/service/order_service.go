package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/founderpass/internal/domain"
	"github.com/fsdevblog/founderpass/internal/repository/repoargs"
	"github.com/fsdevblog/founderpass/internal/transport/razorpay"
	"github.com/fsdevblog/founderpass/pkg/uow"
	"github.com/shopspring/decimal"
)

// ErrGatewayNotConfigured ключи шлюза не заданы. Ошибка конфигурации возвращается
// до любого сетевого вызова.
var ErrGatewayNotConfigured = errors.New("payment gateway is not configured")

const minorUnitsPerMajor = 100

// CheckoutOrder то, что нужно клиенту чтобы открыть hosted checkout шлюза.
type CheckoutOrder struct {
	GatewayOrderID string
	// Amount в минимальных единицах валюты.
	Amount   int64
	Currency string
}

type OrderService struct {
	orderRepo OrderRepository
	gateway   GatewayClient
	currency  string
}

// NewOrderService собирает сервис создания заказов. gateway может быть nil при
// отсутствии ключей шлюза - тогда Create вернет ErrGatewayNotConfigured.
func NewOrderService(u uow.UOW, gateway GatewayClient, currency string) (*OrderService, error) {
	orderRepo, err := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &OrderService{
		orderRepo: orderRepo,
		gateway:   gateway,
		currency:  currency,
	}, nil
}

// Create создает заказ на шлюзе и локальную запись в статусе created.
//
// Алгоритм работы:
//  1. Сумма в мажорных единицах конвертируется в минимальные: умножение на 100 и
//     округление до ближайшего целого. Никогда не усекаем - потеря копейки
//     молча недопустима (10.005 -> 1001).
//  2. Формируется уникальный ресипт из таймстемпа и id юзера. Коллизию отклонит
//     сам шлюз, его ошибка всплывет наружу.
//  3. Заказ создается на шлюзе, затем сохраняется локально.
//
// Если удаленный заказ создан, а локальная вставка упала, остается осиротевший
// заказ на шлюзе без локальной записи. Это принятая несогласованность: сам по
// себе заказ шлюза никаких прав не дает.
func (o *OrderService) Create(
	ctx context.Context,
	userID string,
	amount decimal.Decimal,
) (*CheckoutOrder, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if o.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}

	minorAmount := amount.Mul(decimal.NewFromInt(minorUnitsPerMajor)).Round(0).IntPart()
	receipt := fmt.Sprintf("order_%d_%s", time.Now().UnixMilli(), userID)

	gwOrder, gwErr := o.gateway.CreateOrder(ctx, razorpay.CreateOrderArgs{
		Amount:   minorAmount,
		Currency: o.currency,
		Receipt:  receipt,
	})
	if gwErr != nil {
		return nil, fmt.Errorf("creating gateway order: %w", gwErr)
	}

	if _, createErr := o.orderRepo.CreateOrder(ctx, repoargs.CreateOrder{
		UserID:         userID,
		GatewayOrderID: gwOrder.ID,
		Amount:         minorAmount,
		Currency:       o.currency,
		Status:         domain.OrderStatusCreated,
	}); createErr != nil {
		// Ошибка хранилища, не шлюза: разводим их формулировками для логов.
		return nil, fmt.Errorf("persisting order: %w", createErr)
	}

	return &CheckoutOrder{
		GatewayOrderID: gwOrder.ID,
		Amount:         minorAmount,
		Currency:       o.currency,
	}, nil
}

// GetByUserID возвращает заказы юзера, отсортированные по дате создания по убыванию.
func (o *OrderService) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := o.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}
