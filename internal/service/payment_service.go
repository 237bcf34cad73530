package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/founderpass/internal/domain"
	"github.com/fsdevblog/founderpass/internal/repository/repoargs"
	"github.com/fsdevblog/founderpass/pkg/uow"
	"github.com/sirupsen/logrus"
)

const paymentMethodLabel = "razorpay"

type VerifyPaymentArgs struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// VerificationResult единый результат верификации для сервисного и HTTP слоя.
type VerificationResult struct {
	Payment *domain.Payment
	// Replayed колбек повторный: запись платежа уже существовала, сайд-эффекты
	// не перепрогонялись.
	Replayed bool
	// EntitlementDeferred платеж записан, но грант доступа упал. Деньги и факт
	// платежа сохранены, требуется ручная сверка.
	EntitlementDeferred bool
}

type PaymentService struct {
	uow         uow.UOW
	profileRepo ProfileRepository
	secret      string
	logger      *logrus.Logger
}

func NewPaymentService(u uow.UOW, secret string, l *logrus.Logger) (*PaymentService, error) {
	profileRepo, err := uow.GetRepositoryAs[ProfileRepository](u, uow.RepositoryName(repoargs.ProfileRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &PaymentService{
		uow:         u,
		profileRepo: profileRepo,
		secret:      secret,
		logger:      l,
	}, nil
}

// Verify проверяет колбек чекаута и, при валидной подписи, фиксирует платеж.
//
// Алгоритм работы:
//  1. Проверка подписи. Несовпадение - domain.ErrSignatureMismatch, ни одной
//     мутации после этой точки не происходит.
//  2. В одной транзакции: поиск заказа по id заказа шлюза, перевод
//     created -> paid (условие по статусу служит оптимистичной блокировкой),
//     вставка записи платежа. Уже оплаченный заказ или дубликат id платежа -
//     путь идемпотентного повтора: возвращаем существующую запись, не ошибку.
//  3. После коммита - грант платного доступа профилю. Падение гранта не
//     откатывает платеж: запись о деньгах терять нельзя. Логируем предупреждение
//     для ручной сверки и все равно отвечаем успехом.
func (p *PaymentService) Verify(ctx context.Context, args VerifyPaymentArgs) (*VerificationResult, error) {
	if !VerifyCheckoutSignature(args.GatewayOrderID, args.GatewayPaymentID, args.Signature, p.secret) {
		return nil, domain.ErrSignatureMismatch
	}

	var result VerificationResult
	var order *domain.Order

	txErr := p.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}
		paymentRepo, paymentRepoErr := uow.GetAs[PaymentRepository](tx, uow.RepositoryName(repoargs.PaymentRepoName))
		if paymentRepoErr != nil {
			return paymentRepoErr //nolint:wrapcheck
		}

		found, findErr := orderRepo.FindByGatewayOrderID(c, args.GatewayOrderID)
		if findErr != nil {
			// в том числе ErrRecordNotFound для чужих/битых колбеков.
			return findErr //nolint:wrapcheck
		}
		order = found

		if found.Status == domain.OrderStatusPaid {
			return p.resolveReplay(c, paymentRepo, args.GatewayPaymentID, &result)
		}
		if !found.Status.Payable() {
			return domain.NewOrderNotPayableError(found.GatewayOrderID, found.Status)
		}

		paidOrder, markErr := orderRepo.MarkPaid(c, args.GatewayOrderID)
		if markErr != nil {
			if errors.Is(markErr, domain.ErrRecordNotFound) {
				// Проигрыш гонки: пока читали заказ, конкурентный колбек успел
				// перевести его в paid. Уходим в путь повтора.
				return p.resolveReplay(c, paymentRepo, args.GatewayPaymentID, &result)
			}
			return markErr //nolint:wrapcheck
		}

		payment, payErr := paymentRepo.Create(c, repoargs.CreatePayment{
			OrderID:          paidOrder.ID,
			UserID:           paidOrder.UserID,
			GatewayOrderID:   args.GatewayOrderID,
			GatewayPaymentID: args.GatewayPaymentID,
			Signature:        args.Signature,
			Status:           domain.PaymentStatusSuccess,
			Amount:           paidOrder.Amount,
			PaymentMethod:    paymentMethodLabel,
		})
		if payErr != nil {
			if errors.Is(payErr, domain.ErrDuplicateKey) {
				return p.resolveReplay(c, paymentRepo, args.GatewayPaymentID, &result)
			}
			return payErr //nolint:wrapcheck
		}

		result.Payment = payment
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("verifying payment: %w", txErr)
	}

	if result.Replayed {
		return &result, nil
	}

	if grantErr := p.profileRepo.GrantBetaAccess(ctx, order.UserID, time.Now()); grantErr != nil {
		p.logger.WithError(grantErr).WithFields(logrus.Fields{
			"userID":           order.UserID,
			"gatewayOrderID":   args.GatewayOrderID,
			"gatewayPaymentID": args.GatewayPaymentID,
		}).Warn("payment recorded but entitlement grant failed, manual reconciliation required")
		result.EntitlementDeferred = true
	}

	return &result, nil
}

// resolveReplay закрывает повторный колбек: находит уже существующую запись
// платежа и помечает результат как идемпотентный повтор.
func (p *PaymentService) resolveReplay(
	ctx context.Context,
	paymentRepo PaymentRepository,
	gatewayPaymentID string,
	result *VerificationResult,
) error {
	existing, err := paymentRepo.FindByGatewayPaymentID(ctx, gatewayPaymentID)
	if err != nil {
		return fmt.Errorf("resolving replayed payment `%s`: %w", gatewayPaymentID, err)
	}
	result.Payment = existing
	result.Replayed = true
	return nil
}
