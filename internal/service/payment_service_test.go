package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/fsdevblog/founderpass/internal/domain"
	"github.com/fsdevblog/founderpass/internal/logger"
	"github.com/fsdevblog/founderpass/internal/repository/repoargs"
	"github.com/fsdevblog/founderpass/internal/service/mocks"
	"github.com/fsdevblog/founderpass/pkg/uow"
	uowmocks "github.com/fsdevblog/founderpass/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

const testGatewaySecret = "rzp_test_secret_key"

type PaymentServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockUOW         *uowmocks.MockUOW
	mockTX          *uowmocks.MockTX
	mockOrderRepo   *mocks.MockOrderRepository
	mockPaymentRepo *mocks.MockPaymentRepository
	mockProfileRepo *mocks.MockProfileRepository
	paymentService  *PaymentService

	userID           string
	gatewayOrderID   string
	gatewayPaymentID string
	signature        string
	createdOrder     *domain.Order
	paidOrder        *domain.Order
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockOrderRepo = mocks.NewMockOrderRepository(s.mockCtrl)
	s.mockPaymentRepo = mocks.NewMockPaymentRepository(s.mockCtrl)
	s.mockProfileRepo = mocks.NewMockProfileRepository(s.mockCtrl)

	// Мок получения репозитория профилей из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.ProfileRepoName)).
		Return(s.mockProfileRepo, nil).AnyTimes()

	paymentService, servErr := NewPaymentService(s.mockUOW, testGatewaySecret, logger.New(io.Discard))
	s.Require().NoError(servErr)
	s.paymentService = paymentService

	s.userID = "7e2a4f4e-8c67-4f0f-9a9c-0b8f6f9a1d33"
	s.gatewayOrderID = "order_N8x2LqYpVQ4zhB"
	s.gatewayPaymentID = "pay_N8x3RsTuWX5yhC"
	s.signature = signPayload(s.gatewayOrderID, s.gatewayPaymentID, testGatewaySecret)

	s.createdOrder = &domain.Order{
		ID:             1,
		UserID:         s.userID,
		GatewayOrderID: s.gatewayOrderID,
		Amount:         1000,
		Currency:       "INR",
		Status:         domain.OrderStatusCreated,
	}
	paid := *s.createdOrder
	paid.Status = domain.OrderStatusPaid
	s.paidOrder = &paid
}

func (s *PaymentServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// expectTx прогоняет колбек uow.Do на мок транзакции с обоими репозиториями.
func (s *PaymentServiceTestSuite) expectTx() {
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil)
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.PaymentRepoName)).
		Return(s.mockPaymentRepo, nil)
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})
}

func (s *PaymentServiceTestSuite) verifyArgs() VerifyPaymentArgs {
	return VerifyPaymentArgs{
		GatewayOrderID:   s.gatewayOrderID,
		GatewayPaymentID: s.gatewayPaymentID,
		Signature:        s.signature,
	}
}

func (s *PaymentServiceTestSuite) TestVerifySuccess() {
	s.expectTx()

	s.mockOrderRepo.EXPECT().
		FindByGatewayOrderID(gomock.Any(), s.gatewayOrderID).
		Return(s.createdOrder, nil)

	s.mockOrderRepo.EXPECT().
		MarkPaid(gomock.Any(), s.gatewayOrderID).
		Return(s.paidOrder, nil)

	createdPayment := &domain.Payment{
		ID:               10,
		OrderID:          s.paidOrder.ID,
		UserID:           s.userID,
		GatewayOrderID:   s.gatewayOrderID,
		GatewayPaymentID: s.gatewayPaymentID,
		Signature:        s.signature,
		Status:           domain.PaymentStatusSuccess,
		Amount:           s.paidOrder.Amount,
		PaymentMethod:    "razorpay",
	}

	s.mockPaymentRepo.EXPECT().
		Create(gomock.Any(), repoargs.CreatePayment{
			OrderID:          s.paidOrder.ID,
			UserID:           s.userID,
			GatewayOrderID:   s.gatewayOrderID,
			GatewayPaymentID: s.gatewayPaymentID,
			Signature:        s.signature,
			Status:           domain.PaymentStatusSuccess,
			Amount:           s.paidOrder.Amount,
			PaymentMethod:    "razorpay",
		}).
		Return(createdPayment, nil)

	s.mockProfileRepo.EXPECT().
		GrantBetaAccess(gomock.Any(), s.userID, gomock.AssignableToTypeOf(time.Time{})).
		Return(nil)

	result, err := s.paymentService.Verify(s.T().Context(), s.verifyArgs())

	s.Require().NoError(err)
	s.Equal(createdPayment, result.Payment)
	s.False(result.Replayed)
	s.False(result.EntitlementDeferred)
}

// TestVerifyBadSignature несовпавшая подпись не трогает ни одну запись:
// ни один мок, кроме самой проверки, не настроен.
func (s *PaymentServiceTestSuite) TestVerifyBadSignature() {
	args := s.verifyArgs()
	args.Signature = signPayload(s.gatewayOrderID, s.gatewayPaymentID, "wrong-secret")

	result, err := s.paymentService.Verify(s.T().Context(), args)

	s.Require().ErrorIs(err, domain.ErrSignatureMismatch)
	s.Nil(result)
}

func (s *PaymentServiceTestSuite) TestVerifyOrderNotFound() {
	s.expectTx()

	s.mockOrderRepo.EXPECT().
		FindByGatewayOrderID(gomock.Any(), s.gatewayOrderID).
		Return(nil, domain.ErrRecordNotFound)

	result, err := s.paymentService.Verify(s.T().Context(), s.verifyArgs())

	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
	s.Nil(result)
}

// TestVerifyReplayAlreadyPaid повторный колбек по уже оплаченному заказу -
// идемпотентный успех с уже существующей записью платежа, без перегранта доступа.
func (s *PaymentServiceTestSuite) TestVerifyReplayAlreadyPaid() {
	s.expectTx()

	existingPayment := &domain.Payment{
		ID:               10,
		GatewayPaymentID: s.gatewayPaymentID,
		Status:           domain.PaymentStatusSuccess,
	}

	s.mockOrderRepo.EXPECT().
		FindByGatewayOrderID(gomock.Any(), s.gatewayOrderID).
		Return(s.paidOrder, nil)

	s.mockPaymentRepo.EXPECT().
		FindByGatewayPaymentID(gomock.Any(), s.gatewayPaymentID).
		Return(existingPayment, nil)

	result, err := s.paymentService.Verify(s.T().Context(), s.verifyArgs())

	s.Require().NoError(err)
	s.True(result.Replayed)
	s.Equal(existingPayment, result.Payment)
}

// TestVerifyReplayDuplicatePayment гонка на вставке: уникальный ключ по id
// платежа сработал, проигравший уходит в путь повтора, не в ошибку.
func (s *PaymentServiceTestSuite) TestVerifyReplayDuplicatePayment() {
	s.expectTx()

	existingPayment := &domain.Payment{
		ID:               10,
		GatewayPaymentID: s.gatewayPaymentID,
		Status:           domain.PaymentStatusSuccess,
	}

	s.mockOrderRepo.EXPECT().
		FindByGatewayOrderID(gomock.Any(), s.gatewayOrderID).
		Return(s.createdOrder, nil)

	s.mockOrderRepo.EXPECT().
		MarkPaid(gomock.Any(), s.gatewayOrderID).
		Return(s.paidOrder, nil)

	s.mockPaymentRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrDuplicateKey)

	s.mockPaymentRepo.EXPECT().
		FindByGatewayPaymentID(gomock.Any(), s.gatewayPaymentID).
		Return(existingPayment, nil)

	result, err := s.paymentService.Verify(s.T().Context(), s.verifyArgs())

	s.Require().NoError(err)
	s.True(result.Replayed)
	s.Equal(existingPayment, result.Payment)
}

// TestVerifyRaceLostOnMarkPaid конкурентный колбек успел перевести заказ в paid
// между чтением и условным обновлением.
func (s *PaymentServiceTestSuite) TestVerifyRaceLostOnMarkPaid() {
	s.expectTx()

	existingPayment := &domain.Payment{ID: 10, GatewayPaymentID: s.gatewayPaymentID}

	s.mockOrderRepo.EXPECT().
		FindByGatewayOrderID(gomock.Any(), s.gatewayOrderID).
		Return(s.createdOrder, nil)

	s.mockOrderRepo.EXPECT().
		MarkPaid(gomock.Any(), s.gatewayOrderID).
		Return(nil, domain.ErrRecordNotFound)

	s.mockPaymentRepo.EXPECT().
		FindByGatewayPaymentID(gomock.Any(), s.gatewayPaymentID).
		Return(existingPayment, nil)

	result, err := s.paymentService.Verify(s.T().Context(), s.verifyArgs())

	s.Require().NoError(err)
	s.True(result.Replayed)
}

func (s *PaymentServiceTestSuite) TestVerifyTerminalOrderStatus() {
	s.expectTx()

	cancelledOrder := *s.createdOrder
	cancelledOrder.Status = domain.OrderStatusCancelled

	s.mockOrderRepo.EXPECT().
		FindByGatewayOrderID(gomock.Any(), s.gatewayOrderID).
		Return(&cancelledOrder, nil)

	result, err := s.paymentService.Verify(s.T().Context(), s.verifyArgs())

	s.Require().ErrorIs(err, domain.ErrOrderNotPayable)
	s.Nil(result)
}

// TestVerifyEntitlementDeferred платеж записан, грант упал: это успех с пометкой
// на ручную сверку, а не откат платежа.
func (s *PaymentServiceTestSuite) TestVerifyEntitlementDeferred() {
	s.expectTx()

	s.mockOrderRepo.EXPECT().
		FindByGatewayOrderID(gomock.Any(), s.gatewayOrderID).
		Return(s.createdOrder, nil)

	s.mockOrderRepo.EXPECT().
		MarkPaid(gomock.Any(), s.gatewayOrderID).
		Return(s.paidOrder, nil)

	s.mockPaymentRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(&domain.Payment{ID: 10, GatewayPaymentID: s.gatewayPaymentID}, nil)

	s.mockProfileRepo.EXPECT().
		GrantBetaAccess(gomock.Any(), s.userID, gomock.Any()).
		Return(domain.ErrUnknown)

	result, err := s.paymentService.Verify(s.T().Context(), s.verifyArgs())

	s.Require().NoError(err)
	s.False(result.Replayed)
	s.True(result.EntitlementDeferred)
	s.NotNil(result.Payment)
}

// TestVerifyPaymentInsertFailure не дубликат, а настоящий сбой вставки: факт
// платежа не сохранен, поэтому это ошибка, не успех.
func (s *PaymentServiceTestSuite) TestVerifyPaymentInsertFailure() {
	s.expectTx()

	s.mockOrderRepo.EXPECT().
		FindByGatewayOrderID(gomock.Any(), s.gatewayOrderID).
		Return(s.createdOrder, nil)

	s.mockOrderRepo.EXPECT().
		MarkPaid(gomock.Any(), s.gatewayOrderID).
		Return(s.paidOrder, nil)

	s.mockPaymentRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrUnknown)

	result, err := s.paymentService.Verify(s.T().Context(), s.verifyArgs())

	s.Require().ErrorIs(err, domain.ErrUnknown)
	s.Nil(result)
}
