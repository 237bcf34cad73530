package pgrepo

import (
	"context"

	"github.com/fsdevblog/founderpass/internal/domain"
	"github.com/fsdevblog/founderpass/internal/repository/repoargs"
	"github.com/fsdevblog/founderpass/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `id, created_at, order_id, user_id, razorpay_order_id, razorpay_payment_id,
	razorpay_signature, status, amount, payment_method`

type PaymentRepository struct {
	db uow.DBTX
}

func NewPaymentRepository(db uow.DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create вставляет запись платежа. Уникальный индекс по razorpay_payment_id
// гарантирует не более одной записи на один успешный чекаут: повторная вставка
// вернет domain.ErrDuplicateKey.
func (p *PaymentRepository) Create(ctx context.Context, args repoargs.CreatePayment) (*domain.Payment, error) {
	row := p.db.QueryRow(ctx, `
		INSERT INTO payments (order_id, user_id, razorpay_order_id, razorpay_payment_id,
			razorpay_signature, status, amount, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+paymentColumns,
		args.OrderID, args.UserID, args.GatewayOrderID, args.GatewayPaymentID,
		args.Signature, args.Status, args.Amount, args.PaymentMethod,
	)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, convertErr(err, "creating payment `%s`", args.GatewayPaymentID)
	}
	return payment, nil
}

func (p *PaymentRepository) FindByGatewayPaymentID(
	ctx context.Context,
	gatewayPaymentID string,
) (*domain.Payment, error) {
	row := p.db.QueryRow(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE razorpay_payment_id = $1`,
		gatewayPaymentID,
	)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, convertErr(err, "finding payment by gateway payment `%s`", gatewayPaymentID)
	}
	return payment, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var payment domain.Payment
	if err := row.Scan(
		&payment.ID,
		&payment.CreatedAt,
		&payment.OrderID,
		&payment.UserID,
		&payment.GatewayOrderID,
		&payment.GatewayPaymentID,
		&payment.Signature,
		&payment.Status,
		&payment.Amount,
		&payment.PaymentMethod,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &payment, nil
}
