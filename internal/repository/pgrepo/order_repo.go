package pgrepo

import (
	"context"

	"github.com/fsdevblog/founderpass/internal/domain"
	"github.com/fsdevblog/founderpass/internal/repository/repoargs"
	"github.com/fsdevblog/founderpass/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, created_at, updated_at, user_id, razorpay_order_id, amount, currency, status`

type OrderRepository struct {
	db uow.DBTX
}

func NewOrderRepository(db uow.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func (o *OrderRepository) CreateOrder(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	row := o.db.QueryRow(ctx, `
		INSERT INTO orders (user_id, razorpay_order_id, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+orderColumns,
		args.UserID, args.GatewayOrderID, args.Amount, args.Currency, args.Status,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating order for gateway order `%s`", args.GatewayOrderID)
	}
	return order, nil
}

func (o *OrderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Order, error) {
	row := o.db.QueryRow(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE razorpay_order_id = $1`,
		gatewayOrderID,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "finding order by gateway order `%s`", gatewayOrderID)
	}
	return order, nil
}

// MarkPaid переводит заказ в статус paid. Условие `status = 'created'` служит
// оптимистичной проверкой конкурентности: при гонке или повторном колбеке
// обновится ноль строк и вернется domain.ErrRecordNotFound, вызывающий сам
// решает, повтор это или чужой заказ.
func (o *OrderRepository) MarkPaid(ctx context.Context, gatewayOrderID string) (*domain.Order, error) {
	row := o.db.QueryRow(ctx, `
		UPDATE orders
		SET status = $1, updated_at = now()
		WHERE razorpay_order_id = $2 AND status = $3
		RETURNING `+orderColumns,
		domain.OrderStatusPaid, gatewayOrderID, domain.OrderStatusCreated,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "marking order `%s` as paid", gatewayOrderID)
	}
	return order, nil
}

// GetByUserID возвращает заказы юзера, отсортированные по дате создания по убыванию.
func (o *OrderRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := o.db.Query(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, convertErr(err, "getting orders by userID `%s`", userID)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning order for userID `%s`", userID)
		}
		orders = append(orders, *order)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "iterating orders for userID `%s`", userID)
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	if err := row.Scan(
		&order.ID,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.UserID,
		&order.GatewayOrderID,
		&order.Amount,
		&order.Currency,
		&order.Status,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &order, nil
}
