package domain

type OrderStatusType string

const (
	OrderStatusCreated   OrderStatusType = "created"
	OrderStatusPaid      OrderStatusType = "paid"
	OrderStatusFailed    OrderStatusType = "failed"
	OrderStatusRefunded  OrderStatusType = "refunded"
	OrderStatusCancelled OrderStatusType = "cancelled"
)

// Payable сообщает, может ли заказ в текущем статусе перейти в OrderStatusPaid.
// Успешный путь строго created -> paid, все остальные статусы терминальны.
func (s OrderStatusType) Payable() bool {
	return s == OrderStatusCreated
}

type PaymentStatusType string

const (
	PaymentStatusPending  PaymentStatusType = "pending"
	PaymentStatusSuccess  PaymentStatusType = "success"
	PaymentStatusFailure  PaymentStatusType = "failure"
	PaymentStatusRefunded PaymentStatusType = "refunded"
)

type WaitlistStatusType string

const (
	WaitlistStatusPending  WaitlistStatusType = "pending"
	WaitlistStatusApproved WaitlistStatusType = "approved"
	WaitlistStatusRejected WaitlistStatusType = "rejected"
)
