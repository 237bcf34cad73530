package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	// ErrSignatureMismatch подпись колбека не совпала с вычисленной. Ожидаемый исход,
	// а не сбой: никакие мутации после него не выполняются.
	ErrSignatureMismatch = errors.New("signature verification failed")

	// ErrOrderNotPayable заказ находится в терминальном статусе (failed/cancelled/refunded)
	// и не может перейти в paid.
	ErrOrderNotPayable = errors.New("order is not payable")

	ErrInvalidAmount = errors.New("amount must be positive")
)

// OrderNotPayableError уточняет ErrOrderNotPayable текущим статусом заказа.
type OrderNotPayableError struct {
	GatewayOrderID string
	Status         OrderStatusType
}

func NewOrderNotPayableError(gatewayOrderID string, status OrderStatusType) error {
	return &OrderNotPayableError{GatewayOrderID: gatewayOrderID, Status: status}
}

func (e *OrderNotPayableError) Error() string {
	return fmt.Sprintf("order %s has terminal status %s", e.GatewayOrderID, e.Status)
}

func (e *OrderNotPayableError) Unwrap() error {
	return ErrOrderNotPayable
}
