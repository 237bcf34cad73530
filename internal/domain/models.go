package domain

import (
	"time"
)

// Profile зеркалит запись профиля внешней системы идентификации (одна запись на
// аутентифицированного юзера). Поля BetaAccess и BoughtAt мутируются исключительно
// сервисом верификации платежей, никогда напрямую из клиентского ввода.
type Profile struct {
	ID             string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Email          string
	WaitlistStatus WaitlistStatusType
	BetaAccess     bool
	BoughtAt       *time.Time
}

type Order struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    string
	// GatewayOrderID идентификатор заказа на стороне платежного шлюза. Уникален и неизменен.
	GatewayOrderID string
	// Amount хранится в минимальных единицах валюты (пайсы).
	Amount   int64
	Currency string
	Status   OrderStatusType
}

// Payment запись о проверенном платеже. Создается единожды, после - неизменна.
type Payment struct {
	ID               int64
	CreatedAt        time.Time
	OrderID          int64
	UserID           string
	GatewayOrderID   string
	GatewayPaymentID string
	// Signature сохраняем для аудита.
	Signature     string
	Status        PaymentStatusType
	Amount        int64
	PaymentMethod string
}
