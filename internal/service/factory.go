package service

import (
	"fmt"

	"github.com/fsdevblog/founderpass/pkg/uow"
	"github.com/sirupsen/logrus"
)

type AppServices struct {
	OrderService   *OrderService
	PaymentService *PaymentService
	ProfileService *ProfileService
}

type FactoryArgs struct {
	UOW uow.UOW
	// Gateway nil, если ключи шлюза не сконфигурированы.
	Gateway GatewayClient
	// GatewaySecret ключ подписи колбеков чекаута.
	GatewaySecret string
	Currency      string
	Logger        *logrus.Logger
}

func Factory(args FactoryArgs) (*AppServices, error) {
	orderService, orderServiceErr := NewOrderService(args.UOW, args.Gateway, args.Currency)
	if orderServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderServiceErr.Error())
	}

	paymentService, paymentServiceErr := NewPaymentService(args.UOW, args.GatewaySecret, args.Logger)
	if paymentServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", paymentServiceErr.Error())
	}

	profileService, profileServiceErr := NewProfileService(args.UOW)
	if profileServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", profileServiceErr.Error())
	}

	return &AppServices{
		OrderService:   orderService,
		PaymentService: paymentService,
		ProfileService: profileService,
	}, nil
}
