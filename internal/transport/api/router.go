package api

import (
	"time"

	"github.com/fsdevblog/founderpass/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup           = "/api"
	OrderRoute           = "/order"
	VerifyPaymentRoute   = "/verify-payment"
	UserOrdersRoute      = "/user/orders"
	UserEntitlementRoute = "/user/entitlement"
)

type RouterArgs struct {
	Logger         *logrus.Logger
	OrderService   OrderServicer
	PaymentService PaymentServicer
	ProfileService ProfileServicer
	// Currency валюта продукта, единственная принимаемая в запросах.
	Currency     string
	JWTSecretKey []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	ordersHandler := NewOrdersHandler(args.OrderService, args.Currency)
	paymentsHandler := NewPaymentsHandler(args.PaymentService)
	profileHandler := NewProfileHandler(args.ProfileService)

	api := r.Group(RouteGroup)

	// колбек чекаута приходит от клиента шлюза без нашей сессии.
	api.POST(VerifyPaymentRoute, paymentsHandler.Verify)

	authed := api.Group("", middlewares.AuthRequired(args.JWTSecretKey))
	authed.POST(OrderRoute, ordersHandler.Create)
	authed.GET(UserOrdersRoute, ordersHandler.Index)
	authed.GET(UserEntitlementRoute, profileHandler.Entitlement)

	return r
}

func getUserIDFromContext(c *gin.Context) string {
	return c.GetString(middlewares.CurrentUserIDKey)
}
