package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/fsdevblog/founderpass/internal/config"
	"github.com/fsdevblog/founderpass/internal/repository/pgrepo"
	"github.com/fsdevblog/founderpass/internal/repository/repoargs"
	"github.com/fsdevblog/founderpass/internal/service"
	"github.com/fsdevblog/founderpass/internal/transport/api"
	"github.com/fsdevblog/founderpass/internal/transport/razorpay"
	"github.com/fsdevblog/founderpass/pkg/uow"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app on %s", a.Config.RunAddress)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return errors.Wrap(connErr, "app run")
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return errors.Wrap(uowErr, "app run")
	}

	gateway := a.initGateway()

	services, sErr := service.Factory(service.FactoryArgs{
		UOW:           unitOfWork,
		Gateway:       gateway,
		GatewaySecret: a.Config.RazorpayKeySecret,
		Currency:      a.Config.Currency,
		Logger:        a.Logger,
	})
	if sErr != nil {
		return errors.Wrap(sErr, "app run")
	}

	router := api.New(api.RouterArgs{
		Logger:         a.Logger,
		OrderService:   services.OrderService,
		PaymentService: services.PaymentService,
		ProfileService: services.ProfileService,
		Currency:       a.Config.Currency,
		JWTSecretKey:   []byte(a.Config.AuthJWTSecret),
	})

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

// initGateway собирает клиент шлюза. Без ключей приложение не падает: ручка
// создания заказа вернет ошибку конфигурации, остальное продолжит работать.
func (a *App) initGateway() service.GatewayClient {
	gateway, gwErr := razorpay.New(a.Config.RazorpayKeyID, a.Config.RazorpayKeySecret)
	if gwErr != nil {
		a.Logger.WithError(gwErr).Warn("payment gateway client is not configured, order creation will be unavailable")
		return nil
	}
	return gateway
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	// order repo
	orderRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewOrderRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.OrderRepoName), orderRepoFactoryFn); regErr != nil {
		return nil, errors.Wrap(regErr, "init UOW")
	}

	// payment repo
	paymentRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewPaymentRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.PaymentRepoName), paymentRepoFactoryFn); regErr != nil {
		return nil, errors.Wrap(regErr, "init UOW")
	}

	// profile repo
	profileRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewProfileRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.ProfileRepoName), profileRepoFactoryFn); regErr != nil {
		return nil, errors.Wrap(regErr, "init UOW")
	}

	return unitOfWork, nil
}
