package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"

	_ "github.com/maxsonaraujo/pdc-api/docs"
	"github.com/maxsonaraujo/pdc-api/internal/application/catalog"
	"github.com/maxsonaraujo/pdc-api/internal/application/inventory"
	"github.com/maxsonaraujo/pdc-api/internal/application/ordering"
	"github.com/maxsonaraujo/pdc-api/internal/application/purchasing"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
	"github.com/maxsonaraujo/pdc-api/internal/infrastructure/memory"
	"github.com/maxsonaraujo/pdc-api/internal/infrastructure/notify"
	"github.com/maxsonaraujo/pdc-api/internal/infrastructure/postgres"
	httpRouter "github.com/maxsonaraujo/pdc-api/internal/interfaces/http"
	"github.com/maxsonaraujo/pdc-api/pkg/config"
	"github.com/maxsonaraujo/pdc-api/pkg/logger"
)

// backend reúne los TxRunners y repositorios de solo lectura de un store.
type backend struct {
	orders     ordering.TxRunner
	receiving  purchasing.TxRunner
	inventory  inventory.TxRunner
	catalog    catalog.TxRunner
	companies  repository.CompanyRepository
	payments   repository.PaymentMethodRepository
	idempotent repository.IdempotencyRepository
	orderRepo  repository.OrderRepository
	coupons    repository.CouponRepository
	purchases  repository.PurchaseRepository
	supplies   repository.SupplyRepository
	close      func()
}

func postgresBackend(ctx context.Context, cfg config.DBConfig, log *logger.Logger) backend {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("migraciones")
	}
	txRunner := postgres.NewTxRunner(pool)
	return backend{
		orders:     txRunner,
		receiving:  txRunner,
		inventory:  txRunner,
		catalog:    txRunner,
		companies:  postgres.NewCompanyRepository(pool),
		payments:   postgres.NewPaymentMethodRepository(pool),
		idempotent: postgres.NewIdempotencyRepository(pool),
		orderRepo:  postgres.NewOrderRepository(pool),
		coupons:    postgres.NewCouponRepository(pool),
		purchases:  postgres.NewPurchaseRepository(pool),
		supplies:   postgres.NewSupplyRepository(pool),
		close:      pool.Close,
	}
}

func memoryBackend() backend {
	st := memory.New()
	return backend{
		orders:     st,
		receiving:  st,
		inventory:  st,
		catalog:    st,
		companies:  st.Companies(),
		payments:   st.PaymentMethods(),
		idempotent: st.Idempotency(),
		orderRepo:  st.Orders(),
		coupons:    st.Coupons(),
		purchases:  st.Purchases(),
		supplies:   st.Supplies(),
		close:      func() {},
	}
}

// @title        PDC API
// @version      1.0
// @description  Núcleo multi-empresa de restaurante: pedidos, cupones, compras e insumos.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var b backend
	if cfg.App.Store == config.StoreMemory {
		log.Warn().Msg("APP_STORE=memory: los datos no se persisten")
		b = memoryBackend()
	} else {
		b = postgresBackend(ctx, cfg.DB, log)
	}
	defer b.close()

	tolerance, err := decimal.NewFromString(cfg.Orders.Tolerance)
	if err != nil {
		log.Fatal().Err(err).Msg("ORDERS_TOLERANCE")
	}

	dispatcher := notify.NewLogDispatcher(log)
	createOrderUC := ordering.NewCreateOrderUseCase(
		b.orders, b.companies, b.payments, b.idempotent, b.orderRepo, b.coupons,
		dispatcher,
		ordering.Config{
			Tolerance:   tolerance,
			NotifyRoles: cfg.Orders.NotifyRoles,
			PublicURL:   cfg.Orders.PublicURL,
		},
	)
	receivePurchaseUC := purchasing.NewReceivePurchaseUseCase(b.receiving, b.companies, b.purchases, b.idempotent)
	registerMovementUC := inventory.NewRegisterMovementUseCase(b.inventory)
	replenishmentUC := inventory.NewReplenishmentUseCase(b.supplies)
	deleteProductUC := catalog.NewDeleteProductUseCase(b.catalog)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PDC API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateOrder:      createOrderUC,
		ReceivePurchase:  receivePurchaseUC,
		RegisterMovement: registerMovementUC,
		Replenishment:    replenishmentUC,
		DeleteProduct:    deleteProductUC,
		Companies:        b.companies,
		JWTSecret:        cfg.JWT.Secret,
		Log:              log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
