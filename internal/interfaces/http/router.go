package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maxsonaraujo/pdc-api/internal/application/catalog"
	"github.com/maxsonaraujo/pdc-api/internal/application/inventory"
	"github.com/maxsonaraujo/pdc-api/internal/application/ordering"
	"github.com/maxsonaraujo/pdc-api/internal/application/purchasing"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
	"github.com/maxsonaraujo/pdc-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateOrder      *ordering.CreateOrderUseCase
	ReceivePurchase  *purchasing.ReceivePurchaseUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	DeleteProduct    *catalog.DeleteProductUseCase
	Companies        repository.CompanyRepository
	JWTSecret        string
	Log              *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token y empresa activa)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireActiveTenant(deps.Companies, deps.Log))

	staff := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleOperator)
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Orders
	orders := protected.Group("/orders", staff)
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.Log)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)

	// Purchases
	purchases := protected.Group("/purchases", managers)
	purchaseHandler := NewPurchaseHandler(deps.ReceivePurchase, deps.Log)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/receipts", purchaseHandler.Receive)

	// Inventory
	invGroup := protected.Group("/inventory", staff)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Replenishment, deps.Log)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/replenishment", managers, inventoryHandler.GetReplenishmentList)

	// Products
	products := protected.Group("/products", RequireRole(entity.RoleAdmin))
	productHandler := NewProductHandler(deps.DeleteProduct, deps.Log)
	products.Delete("/:id", productHandler.Delete)
}
