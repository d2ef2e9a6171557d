package ordering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maxsonaraujo/pdc-api/internal/application/dto"
	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/coupon"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/inventory"
	"github.com/maxsonaraujo/pdc-api/internal/domain/ordering"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CreateOrderUseCase crea el pedido completo (cliente, dirección, pedido, ítems, cupón y
// notificaciones) en una sola transacción.
type CreateOrderUseCase struct {
	txRunner    TxRunner
	companyRepo repository.CompanyRepository
	paymentRepo repository.PaymentMethodRepository
	idemRepo    repository.IdempotencyRepository
	orderRepo   repository.OrderRepository
	couponRepo  repository.CouponRepository
	validator   *coupon.Validator
	dispatcher  NotificationDispatcher
	cfg         Config
	money       moneyPrinter
	now         func() time.Time
}

// NewCreateOrderUseCase construye el caso de uso. Los repositorios sueltos se usan fuera de la
// transacción (lecturas de catálogo, repetición idempotente y consulta de pedidos).
func NewCreateOrderUseCase(
	txRunner TxRunner,
	companyRepo repository.CompanyRepository,
	paymentRepo repository.PaymentMethodRepository,
	idemRepo repository.IdempotencyRepository,
	orderRepo repository.OrderRepository,
	couponRepo repository.CouponRepository,
	dispatcher NotificationDispatcher,
	cfg Config,
) *CreateOrderUseCase {
	cfg = cfg.withDefaults()
	return &CreateOrderUseCase{
		txRunner:    txRunner,
		companyRepo: companyRepo,
		paymentRepo: paymentRepo,
		idemRepo:    idemRepo,
		orderRepo:   orderRepo,
		couponRepo:  couponRepo,
		validator:   coupon.NewValidator(cfg.Tolerance),
		dispatcher:  dispatcher,
		cfg:         cfg,
		money:       newMoneyPrinter(cfg.Locale, cfg.CurrencySymbol),
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *CreateOrderUseCase) WithClock(now func() time.Time) *CreateOrderUseCase {
	uc.now = now
	return uc
}

// CreateOrder valida y persiste el pedido. Con IdempotencyKey, una repetición devuelve la respuesta
// original sin volver a ejecutar efectos (uso de cupón, notificaciones).
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, companyID, userID string, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if companyID == "" {
		return nil, domain.ErrTenantNotFound
	}
	if userID == "" {
		return nil, domain.WithDetail(domain.ErrInvalidInput, "usuario requerido")
	}
	if err := validateCreateOrder(in); err != nil {
		return nil, err
	}

	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil || !company.IsActive() {
		return nil, domain.ErrTenantNotFound
	}

	if in.IdempotencyKey != "" {
		if resp, ok, err := uc.replay(ctx, companyID, in.IdempotencyKey); err != nil || ok {
			return resp, err
		}
	}

	// 1. Forma de pago (lectura de catálogo, fuera de la tx); el cambio se valida contra el total calculado
	method, err := uc.paymentRepo.GetByID(ctx, companyID, in.Payment.MethodID)
	if err != nil {
		return nil, err
	}
	if method == nil || method.CompanyID != companyID || !method.Active {
		return nil, domain.ErrInvalidPaymentMethod
	}

	lineTotals := make([]decimal.Decimal, 0, len(in.Items))
	for _, item := range in.Items {
		lineTotals = append(lineTotals, item.LineTotal)
	}
	if err := ordering.CheckItemsValue(lineTotals, in.ItemsValue, uc.cfg.Tolerance); err != nil {
		return nil, err
	}

	deliveryFee := decimal.Zero
	if in.Type == entity.OrderTypeDelivery {
		deliveryFee = in.DeliveryFee
	}

	now := uc.now()
	orderID := uuid.New().String()
	var resp *dto.CreateOrderResponse
	var notifications []*entity.Notification

	err = uc.txRunner.RunOrder(ctx, func(r OrderRepos) error {
		// 2. Cupón: la fila queda bloqueada hasta el Commit para que dos pedidos no pasen el cupo
		discount := decimal.Zero
		var cp *entity.Coupon
		var err error
		if in.Coupon != nil {
			cp, err = r.Coupons.GetForUpdate(ctx, companyID, in.Coupon.ID)
			if err != nil {
				return err
			}
			discount, err = uc.validator.Check(cp, companyID, in.ItemsValue, in.Coupon.DiscountValue, now)
			if err != nil {
				return err
			}
		}

		total := ordering.ComputeTotal(in.Type, in.ItemsValue, deliveryFee, discount)
		if err := ordering.CheckDeclaredTotal(in.TotalValue, total, uc.cfg.Tolerance); err != nil {
			return err
		}
		change, err := ordering.CheckChange(method.AcceptsChange, in.Payment.ChangeAmount, total)
		if err != nil {
			return err
		}

		// 3. Cliente (uno nuevo por pedido)
		customer := &entity.Customer{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			Name:      in.Customer.Name,
			Phone:     in.Customer.Phone,
			Email:     in.Customer.Email,
			CreatedAt: now,
		}
		if err := r.Customers.Create(ctx, customer); err != nil {
			return err
		}

		// 4. Dirección de entrega
		var addressID string
		if in.Type == entity.OrderTypeDelivery {
			address, err := uc.buildAddress(ctx, r.Cities, companyID, customer.ID, in.Delivery, now)
			if err != nil {
				return err
			}
			if err := r.Customers.CreateAddress(ctx, address); err != nil {
				return err
			}
			addressID = address.ID
		}

		// 5. Pedido con número consecutivo por empresa
		seq, err := r.Orders.NextSequence(ctx, companyID)
		if err != nil {
			return err
		}
		order := &entity.Order{
			ID:                orderID,
			CompanyID:         companyID,
			Number:            ordering.FormatNumber(in.Type, now, seq),
			Type:              in.Type,
			Status:            entity.OrderStatusPending,
			CustomerID:        customer.ID,
			DeliveryAddressID: addressID,
			PaymentMethodID:   method.ID,
			PaymentMethodCode: method.Code,
			ChangeAmount:      change,
			DeliveryFee:       deliveryFee,
			ItemsValue:        in.ItemsValue,
			DiscountValue:     discount,
			TotalValue:        total,
			Notes:             in.Payment.Notes,
			PlacedAt:          now,
			CreatedBy:         userID,
		}
		if in.Pickup != nil {
			order.PickupNote = in.Pickup.Note
		}
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}

		// 6. Estado inicial sin estado previo
		if err := r.Orders.CreateStatusHistory(ctx, &entity.OrderStatusHistory{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ToStatus:  entity.OrderStatusPending,
			ChangedBy: userID,
			ChangedAt: now,
		}); err != nil {
			return err
		}

		// 7. Ítems copiados tal cual los envía el cliente
		for _, item := range in.Items {
			var options json.RawMessage
			if len(item.Options) > 0 && string(item.Options) != "null" {
				options = item.Options
			}
			if err := r.Orders.CreateItem(ctx, &entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				LineTotal: item.LineTotal,
				Options:   options,
			}); err != nil {
				return err
			}
		}

		// 8. Redención y uso del cupón
		if cp != nil {
			if err := r.Coupons.CreateRedemption(ctx, &entity.CouponRedemption{
				ID:              uuid.New().String(),
				OrderID:         order.ID,
				CouponID:        cp.ID,
				DiscountApplied: discount,
				CreatedAt:       now,
			}); err != nil {
				return err
			}
			if err := r.Coupons.IncrementUses(ctx, cp.ID); err != nil {
				return err
			}
		}

		// 9. Un aviso por administrador/gerente activo
		users, err := r.Users.ListActiveByRoles(ctx, companyID, uc.cfg.NotifyRoles)
		if err != nil {
			return err
		}
		notifications = uc.buildNotifications(users, order, customer.Name, method.Name, now)
		if len(notifications) > 0 {
			if err := r.Notifications.CreateBatch(ctx, notifications); err != nil {
				return err
			}
		}

		resp = &dto.CreateOrderResponse{
			OrderID:    order.ID,
			Number:     order.Number,
			Status:     order.Status,
			TotalValue: order.TotalValue,
		}
		if in.IdempotencyKey != "" {
			return saveIdempotency(ctx, r.Idempotency, companyID, entity.IdempotencyScopeCreateOrder, in.IdempotencyKey, order.ID, resp, now)
		}
		return nil
	})
	if err != nil {
		// Otra solicitud con la misma clave confirmó primero: devolver su resultado.
		if in.IdempotencyKey != "" && errors.Is(err, domain.ErrDuplicate) {
			if prev, ok, rerr := uc.replay(ctx, companyID, in.IdempotencyKey); rerr == nil && ok {
				return prev, nil
			}
		}
		return nil, err
	}

	if uc.dispatcher != nil && len(notifications) > 0 {
		uc.dispatcher.Dispatch(ctx, notifications)
	}
	return resp, nil
}

func (uc *CreateOrderUseCase) buildAddress(
	ctx context.Context,
	cities repository.CityRepository,
	companyID, customerID string,
	in *dto.OrderDelivery,
	now time.Time,
) (*entity.DeliveryAddress, error) {
	address := &entity.DeliveryAddress{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		CustomerID:   customerID,
		Street:       in.Street,
		Number:       in.Number,
		Complement:   in.Complement,
		Neighborhood: in.Neighborhood,
		CityName:     in.CityName,
		State:        in.State,
		ZipCode:      in.ZipCode,
		Reference:    in.Reference,
		CreatedAt:    now,
	}
	if in.CityID == "" {
		return address, nil
	}
	city, err := cities.GetByID(ctx, in.CityID)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, domain.WithDetail(domain.ErrInvalidInput, "ciudad %s no existe", in.CityID)
	}
	address.CityID = city.ID
	address.CityName = city.Name
	if address.State == "" {
		address.State = city.State
	}
	return address, nil
}

func (uc *CreateOrderUseCase) replay(ctx context.Context, companyID, key string) (*dto.CreateOrderResponse, bool, error) {
	rec, err := uc.idemRepo.Get(ctx, companyID, entity.IdempotencyScopeCreateOrder, key)
	if err != nil {
		return nil, false, err
	}
	if rec == nil {
		return nil, false, nil
	}
	var resp dto.CreateOrderResponse
	if err := json.Unmarshal(rec.Response, &resp); err != nil {
		return nil, false, fmt.Errorf("decodificar respuesta idempotente: %w", err)
	}
	return &resp, true, nil
}

func saveIdempotency(
	ctx context.Context,
	repo repository.IdempotencyRepository,
	companyID, scope, key, resourceID string,
	resp any,
	now time.Time,
) error {
	body, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("codificar respuesta idempotente: %w", err)
	}
	return repo.Create(ctx, &entity.IdempotencyRecord{
		CompanyID:  companyID,
		Scope:      scope,
		Key:        key,
		ResourceID: resourceID,
		Response:   body,
		CreatedAt:  now,
	})
}

// validateCreateOrder reglas de forma y signo que el caso de uso no delega al borde HTTP.
func validateCreateOrder(in dto.CreateOrderRequest) error {
	switch in.Type {
	case entity.OrderTypeDelivery:
		if in.Delivery == nil || in.Delivery.Street == "" {
			return domain.WithDetail(domain.ErrInvalidInput, "delivery requiere dirección")
		}
	case entity.OrderTypePickup:
	default:
		return domain.WithDetail(domain.ErrInvalidInput, "tipo de pedido %q", in.Type)
	}
	if in.Customer.Name == "" || in.Customer.Phone == "" {
		return domain.WithDetail(domain.ErrInvalidInput, "nombre y teléfono del cliente son requeridos")
	}
	if in.Payment.MethodID == "" {
		return domain.WithDetail(domain.ErrInvalidInput, "forma de pago requerida")
	}
	if len(in.Items) == 0 {
		return domain.WithDetail(domain.ErrInvalidInput, "el pedido no tiene ítems")
	}
	for i, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.IsPositive() {
			return domain.WithDetail(domain.ErrInvalidInput, "ítem %d: producto y cantidad positiva requeridos", i+1)
		}
		if err := inventory.CheckQuantityScale(item.Quantity); err != nil {
			return err
		}
		if item.UnitPrice.IsNegative() || item.LineTotal.IsNegative() {
			return domain.WithDetail(domain.ErrInvalidInput, "ítem %d: montos negativos", i+1)
		}
	}
	if in.ItemsValue.IsNegative() || in.DeliveryFee.IsNegative() || in.TotalValue.IsNegative() {
		return domain.WithDetail(domain.ErrInvalidInput, "montos negativos")
	}
	if in.Payment.ChangeAmount != nil && in.Payment.ChangeAmount.IsNegative() {
		return domain.WithDetail(domain.ErrInvalidInput, "valor para cambio negativo")
	}
	if in.Coupon != nil && (in.Coupon.ID == "" || in.Coupon.DiscountValue.IsNegative()) {
		return domain.WithDetail(domain.ErrInvalidInput, "cupón inválido")
	}
	return nil
}
