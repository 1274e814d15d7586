package ordering

import (
	"context"
	"fmt"
	"time"

	"github.com/flamenca/backend/internal/domain/catalog"
	"github.com/flamenca/backend/internal/domain/ordering"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService manages local orders: back-office entries and point-of-sale
// checkouts. Imported storefront orders are created by the sync services and
// only read here.
type OrderService struct {
	orderRepo   ordering.OrderRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo ordering.OrderRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create creates a back-office order
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*ordering.Order, error) {
	source := input.Source
	if source == "" {
		source = ordering.OrderSourceBackoffice
	}
	if source == ordering.OrderSourceStorefront {
		return nil, shared.NewDomainError("INVALID_ORDER_SOURCE", "Storefront orders are created by the sync process")
	}

	number := input.Number
	if number == "" {
		number = generateOrderNumber(source)
	}

	order, err := ordering.NewOrder(number, source, input.CustomerName)
	if err != nil {
		return nil, err
	}
	order.CustomerEmail = input.CustomerEmail
	order.CustomerPhone = input.CustomerPhone
	order.PaymentMethod = input.PaymentMethod
	order.Notes = input.Notes

	for _, item := range input.Items {
		unitPrice, name, err := s.resolveItem(ctx, item)
		if err != nil {
			return nil, err
		}
		if err := order.AddItem(item.ProductID, name, item.Quantity, unitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("number", order.Number),
		zap.String("source", order.Source.String()))
	return order, nil
}

// Checkout completes a point-of-sale sale: the order is created, stock is
// deducted for every catalog item, and the order is closed as delivered.
// Stock is checked before any write so an insufficient line rejects the whole
// sale.
func (s *OrderService) Checkout(ctx context.Context, input CheckoutInput) (*ordering.Order, error) {
	if len(input.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "A sale needs at least one item")
	}

	customerName := input.CustomerName
	if customerName == "" {
		customerName = "Cliente mostrador"
	}

	order, err := ordering.NewOrder(generateOrderNumber(ordering.OrderSourcePOS), ordering.OrderSourcePOS, customerName)
	if err != nil {
		return nil, err
	}
	order.PaymentMethod = input.PaymentMethod

	// First pass: load products and verify stock
	products := make(map[uuid.UUID]*catalog.Product)
	for _, item := range input.Items {
		if item.ProductID == nil {
			return nil, shared.NewDomainError("INVALID_ITEM", "POS items must reference a catalog product")
		}
		product, ok := products[*item.ProductID]
		if !ok {
			product, err = s.productRepo.FindByID(ctx, *item.ProductID)
			if err != nil {
				return nil, err
			}
			products[*item.ProductID] = product
		}
		if product.StockQuantity < item.Quantity {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Not enough stock for %s: %d available", product.Name, product.StockQuantity))
		}

		unitPrice := product.Price
		if item.UnitPrice != nil {
			unitPrice = *item.UnitPrice
		}
		if err := order.AddItem(item.ProductID, product.Name, item.Quantity, unitPrice); err != nil {
			return nil, err
		}
	}

	if input.Discount.IsPositive() {
		if input.Discount.GreaterThan(order.Total) {
			return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the order total")
		}
		order.Total = order.Total.Sub(input.Discount)
		order.Notes = fmt.Sprintf("Descuento aplicado: %s€", input.Discount.StringFixed(2))
	}

	// A counter sale is handed over immediately
	if err := order.UpdateStatus(ordering.OrderStatusInProgress); err != nil {
		return nil, err
	}
	if err := order.UpdateStatus(ordering.OrderStatusDelivered); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	// Second pass: deduct stock
	for _, item := range order.Items {
		product := products[*item.ProductID]
		if err := product.AdjustStock(-item.Quantity); err != nil {
			s.logger.Error("Stock deduction failed after checkout",
				zap.String("order_id", order.ID.String()),
				zap.String("product_id", product.ID.String()),
				zap.Error(err))
			continue
		}
		if err := s.productRepo.Save(ctx, product); err != nil {
			s.logger.Error("Failed to save stock after checkout",
				zap.String("product_id", product.ID.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("POS sale completed",
		zap.String("order_id", order.ID.String()),
		zap.String("number", order.Number),
		zap.String("cashier_id", input.CashierID.String()),
		zap.String("total", order.Total.StringFixed(2)))
	return order, nil
}

// Get returns an order by ID
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// List returns orders matching the filter
func (s *OrderService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ordering.Order], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}

// UpdateStatus transitions a local order to a new status. Imported orders
// follow the storefront and cannot be moved by hand.
func (s *OrderService) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*ordering.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.IsImported() {
		return nil, shared.NewDomainError("IMPORTED_ORDER", "Imported orders take their status from the storefront")
	}
	if err := order.UpdateStatus(input.Status); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", order.Status.String()))
	return order, nil
}

// Delete removes an order
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Order deleted", zap.String("order_id", id.String()))
	return nil
}

// resolveItem fills in the product name and price from the catalog when the
// item references a product
func (s *OrderService) resolveItem(ctx context.Context, item OrderItemInput) (decimal.Decimal, string, error) {
	if item.ProductID != nil {
		product, err := s.productRepo.FindByID(ctx, *item.ProductID)
		if err != nil {
			return decimal.Zero, "", err
		}
		price := product.Price
		if item.UnitPrice != nil {
			price = *item.UnitPrice
		}
		name := item.ProductName
		if name == "" {
			name = product.Name
		}
		return price, name, nil
	}

	if item.UnitPrice == nil {
		return decimal.Zero, "", shared.NewDomainError("INVALID_ITEM", "Free-form items need a unit price")
	}
	return *item.UnitPrice, item.ProductName, nil
}

// generateOrderNumber builds a unique human-readable order number
func generateOrderNumber(source ordering.OrderSource) string {
	prefix := "ORD"
	if source == ordering.OrderSourcePOS {
		prefix = "POS"
	}
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), uuid.New().String()[:8])
}
