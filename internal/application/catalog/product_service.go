package catalog

import (
	"context"

	appnotification "github.com/flamenca/backend/internal/application/notification"
	"github.com/flamenca/backend/internal/domain/catalog"
	"github.com/flamenca/backend/internal/domain/integration"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService manages the local catalog and keeps it aligned with the
// storefront
type ProductService struct {
	productRepo catalog.ProductRepository
	storefront  integration.Storefront
	autoNotify  *appnotification.AutoNotifyService
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo catalog.ProductRepository,
	storefront integration.Storefront,
	autoNotify *appnotification.AutoNotifyService,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		storefront:  storefront,
		autoNotify:  autoNotify,
		logger:      logger,
	}
}

// Create creates a local-only product
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*catalog.Product, error) {
	product, err := catalog.NewProduct(input.Name, input.SKU, input.Price, input.StockQuantity)
	if err != nil {
		return nil, err
	}
	product.Description = input.Description
	product.Category = input.Category
	product.ImageURL = input.ImageURL

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))
	return product, nil
}

// Update modifies product fields. Only set pointers are applied.
func (s *ProductService) Update(ctx context.Context, input UpdateProductInput) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if err := product.UpdatePrice(*input.Price); err != nil {
			return nil, err
		}
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Active != nil {
		product.Active = *input.Active
	}
	product.Touch()

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get returns a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return shared.NewPaginated(products, total, filter.Page, filter.PageSize), nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// AdjustStock applies a stock delta, optionally pushes the new quantity to
// the storefront, and fires stock alerts when thresholds are crossed
func (s *ProductService) AdjustStock(ctx context.Context, input AdjustStockInput) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	wasLow := product.IsLowStock()
	wasCritical := product.IsCriticalStock()

	if err := product.AdjustStock(input.Delta); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if input.PushToStorefront && product.ExternalID != nil {
		if err := s.storefront.UpdateProduct(ctx, &integration.StorefrontProduct{
			ExternalID:    *product.ExternalID,
			StockQuantity: product.StockQuantity,
			StockStatus:   product.StockStatus.String(),
			Price:         product.Price,
		}); err != nil {
			s.logger.Warn("Failed to push stock update to storefront",
				zap.String("external_id", *product.ExternalID),
				zap.Error(err))
		}
	}

	// Alert once per threshold crossing, not on every adjustment below it
	if product.IsCriticalStock() && !wasCritical {
		s.autoNotify.NotifyCriticalStock(ctx, appnotification.StockEvent{
			Products: []appnotification.StockEventProduct{{Name: product.Name, Stock: product.StockQuantity}},
		})
	} else if product.IsLowStock() && !wasLow {
		s.autoNotify.NotifyLowStock(ctx, appnotification.StockEvent{
			Products: []appnotification.StockEventProduct{{Name: product.Name, Stock: product.StockQuantity}},
		})
	}

	return product, nil
}

// RefreshFromStorefront pulls the full storefront catalog and upserts every
// product locally, then sends aggregated stock alerts
func (s *ProductService) RefreshFromStorefront(ctx context.Context) (*RefreshResult, error) {
	result := &RefreshResult{}

	page := 1
	for {
		resp, err := s.storefront.ListProducts(ctx, &integration.ProductListRequest{
			Page:    page,
			PerPage: 50,
		})
		if err != nil {
			return nil, err
		}
		result.Total = resp.Total

		for i := range resp.Products {
			product, err := buildImportedProduct(&resp.Products[i])
			if err != nil {
				s.logger.Warn("Skipping invalid storefront product",
					zap.String("external_id", resp.Products[i].ExternalID),
					zap.Error(err))
				continue
			}
			if err := s.productRepo.UpsertByExternalID(ctx, product); err != nil {
				s.logger.Warn("Failed to upsert storefront product",
					zap.String("external_id", resp.Products[i].ExternalID),
					zap.Error(err))
				continue
			}
			result.Refreshed++
		}

		if len(resp.Products) == 0 || (resp.TotalPages > 0 && page >= resp.TotalPages) {
			break
		}
		page++
	}

	s.logger.Info("Catalog refresh finished",
		zap.Int("refreshed", result.Refreshed),
		zap.Int64("total", result.Total))

	s.sendStockAlerts(ctx, result)
	return result, nil
}

// SyncSingleProduct upserts one product from the storefront by its external
// ID, typically in response to a webhook
func (s *ProductService) SyncSingleProduct(ctx context.Context, externalID string) (*catalog.Product, error) {
	storefrontProduct, err := s.storefront.GetProduct(ctx, externalID)
	if err != nil {
		return nil, err
	}

	product, err := buildImportedProduct(storefrontProduct)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.UpsertByExternalID(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Refreshed product from storefront",
		zap.String("external_id", externalID),
		zap.String("name", product.Name),
		zap.Int("stock", product.StockQuantity))
	return product, nil
}

// sendStockAlerts reports products below the stock thresholds after a
// refresh. Critical products are excluded from the low stock alert so each
// product appears in exactly one message.
func (s *ProductService) sendStockAlerts(ctx context.Context, result *RefreshResult) {
	lowProducts, err := s.productRepo.FindLowStock(ctx, catalog.LowStockThreshold)
	if err != nil {
		s.logger.Warn("Failed to load low stock products", zap.Error(err))
		return
	}

	var low, critical []appnotification.StockEventProduct
	for _, p := range lowProducts {
		entry := appnotification.StockEventProduct{Name: p.Name, Stock: p.StockQuantity}
		if p.IsCriticalStock() {
			critical = append(critical, entry)
		} else {
			low = append(low, entry)
		}
	}

	if len(critical) > 0 {
		result.CriticalStockAlerted = s.autoNotify.NotifyCriticalStock(ctx, appnotification.StockEvent{Products: critical})
	}
	if len(low) > 0 {
		result.LowStockAlerted = s.autoNotify.NotifyLowStock(ctx, appnotification.StockEvent{Products: low})
	}
}

// buildImportedProduct converts a storefront product into a local one
func buildImportedProduct(sp *integration.StorefrontProduct) (*catalog.Product, error) {
	product, err := catalog.NewProduct(sp.Name, sp.SKU, sp.Price, sp.StockQuantity)
	if err != nil {
		return nil, err
	}
	externalID := sp.ExternalID
	product.ExternalID = &externalID
	product.Description = sp.Description
	product.RegularPrice = sp.RegularPrice
	if status := catalog.StockStatus(sp.StockStatus); status.IsValid() {
		product.StockStatus = status
	}
	product.Category = sp.Category
	if len(sp.ImageURLs) > 0 {
		product.ImageURL = sp.ImageURLs[0]
	}
	return product, nil
}
