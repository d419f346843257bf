package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/logistics"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/trade"
	"golang.org/x/sync/errgroup"
)

const trendMonths = 6

// DashboardService aggregates cross-context figures for the analytics
// endpoints. Reads only; it owns no aggregates of its own.
type DashboardService struct {
	orderRepo         trade.OrderRepository
	productRepo       catalog.ProductRepository
	stockRepo         inventory.StockItemRepository
	warehouseRepo     logistics.WarehouseRepository
	lowStockThreshold int64
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	stockRepo inventory.StockItemRepository,
	warehouseRepo logistics.WarehouseRepository,
	lowStockThreshold int64,
) *DashboardService {
	return &DashboardService{
		orderRepo:         orderRepo,
		productRepo:       productRepo,
		stockRepo:         stockRepo,
		warehouseRepo:     warehouseRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// Dashboard computes the headline numbers for a tenant. The aggregates
// are independent, so they run in parallel; the first error cancels
// the rest.
func (s *DashboardService) Dashboard(ctx context.Context, tenantID uuid.UUID) (*DashboardResponse, error) {
	resp := &DashboardResponse{TotalRevenue: decimal.Zero}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.orderRepo.CountForTenant(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("count orders: %w", err)
		}
		resp.TotalOrders = count
		return nil
	})

	g.Go(func() error {
		count, err := s.productRepo.CountForTenant(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		resp.TotalProducts = count
		return nil
	})

	g.Go(func() error {
		total, err := s.stockRepo.SumQuantityForTenant(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("sum stock: %w", err)
		}
		resp.TotalStock = total
		return nil
	})

	g.Go(func() error {
		count, err := s.stockRepo.CountBelowThreshold(gctx, tenantID, s.lowStockThreshold)
		if err != nil {
			return fmt.Errorf("count low stock: %w", err)
		}
		resp.LowStockItems = count
		return nil
	})

	g.Go(func() error {
		revenue, err := s.revenue(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("sum revenue: %w", err)
		}
		resp.TotalRevenue = revenue
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

// Trends returns order counts and revenue per month for the last six
// months, oldest month first. Months without orders still appear with
// zero values.
func (s *DashboardService) Trends(ctx context.Context, tenantID uuid.UUID) (*TrendsResponse, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(trendMonths - 1), 0)

	orders, err := s.orderRepo.FindCreatedSince(ctx, tenantID, start)
	if err != nil {
		return nil, err
	}

	points := make([]MonthlyTrendPoint, trendMonths)
	index := make(map[string]int, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		points[i] = MonthlyTrendPoint{Month: month, Revenue: decimal.Zero}
		index[month] = i
	}

	for _, order := range orders {
		month := order.CreatedAt.Format("2006-01")
		i, ok := index[month]
		if !ok {
			continue
		}
		points[i].OrderCount++
		points[i].Revenue = points[i].Revenue.Add(order.TotalAmount())
	}

	return &TrendsResponse{Months: points}, nil
}

// Utilization returns the fill level of every warehouse as a
// percentage of its capacity. Warehouses with zero capacity report 0.
func (s *DashboardService) Utilization(ctx context.Context, tenantID uuid.UUID) (*UtilizationResponse, error) {
	warehouses, _, err := s.warehouseRepo.FindAllForTenant(ctx, tenantID, shared.Filter{})
	if err != nil {
		return nil, err
	}

	stockByWarehouse, err := s.stockRepo.SumQuantityByWarehouse(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := make([]WarehouseUtilization, 0, len(warehouses))
	for _, warehouse := range warehouses {
		stock := stockByWarehouse[warehouse.ID]
		utilization := 0.0
		if warehouse.Capacity > 0 {
			utilization = float64(stock) / float64(warehouse.Capacity) * 100
		}
		result = append(result, WarehouseUtilization{
			WarehouseID:   warehouse.ID,
			WarehouseName: warehouse.Name,
			Capacity:      warehouse.Capacity,
			Stock:         stock,
			Utilization:   utilization,
		})
	}

	return &UtilizationResponse{Warehouses: result}, nil
}

func (s *DashboardService) revenue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	orders, err := s.orderRepo.FindNonCancelled(ctx, tenantID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.TotalAmount())
	}
	return total, nil
}
