package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/supplysight/backend/internal/store"
)

// KPISummary is the dashboard headline block. String fields are
// presentation-ready; the UI renders them verbatim.
type KPISummary struct {
	TotalInventoryValue string `json:"totalInventoryValue"`
	InventoryGrowth     string `json:"inventoryGrowth"`
	ActiveOrders        int    `json:"activeOrders"`
	PendingOrders       int    `json:"pendingOrders"`
	SupplierPerformance string `json:"supplierPerformance"`
	OnTimeDelivery      string `json:"onTimeDelivery"`
	StockAlerts         int    `json:"stockAlerts"`
	CriticalItems       string `json:"criticalItems"`
}

// InventoryLevel is one point of the inventory value series.
type InventoryLevel struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// SupplierWithInitials decorates a supplier with the 2-letter initials the
// dashboard avatar shows.
type SupplierWithInitials struct {
	store.Supplier
	Initial string `json:"initial"`
}

// Service derives dashboard metrics by scanning the live store collections on
// every call. Nothing is memoized: results are always consistent with the
// store at call time, which is affordable at this collection size.
type Service struct {
	store *store.MemoryStore

	// baselineValue anchors the growth figure; captured once at startup.
	baselineValue float64
}

// NewService creates an aggregator over the given store, capturing the
// current inventory value as the growth baseline.
func NewService(s *store.MemoryStore) *Service {
	svc := &Service{store: s}
	svc.baselineValue = svc.totalInventoryValue()
	return svc
}

// KPIs recomputes the dashboard summary from the live collections.
func (s *Service) KPIs() KPISummary {
	total := s.totalInventoryValue()

	var active, pending int
	for _, order := range s.store.Orders() {
		if order.Active() {
			active++
		}
		if order.Status == store.OrderPending {
			pending++
		}
	}

	lowStock := len(s.store.ProductsBelowThreshold())

	return KPISummary{
		TotalInventoryValue: FormatMillions(total),
		InventoryGrowth:     s.growthLabel(total),
		ActiveOrders:        active,
		PendingOrders:       pending,
		SupplierPerformance: s.supplierPerformance(),
		OnTimeDelivery:      s.onTimeDelivery(),
		StockAlerts:         lowStock,
		CriticalItems:       fmt.Sprintf("%d items need restock", lowStock),
	}
}

// InventoryLevels returns a date-ordered synthetic series of daily inventory
// values ending today. The curve is deterministic: it oscillates around the
// live total so the chart tracks the store without inventing history state.
func (s *Service) InventoryLevels(days int) []InventoryLevel {
	if days <= 0 {
		days = 30
	}

	total := s.totalInventoryValue()
	today := time.Now().UTC()

	levels := make([]InventoryLevel, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		// ±6% seasonal-looking wobble, anchored to the day index so the
		// series is stable across calls on the same day.
		factor := 1 + 0.06*math.Sin(float64(day.YearDay())/5)
		levels = append(levels, InventoryLevel{
			Date:  day.Format("2006-01-02"),
			Value: math.Round(total*factor*100) / 100,
		})
	}
	return levels
}

// SuppliersWithInitials returns all suppliers decorated with derived
// initials.
func (s *Service) SuppliersWithInitials() []SupplierWithInitials {
	suppliers := s.store.Suppliers()
	out := make([]SupplierWithInitials, 0, len(suppliers))
	for _, supplier := range suppliers {
		out = append(out, SupplierWithInitials{
			Supplier: supplier,
			Initial:  Initials(supplier.Name),
		})
	}
	return out
}

// RecentActivities returns up to limit activities, newest first.
func (s *Service) RecentActivities(limit int) []store.Activity {
	if limit <= 0 {
		limit = 20
	}
	return s.store.Activities(limit)
}

func (s *Service) totalInventoryValue() float64 {
	var total float64
	for _, product := range s.store.Products() {
		total += product.UnitPrice * float64(product.CurrentStock)
	}
	return total
}

func (s *Service) growthLabel(total float64) string {
	if s.baselineValue == 0 {
		return "+0.0% from last month"
	}
	pct := (total - s.baselineValue) / s.baselineValue * 100
	return fmt.Sprintf("%+.1f%% from last month", pct)
}

func (s *Service) supplierPerformance() string {
	suppliers := s.store.Suppliers()
	if len(suppliers) == 0 {
		return "0.0%"
	}
	var sum float64
	for _, supplier := range suppliers {
		sum += supplier.PerformanceScore
	}
	return fmt.Sprintf("%.1f%%", sum/float64(len(suppliers)))
}

func (s *Service) onTimeDelivery() string {
	var completed, onTime int
	for _, order := range s.store.Orders() {
		if order.Status != store.OrderCompleted {
			continue
		}
		completed++
		if order.ExpectedDelivery == nil || order.ActualDelivery == nil ||
			!order.ActualDelivery.After(*order.ExpectedDelivery) {
			onTime++
		}
	}
	if completed == 0 {
		return "100.0% on-time delivery"
	}
	return fmt.Sprintf("%.1f%% on-time delivery", float64(onTime)/float64(completed)*100)
}

// FormatMillions renders a currency amount as millions with one decimal
// place, e.g. 13425.00 -> "$0.0M".
func FormatMillions(value float64) string {
	return fmt.Sprintf("$%.1fM", value/1_000_000)
}

// Initials derives the 2-letter avatar initials from a supplier name: the
// first letters of the first two words, or the first two letters of a
// single-word name.
func Initials(name string) string {
	fields := strings.Fields(name)
	switch {
	case len(fields) >= 2:
		return strings.ToUpper(firstRune(fields[0]) + firstRune(fields[1]))
	case len(fields) == 1:
		runes := []rune(fields[0])
		if len(runes) >= 2 {
			return strings.ToUpper(string(runes[:2]))
		}
		return strings.ToUpper(string(runes))
	}
	return ""
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
