package store

import "time"

// Seed populates the store with a fabricated sample dataset so the dashboard
// renders something meaningful on a fresh process. Returns the store for
// chaining.
func (s *MemoryStore) Seed() *MemoryStore {
	acme := s.CreateSupplier(Supplier{
		Name:             "Acme Industrial Supply",
		Category:         "Raw Materials",
		Status:           "Active",
		ContactEmail:     "orders@acme-industrial.example",
		ContactPhone:     "+1-555-0101",
		PerformanceScore: 96.5,
	})
	nordic := s.CreateSupplier(Supplier{
		Name:             "Nordic Components",
		Category:         "Electronics",
		Status:           "On Track",
		ContactEmail:     "sales@nordic-components.example",
		ContactPhone:     "+46-555-0102",
		PerformanceScore: 92.1,
	})
	pacific := s.CreateSupplier(Supplier{
		Name:             "Pacific Packaging Co",
		Category:         "Packaging",
		Status:           "Delayed",
		ContactEmail:     "support@pacificpack.example",
		PerformanceScore: 84.7,
	})
	global := s.CreateSupplier(Supplier{
		Name:             "Global Freight Partners",
		Category:         "Logistics",
		Status:           "Active",
		ContactEmail:     "dispatch@globalfreight.example",
		PerformanceScore: 90.3,
	})

	steel := s.CreateProduct(Product{
		SKU:              "RM-1001",
		Name:             "Steel Sheet 2mm",
		Category:         "Raw Materials",
		CurrentStock:     500,
		MinimumThreshold: 100,
		UnitPrice:        25.50,
		SupplierID:       acme.ID,
	})
	controller := s.CreateProduct(Product{
		SKU:              "EL-2040",
		Name:             "Motor Controller v2",
		Category:         "Electronics",
		CurrentStock:     15,
		MinimumThreshold: 50,
		UnitPrice:        45.00,
		SupplierID:       nordic.ID,
	})
	s.CreateProduct(Product{
		SKU:              "PK-3310",
		Name:             "Corrugated Box Large",
		Category:         "Packaging",
		CurrentStock:     1200,
		MinimumThreshold: 300,
		UnitPrice:        1.85,
		SupplierID:       pacific.ID,
	})
	s.CreateProduct(Product{
		SKU:              "EL-2051",
		Name:             "Sensor Array Kit",
		Category:         "Electronics",
		CurrentStock:     8,
		MinimumThreshold: 25,
		UnitPrice:        129.99,
		SupplierID:       nordic.ID,
	})
	s.CreateProduct(Product{
		SKU:              "RM-1015",
		Name:             "Aluminium Rod 10mm",
		Category:         "Raw Materials",
		CurrentStock:     340,
		MinimumThreshold: 80,
		UnitPrice:        12.40,
		SupplierID:       acme.ID,
	})

	in3d := time.Now().UTC().Add(72 * time.Hour)
	in7d := time.Now().UTC().Add(7 * 24 * time.Hour)

	pending, _ := s.CreateOrder(Order{
		OrderNumber:      "PO-2025-0142",
		SupplierID:       nordic.ID,
		Status:           OrderPending,
		TotalValue:       6750.00,
		ExpectedDelivery: &in7d,
	})
	s.CreateOrderItem(OrderItem{OrderID: pending.ID, ProductID: controller.ID, Quantity: 150, UnitPrice: 45.00})

	inProgress, _ := s.CreateOrder(Order{
		OrderNumber:      "PO-2025-0141",
		SupplierID:       acme.ID,
		Status:           OrderInProgress,
		TotalValue:       12750.00,
		ExpectedDelivery: &in3d,
	})
	s.CreateOrderItem(OrderItem{OrderID: inProgress.ID, ProductID: steel.ID, Quantity: 500, UnitPrice: 25.50})

	s.CreateOrder(Order{
		OrderNumber: "PO-2025-0137",
		SupplierID:  pacific.ID,
		Status:      OrderCompleted,
		TotalValue:  2220.00,
	})
	s.CreateOrder(Order{
		OrderNumber: "PO-2025-0133",
		SupplierID:  global.ID,
		Status:      OrderCancelled,
		TotalValue:  980.00,
	})

	s.LogActivity(Activity{
		Type:              "Order",
		Description:       "Purchase order PO-2025-0142 created",
		Status:            "In Progress",
		RelatedEntityType: "order",
		RelatedEntityID:   pending.ID,
	})
	s.LogActivity(Activity{
		Type:              "Shipping",
		Description:       "Shipment from Acme Industrial Supply dispatched",
		Details:           "Expected in 3 days",
		Status:            "In Progress",
		RelatedEntityType: "order",
		RelatedEntityID:   inProgress.ID,
	})
	s.LogActivity(Activity{
		Type:              "Alert",
		Description:       "Motor Controller v2 below minimum threshold",
		Details:           "15 on hand, threshold 50",
		Status:            "Requires Action",
		RelatedEntityType: "product",
		RelatedEntityID:   controller.ID,
	})

	return s
}
