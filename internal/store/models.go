package store

import "time"

// Order status values. Transitions are enforced by the store: an order moves
// Pending -> In Progress -> Completed, and may be cancelled from Pending or
// In Progress. Completed and Cancelled are terminal.
const (
	OrderPending    = "Pending"
	OrderInProgress = "In Progress"
	OrderCompleted  = "Completed"
	OrderCancelled  = "Cancelled"
)

// Inventory transaction types.
const (
	TxIn         = "IN"
	TxOut        = "OUT"
	TxAdjustment = "ADJUSTMENT"
)

// Supplier is a vendor the business orders from.
type Supplier struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Status           string    `json:"status"` // Active, Delayed, On Track
	ContactEmail     string    `json:"contactEmail,omitempty"`
	ContactPhone     string    `json:"contactPhone,omitempty"`
	PerformanceScore float64   `json:"performanceScore"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Product is a stocked item. SupplierID is a soft reference; the store does
// not enforce referential integrity.
type Product struct {
	ID               int       `json:"id"`
	SKU              string    `json:"sku"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	CurrentStock     int       `json:"currentStock"`
	MinimumThreshold int       `json:"minimumThreshold"`
	UnitPrice        float64   `json:"unitPrice"`
	SupplierID       int       `json:"supplierId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// LowStock reports whether the product is at or below its minimum threshold.
func (p Product) LowStock() bool {
	return p.CurrentStock <= p.MinimumThreshold
}

// Order is a purchase order placed with a supplier.
type Order struct {
	ID               int        `json:"id"`
	OrderNumber      string     `json:"orderNumber"`
	SupplierID       int        `json:"supplierId,omitempty"`
	Status           string     `json:"status"`
	TotalValue       float64    `json:"totalValue"`
	OrderDate        time.Time  `json:"orderDate"`
	ExpectedDelivery *time.Time `json:"expectedDelivery,omitempty"`
	ActualDelivery   *time.Time `json:"actualDelivery,omitempty"`
}

// Active reports whether the order still needs attention: Pending or
// In Progress.
func (o Order) Active() bool {
	return o.Status == OrderPending || o.Status == OrderInProgress
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"orderId"`
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Activity is one entry in the operational activity feed.
type Activity struct {
	ID                int       `json:"id"`
	Type              string    `json:"type"` // Inventory, Shipping, Alert, Order
	Description       string    `json:"description"`
	Details           string    `json:"details,omitempty"`
	Status            string    `json:"status"` // Completed, In Progress, Requires Action
	RelatedEntityType string    `json:"relatedEntityType,omitempty"`
	RelatedEntityID   int       `json:"relatedEntityId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// InventoryTransaction records a stock movement against a product.
type InventoryTransaction struct {
	ID        int       `json:"id"`
	ProductID int       `json:"productId"`
	Type      string    `json:"type"` // IN, OUT, ADJUSTMENT
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
