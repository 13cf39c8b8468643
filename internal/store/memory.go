package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when a lookup matches no entity.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidStatus is returned for an unknown status value.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidTransition is returned when an order status change is not
	// permitted by the state machine.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrInsufficientStock is returned when an OUT transaction would drive
	// stock negative.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidTransactionType is returned for unknown inventory
	// transaction types.
	ErrInvalidTransactionType = errors.New("invalid inventory transaction type")
)

// orderTransitions is the permitted status state machine. Statuses absent
// from the map are terminal.
var orderTransitions = map[string][]string{
	OrderPending:    {OrderInProgress, OrderCancelled},
	OrderInProgress: {OrderCompleted, OrderCancelled},
}

func validOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// MemoryStore is a concurrency-safe in-memory store for the business
// collections. Identifiers are assigned monotonically from 1 per collection
// for the lifetime of the process; entities are never deleted.
type MemoryStore struct {
	mu sync.RWMutex

	suppliers    []Supplier
	products     []Product
	orders       []Order
	orderItems   []OrderItem
	activities   []Activity
	transactions []InventoryTransaction

	nextSupplierID    int
	nextProductID     int
	nextOrderID       int
	nextOrderItemID   int
	nextActivityID    int
	nextTransactionID int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextSupplierID:    1,
		nextProductID:     1,
		nextOrderID:       1,
		nextOrderItemID:   1,
		nextActivityID:    1,
		nextTransactionID: 1,
	}
}

// CreateSupplier assigns the next identifier and creation timestamp, inserts
// the supplier, and returns the stored entity.
func (s *MemoryStore) CreateSupplier(supplier Supplier) Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()

	supplier.ID = s.nextSupplierID
	s.nextSupplierID++
	supplier.CreatedAt = time.Now().UTC()
	s.suppliers = append(s.suppliers, supplier)
	return supplier
}

// Suppliers returns all suppliers in insertion order.
func (s *MemoryStore) Suppliers() []Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Supplier, len(s.suppliers))
	copy(out, s.suppliers)
	return out
}

// SupplierByID returns the supplier with the given identifier.
func (s *MemoryStore) SupplierByID(id int) (Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, supplier := range s.suppliers {
		if supplier.ID == id {
			return supplier, nil
		}
	}
	return Supplier{}, ErrNotFound
}

// CreateProduct assigns the next identifier and creation timestamp, inserts
// the product, and returns the stored entity.
func (s *MemoryStore) CreateProduct(product Product) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.nextProductID
	s.nextProductID++
	product.CreatedAt = time.Now().UTC()
	s.products = append(s.products, product)
	return product
}

// Products returns all products in insertion order.
func (s *MemoryStore) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// ProductByID returns the product with the given identifier.
func (s *MemoryStore) ProductByID(id int) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, product := range s.products {
		if product.ID == id {
			return product, nil
		}
	}
	return Product{}, ErrNotFound
}

// ProductsBelowThreshold returns products whose current stock is at or below
// their minimum threshold. The predicate scans the full collection on each
// call; collections here are small.
func (s *MemoryStore) ProductsBelowThreshold() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Product
	for _, product := range s.products {
		if product.LowStock() {
			out = append(out, product)
		}
	}
	return out
}

// CreateOrder validates the status value, assigns the next identifier and
// order date, inserts the order, and returns it. An empty status defaults to
// Pending.
func (s *MemoryStore) CreateOrder(order Order) (Order, error) {
	if order.Status == "" {
		order.Status = OrderPending
	}
	if !validOrderStatus(order.Status) {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, order.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = s.nextOrderID
	s.nextOrderID++
	order.OrderDate = time.Now().UTC()
	s.orders = append(s.orders, order)
	return order, nil
}

// Orders returns all orders in insertion order.
func (s *MemoryStore) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// OrderByID returns the order with the given identifier.
func (s *MemoryStore) OrderByID(id int) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return Order{}, ErrNotFound
}

// ActiveOrders returns orders that are Pending or In Progress.
func (s *MemoryStore) ActiveOrders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Order
	for _, order := range s.orders {
		if order.Active() {
			out = append(out, order)
		}
	}
	return out
}

// UpdateOrderStatus moves an order through the status state machine. A
// transition to Completed stamps the actual delivery time.
func (s *MemoryStore) UpdateOrderStatus(id int, status string) (Order, error) {
	if !validOrderStatus(status) {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}

		allowed := false
		for _, next := range orderTransitions[s.orders[i].Status] {
			if next == status {
				allowed = true
				break
			}
		}
		if !allowed {
			return Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.orders[i].Status, status)
		}

		s.orders[i].Status = status
		if status == OrderCompleted {
			now := time.Now().UTC()
			s.orders[i].ActualDelivery = &now
		}
		return s.orders[i], nil
	}
	return Order{}, ErrNotFound
}

// CreateOrderItem assigns the next identifier, inserts the line, and returns
// it.
func (s *MemoryStore) CreateOrderItem(item OrderItem) OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextOrderItemID
	s.nextOrderItemID++
	s.orderItems = append(s.orderItems, item)
	return item
}

// OrderItemsByOrder returns the lines belonging to an order.
func (s *MemoryStore) OrderItemsByOrder(orderID int) []OrderItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []OrderItem
	for _, item := range s.orderItems {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out
}

// LogActivity assigns the next identifier and creation timestamp, inserts
// the activity, and returns it.
func (s *MemoryStore) LogActivity(activity Activity) Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logActivityLocked(activity)
}

func (s *MemoryStore) logActivityLocked(activity Activity) Activity {
	activity.ID = s.nextActivityID
	s.nextActivityID++
	activity.CreatedAt = time.Now().UTC()
	s.activities = append(s.activities, activity)
	return activity
}

// Activities returns up to limit activities sorted newest-first.
func (s *MemoryStore) Activities(limit int) []Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Activity, len(s.activities))
	copy(out, s.activities)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CreateInventoryTransaction records a stock movement and applies it to the
// referenced product: IN adds the quantity, OUT subtracts it, ADJUSTMENT
// sets the stock level outright. An activity entry is logged alongside.
func (s *MemoryStore) CreateInventoryTransaction(tx InventoryTransaction) (InventoryTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var product *Product
	for i := range s.products {
		if s.products[i].ID == tx.ProductID {
			product = &s.products[i]
			break
		}
	}
	if product == nil {
		return InventoryTransaction{}, ErrNotFound
	}

	switch tx.Type {
	case TxIn:
		product.CurrentStock += tx.Quantity
	case TxOut:
		if product.CurrentStock < tx.Quantity {
			return InventoryTransaction{}, fmt.Errorf("%w: %d on hand, %d requested", ErrInsufficientStock, product.CurrentStock, tx.Quantity)
		}
		product.CurrentStock -= tx.Quantity
	case TxAdjustment:
		product.CurrentStock = tx.Quantity
	default:
		return InventoryTransaction{}, fmt.Errorf("%w: %q", ErrInvalidTransactionType, tx.Type)
	}

	tx.ID = s.nextTransactionID
	s.nextTransactionID++
	tx.CreatedAt = time.Now().UTC()
	s.transactions = append(s.transactions, tx)

	s.logActivityLocked(Activity{
		Type:              "Inventory",
		Description:       fmt.Sprintf("Stock %s for %s", tx.Type, product.Name),
		Details:           tx.Reason,
		Status:            "Completed",
		RelatedEntityType: "product",
		RelatedEntityID:   product.ID,
	})

	return tx, nil
}

// InventoryTransactions returns all recorded stock movements.
func (s *MemoryStore) InventoryTransactions() []InventoryTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]InventoryTransaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}
