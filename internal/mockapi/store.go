package mockapi

import (
	"encoding/json"
	"time"
)

const dateLayout = "2006-01-02"

// Seed is the fixture set a Store starts from and returns to on Reset.
type Seed struct {
	Orders    []Order
	Customers []Customer
	Inventory []InventoryItem
	Tailors   []Tailor
	Products  []Product
	Dashboard Dashboard
}

// Store owns the five mutable collections and the static dashboard. It is
// built by the composition root and handed to whatever serves the mock API;
// nothing in this package keeps global state.
type Store struct {
	Orders    *Collection[Order]
	Customers *Collection[Customer]
	Inventory *Collection[InventoryItem]
	Tailors   *Collection[Tailor]
	Products  *Collection[Product]

	seed Seed
	now  func() time.Time
}

type StoreOption func(*Store)

// WithClock overrides the clock used for creation stamps and product ids.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(seed Seed, opts ...StoreOption) *Store {
	s := &Store{
		Orders:    NewCollection(EntityOrder, seed.Orders),
		Customers: NewCollection(EntityCustomer, seed.Customers),
		Inventory: NewCollection(EntityInventory, seed.Inventory),
		Tailors:   NewCollection(EntityTailor, seed.Tailors),
		Products:  NewCollection(EntityProduct, seed.Products),
		seed:      seed,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset puts every collection back to the seed.
func (s *Store) Reset() {
	s.Orders.replace(s.seed.Orders)
	s.Customers.replace(s.seed.Customers)
	s.Inventory.replace(s.seed.Inventory)
	s.Tailors.replace(s.seed.Tailors)
	s.Products.replace(s.seed.Products)
}

func (s *Store) Dashboard() Dashboard { return s.seed.Dashboard }

func (s *Store) today() string { return s.now().Format(dateLayout) }

// Orders

// ListOrders filters on id, customer name and order type.
func (s *Store) ListOrders(q ListQuery) []Order {
	n := q.needle()
	return filter(s.Orders.List(), func(o Order) bool {
		return containsFold(n, o.ID, o.CustomerName, o.OrderType)
	})
}

func (s *Store) CreateOrder(obj json.RawMessage) (Order, error) {
	rec, err := decodeRecord[Order](obj)
	if err != nil {
		return Order{}, err
	}
	return s.Orders.Create(func(taken func(string) bool) (Order, error) {
		id, err := orderIDs.next(taken)
		if err != nil {
			return Order{}, err
		}
		rec.ID = id
		if rec.Date == "" {
			rec.Date = s.today()
		}
		return rec, nil
	})
}

// Customers

// ListCustomers filters on name, email and id, then paginates.
func (s *Store) ListCustomers(q ListQuery) ([]Customer, PageMeta) {
	n := q.needle()
	matched := filter(s.Customers.List(), func(c Customer) bool {
		return containsFold(n, c.Name, c.Email, c.ID)
	})
	return paginate(matched, q.Page, q.Limit)
}

func (s *Store) CreateCustomer(obj json.RawMessage) (Customer, error) {
	rec, err := decodeRecord[Customer](obj)
	if err != nil {
		return Customer{}, err
	}
	return s.Customers.Create(func(taken func(string) bool) (Customer, error) {
		id, err := customerIDs.next(taken)
		if err != nil {
			return Customer{}, err
		}
		rec.ID = id
		if rec.Type == "" {
			rec.Type = "New"
		}
		return rec, nil
	})
}

// Inventory

// ListInventory filters on name and sku.
func (s *Store) ListInventory(q ListQuery) []InventoryItem {
	n := q.needle()
	return filter(s.Inventory.List(), func(it InventoryItem) bool {
		return containsFold(n, it.Name, it.SKU)
	})
}

func (s *Store) CreateInventoryItem(obj json.RawMessage) (InventoryItem, error) {
	rec, err := decodeRecord[InventoryItem](obj)
	if err != nil {
		return InventoryItem{}, err
	}
	return s.Inventory.Create(func(taken func(string) bool) (InventoryItem, error) {
		id, err := inventoryIDs.next(taken)
		if err != nil {
			return InventoryItem{}, err
		}
		rec.ID = id
		rec.LastRestocked = s.today()
		return rec, nil
	})
}

// Tailors

// ListTailors filters on name, id and specialization. Tailors carry no sku,
// so the id stands in for it.
func (s *Store) ListTailors(q ListQuery) []Tailor {
	n := q.needle()
	return filter(s.Tailors.List(), func(t Tailor) bool {
		return containsFold(n, t.Name, t.ID, t.Specialization)
	})
}

func (s *Store) CreateTailor(obj json.RawMessage) (Tailor, error) {
	rec, err := decodeRecord[Tailor](obj)
	if err != nil {
		return Tailor{}, err
	}
	return s.Tailors.Create(func(taken func(string) bool) (Tailor, error) {
		id, err := tailorIDs.next(taken)
		if err != nil {
			return Tailor{}, err
		}
		rec.ID = id
		rec.CurrentLoad = 0
		rec.JoinedDate = s.today()
		return rec, nil
	})
}

// Products

// ListProducts filters on name, sku, category and description, plus an exact
// category match unless the category is empty or AllCategories.
func (s *Store) ListProducts(q ListQuery) []Product {
	n := q.needle()
	category := q.Category
	if category == AllCategories {
		category = ""
	}
	return filter(s.Products.List(), func(p Product) bool {
		if category != "" && p.Category != category {
			return false
		}
		return containsFold(n, p.Name, p.SKU, p.Category, p.Description)
	})
}

func (s *Store) CreateProduct(obj json.RawMessage) (Product, error) {
	rec, err := decodeRecord[Product](obj)
	if err != nil {
		return Product{}, err
	}
	return s.Products.Create(func(taken func(string) bool) (Product, error) {
		id, err := nextProductID(s.now(), taken)
		if err != nil {
			return Product{}, err
		}
		rec.ID = id
		return rec, nil
	})
}
