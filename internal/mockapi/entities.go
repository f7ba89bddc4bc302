package mockapi

import "github.com/shopspring/decimal"

const (
	EntityOrder     = "order"
	EntityCustomer  = "customer"
	EntityInventory = "inventory"
	EntityTailor    = "tailor"
	EntityProduct   = "product"
)

func init() {
	// Amounts and prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Keyed interface {
	Key() string
}

type Order struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	OrderType    string          `json:"order_type"`
	Status       string          `json:"status"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Items        int             `json:"items,omitempty"`
	DeliveryDate string          `json:"delivery_date,omitempty"`
}

func (o Order) Key() string { return o.ID }

type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Type      string `json:"type"`
	AvatarURL string `json:"avatar_url"`
}

func (c Customer) Key() string { return c.ID }

// InventoryItem is a raw material. StockStatus is maintained by the caller;
// the store never recomputes it from Quantity.
type InventoryItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Type          string  `json:"type"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	MinStockLevel float64 `json:"min_stock_level"`
	StockStatus   string  `json:"stock_status,omitempty"`
	LastRestocked string  `json:"last_restocked,omitempty"`
}

func (i InventoryItem) Key() string { return i.ID }

type Tailor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
	Status         string `json:"status"`
	CurrentLoad    int    `json:"current_load"`
	JoinedDate     string `json:"joined_date,omitempty"`
}

func (t Tailor) Key() string { return t.ID }

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	StockStatus string          `json:"stock_status"`
	Description string          `json:"description,omitempty"`
	Images      []string        `json:"images,omitempty"`
	Videos      []string        `json:"videos,omitempty"`
	Image360    string          `json:"image_360,omitempty"`
}

func (p Product) Key() string { return p.ID }

// Dashboard payloads are static fixtures.

type DashboardStats struct {
	TodaysRevenue       int     `json:"todays_revenue"`
	NewStitchingOrders  int     `json:"new_stitching_orders"`
	TotalBoutiqueOrders int     `json:"total_boutique_orders"`
	PendingDeliveries   int     `json:"pending_deliveries"`
	LowStockAlerts      int     `json:"low_stock_alerts"`
	RevenueGrowth       float64 `json:"revenue_growth"`
}

type RecentActivity struct {
	ID          string `json:"id"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Icon        string `json:"icon"`
	IconBg      string `json:"icon_bg"`
	IconColor   string `json:"icon_color"`
}

type UrgentDelivery struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	OrderType    string `json:"order_type"`
	DueTime      string `json:"due_time"`
	UrgentLevel  string `json:"urgent_level"`
	ImageURL     string `json:"image_url"`
}

type SalesData struct {
	Day       string `json:"day"`
	Stitching int    `json:"stitching"`
	Products  int    `json:"products"`
}

type Dashboard struct {
	Stats    DashboardStats   `json:"stats"`
	Activity []RecentActivity `json:"activity"`
	Urgent   []UrgentDelivery `json:"urgent"`
	Sales    []SalesData      `json:"sales"`
}
