package mockapi

import "github.com/shopspring/decimal"

// DefaultSeed is the fixture set the dashboard ships with.
func DefaultSeed() Seed {
	return Seed{
		Orders:    defaultOrders(),
		Customers: defaultCustomers(),
		Inventory: defaultInventory(),
		Tailors:   defaultTailors(),
		Products:  defaultProducts(),
		Dashboard: defaultDashboard(),
	}
}

func defaultOrders() []Order {
	return []Order{
		{ID: "#ORD-7829", CustomerName: "Priya Sharma", OrderType: "Bridal Lehenga", Status: "In Progress", Amount: decimal.NewFromInt(45000), Date: "2024-01-15", Items: 1, DeliveryDate: "2024-02-10"},
		{ID: "#ORD-7830", CustomerName: "Ananya Iyer", OrderType: "Silk Saree Blouse", Status: "Pending", Amount: decimal.NewFromInt(3500), Date: "2024-01-16", Items: 2, DeliveryDate: "2024-01-25"},
		{ID: "#ORD-7831", CustomerName: "Meera Kapoor", OrderType: "Anarkali Suit", Status: "Completed", Amount: decimal.NewFromInt(12800), Date: "2024-01-12", Items: 1, DeliveryDate: "2024-01-20"},
		{ID: "#ORD-7832", CustomerName: "Kavya Reddy", OrderType: "Readymade Kurti", Status: "Delivered", Amount: decimal.NewFromInt(2400), Date: "2024-01-10", Items: 3},
		{ID: "#ORD-7833", CustomerName: "Riya Menon", OrderType: "Sherwani Alteration", Status: "Cancelled", Amount: decimal.NewFromInt(1800), Date: "2024-01-09", Items: 1},
	}
}

func defaultCustomers() []Customer {
	return []Customer{
		{ID: "#JD-001", Name: "Priya Sharma", Email: "priya.sharma@example.com", Phone: "+91 98765 43210", Type: "VIP"},
		{ID: "#JD-002", Name: "Ananya Iyer", Email: "ananya.iyer@example.com", Phone: "+91 98450 11223", Type: "Regular"},
		{ID: "#JD-003", Name: "Meera Kapoor", Email: "meera.kapoor@example.com", Phone: "+91 99001 44556", Type: "Regular"},
		{ID: "#JD-004", Name: "Kavya Reddy", Email: "kavya.reddy@example.com", Phone: "+91 90080 77889", Type: "New"},
		{ID: "#JD-005", Name: "Riya Menon", Email: "riya.menon@example.com", Phone: "+91 97400 99001", Type: "VIP"},
		{ID: "#JD-006", Name: "Sneha Patel", Email: "sneha.patel@example.com", Phone: "+91 98200 33445", Type: "New"},
	}
}

func defaultInventory() []InventoryItem {
	return []InventoryItem{
		{ID: "#MAT-1001", Name: "Champagne Gold Silk", SKU: "SLK-108", Type: "Fabric", Quantity: 45, Unit: "meters", MinStockLevel: 20, StockStatus: "In Stock", LastRestocked: "2024-01-05"},
		{ID: "#MAT-1002", Name: "Royal Crimson Velvet", SKU: "VLV-402", Type: "Fabric", Quantity: 8, Unit: "meters", MinStockLevel: 15, StockStatus: "Low Stock", LastRestocked: "2023-12-18"},
		{ID: "#MAT-1003", Name: "Zari Border Lace", SKU: "LCE-215", Type: "Trim", Quantity: 120, Unit: "meters", MinStockLevel: 50, StockStatus: "In Stock", LastRestocked: "2024-01-10"},
		{ID: "#MAT-1004", Name: "Pearl Buttons", SKU: "BTN-033", Type: "Accessory", Quantity: 0, Unit: "pieces", MinStockLevel: 100, StockStatus: "Out of Stock", LastRestocked: "2023-11-30"},
	}
}

func defaultTailors() []Tailor {
	return []Tailor{
		{ID: "#TLR-101", Name: "Ramesh Kumar", Specialization: "Bridal Wear", Phone: "+91 98111 22334", Status: "Available", CurrentLoad: 3, JoinedDate: "2021-06-01"},
		{ID: "#TLR-102", Name: "Sunita Devi", Specialization: "Blouses", Phone: "+91 98222 33445", Status: "Busy", CurrentLoad: 7, JoinedDate: "2022-03-15"},
		{ID: "#TLR-103", Name: "Abdul Rahman", Specialization: "Sherwanis", Phone: "+91 98333 44556", Status: "On Leave", CurrentLoad: 0, JoinedDate: "2020-11-20"},
	}
}

func defaultProducts() []Product {
	return []Product{
		{
			ID: "PRD-1704067200000-a1b2c3d4e", Name: "Banarasi Silk Saree", SKU: "SAR-001",
			Price: decimal.NewFromInt(18500), Category: "Sarees", StockStatus: "In Stock",
			Description: "Handwoven Banarasi silk with gold zari motifs",
			Images:      []string{"/images/products/banarasi-1.jpg", "/images/products/banarasi-2.jpg"},
		},
		{
			ID: "PRD-1704153600000-f5g6h7i8j", Name: "Chikankari Kurti", SKU: "KUR-014",
			Price: decimal.NewFromInt(2900), Category: "Kurtis", StockStatus: "Low Stock",
			Description: "Lucknowi hand embroidery on georgette",
			Images:      []string{"/images/products/chikankari-1.jpg"},
		},
		{
			ID: "PRD-1704240000000-k9l0m1n2o", Name: "Velvet Bridal Lehenga", SKU: "LEH-007",
			Price: decimal.NewFromInt(72000), Category: "Lehengas", StockStatus: "Made to Order",
			Description: "Crimson velvet with dabka and zardozi work",
			Videos:      []string{"/videos/products/lehenga-007.mp4"},
			Image360:    "/images/products/lehenga-007-360.jpg",
		},
	}
}

func defaultDashboard() Dashboard {
	return Dashboard{
		Stats: DashboardStats{
			TodaysRevenue:       45200,
			NewStitchingOrders:  12,
			TotalBoutiqueOrders: 156,
			PendingDeliveries:   8,
			LowStockAlerts:      3,
			RevenueGrowth:       12.5,
		},
		Activity: []RecentActivity{
			{ID: "act-1", Action: "New Order", Description: "Priya Sharma placed a bridal lehenga order", Time: "10 min ago", Icon: "shopping_bag", IconBg: "bg-blue-100", IconColor: "text-blue-600"},
			{ID: "act-2", Action: "Payment Received", Description: "₹12,800 received for #ORD-7831", Time: "1 hour ago", Icon: "payments", IconBg: "bg-green-100", IconColor: "text-green-600"},
			{ID: "act-3", Action: "Low Stock", Description: "Royal Crimson Velvet is below minimum level", Time: "3 hours ago", Icon: "inventory", IconBg: "bg-amber-100", IconColor: "text-amber-600"},
			{ID: "act-4", Action: "Task Assigned", Description: "#ORD-7830 assigned to Sunita Devi", Time: "Yesterday", Icon: "content_cut", IconBg: "bg-purple-100", IconColor: "text-purple-600"},
		},
		Urgent: []UrgentDelivery{
			{ID: "#ORD-7830", CustomerName: "Ananya Iyer", OrderType: "Silk Saree Blouse", DueTime: "Today, 5:00 PM", UrgentLevel: "high", ImageURL: "/images/urgent/blouse.jpg"},
			{ID: "#ORD-7829", CustomerName: "Priya Sharma", OrderType: "Bridal Lehenga", DueTime: "Tomorrow, 11:00 AM", UrgentLevel: "medium", ImageURL: "/images/urgent/lehenga.jpg"},
		},
		Sales: []SalesData{
			{Day: "Mon", Stitching: 12, Products: 8},
			{Day: "Tue", Stitching: 15, Products: 10},
			{Day: "Wed", Stitching: 9, Products: 14},
			{Day: "Thu", Stitching: 18, Products: 11},
			{Day: "Fri", Stitching: 22, Products: 16},
			{Day: "Sat", Stitching: 27, Products: 21},
			{Day: "Sun", Stitching: 14, Products: 9},
		},
	}
}
