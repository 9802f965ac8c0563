package model

type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int64       `json:"count"`
}

type TopProduct struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

type DashboardStats struct {
	TotalOrders   int64         `json:"total_orders"`
	Revenue       float64       `json:"revenue"`
	ActiveCoupons int64         `json:"active_coupons"`
	ByStatus      []StatusCount `json:"by_status"`
	TopProducts   []TopProduct  `json:"top_products"`
}
