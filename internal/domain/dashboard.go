package domain

// LowStockMedicine is a catalog entry below the backend's stock alert
// threshold, surfaced on the admin dashboard.
type LowStockMedicine struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// DashboardStats is the read-only admin aggregate. Computed entirely by
// the backend; never mutated client-side.
type DashboardStats struct {
	TotalUsers        int64              `json:"totalUsers"`
	TotalOrders       int64              `json:"totalOrders"`
	TotalRevenue      float64            `json:"totalRevenue"`
	TotalMedicines    int64              `json:"totalMedicines"`
	TotalStock        int64              `json:"totalStock"`
	LowStockMedicines []LowStockMedicine `json:"lowStockMedicines"`
}
