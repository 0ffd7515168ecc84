package dashboard

// Stats is the dashboard summary payload. All eight fields are plain
// numbers and never null: a failed or missing optional aggregate is
// reported as zero.
type Stats struct {
	Customers     int64   `json:"customers"`
	Suppliers     int64   `json:"suppliers"`
	Categories    int64   `json:"categories"`
	Products      int64   `json:"products"`
	TodaySales    float64 `json:"today_sales"`
	TodayExpenses float64 `json:"today_expenses"`
	WeekProfit    float64 `json:"week_profit"`
	MonthProfit   float64 `json:"month_profit"`
}
