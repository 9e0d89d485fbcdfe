package domain

import (
	"sort"
	"time"
)

const (
	dashboardDays       = 7
	dashboardRecentN    = 5
	dashboardTopN       = 5
	orderTypeUrgentTag  = "Urgente"
	orderTypeWeeklyTag  = "Semanal"
	dashboardDateLayout = "2006-01-02 15:04"
)

type DashboardCounts struct {
	TotalOrders     int `json:"totalOrders"`
	ActiveProducts  int `json:"activeProducts"`
	TotalUsers      int `json:"totalUsers"`
	UrgentOrders    int `json:"urgentOrders"`
	PendingOrders   int `json:"pendingOrders"`
	CompletedOrders int `json:"completedOrders"` // completed or delivered
}

type DailyOrders struct {
	Date   string `json:"date"`  // YYYY-MM-DD in the organization timezone
	Label  string `json:"label"` // e.g. "Mon 14"
	Orders int    `json:"orders"`
	Urgent int    `json:"urgent"`
}

type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int         `json:"count"`
}

type RecentOrder struct {
	OrderID    string      `json:"orderID"`
	Restaurant string      `json:"restaurant"`
	Type       string      `json:"type"`
	Items      int         `json:"items"`
	Date       string      `json:"date"`
	Status     OrderStatus `json:"status"`
}

type TopProduct struct {
	ProductID string `json:"productID"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// DashboardOverview is the admin rollup. It is recomputed on every request.
type DashboardOverview struct {
	Counts          DashboardCounts `json:"counts"`
	Last7Days       []DailyOrders   `json:"last7Days"`
	StatusBreakdown []StatusCount   `json:"statusBreakdown"`
	RecentOrders    []RecentOrder   `json:"recentOrders"`
	TopProducts     []TopProduct    `json:"topProducts"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}

// EmptyDashboard is returned when source data could not be loaded.
func EmptyDashboard(now time.Time) DashboardOverview {
	return DashboardOverview{
		Last7Days:       []DailyOrders{},
		StatusBreakdown: []StatusCount{},
		RecentOrders:    []RecentOrder{},
		TopProducts:     []TopProduct{},
		GeneratedAt:     now,
	}
}

// BuildDashboard reduces the organization's orders, products and users into the overview.
func BuildDashboard(orders []Order, products []Product, users []User, now time.Time, loc *time.Location) DashboardOverview {
	if loc == nil {
		loc = time.UTC
	}
	return DashboardOverview{
		Counts:          CountDashboard(orders, products, users),
		Last7Days:       OrdersLastDays(orders, now, loc, dashboardDays),
		StatusBreakdown: OrderStatusBreakdown(orders),
		RecentOrders:    RecentOrders(orders, loc, dashboardRecentN),
		TopProducts:     TopProducts(orders, dashboardTopN),
		GeneratedAt:     now,
	}
}

func CountDashboard(orders []Order, products []Product, users []User) DashboardCounts {
	c := DashboardCounts{TotalOrders: len(orders), TotalUsers: len(users)}
	for _, p := range products {
		if p.IsActive {
			c.ActiveProducts++
		}
	}
	for _, o := range orders {
		if o.IsUrgent {
			c.UrgentOrders++
		}
		switch o.Status {
		case OrderPending:
			c.PendingOrders++
		case OrderCompleted, OrderDelivered:
			c.CompletedOrders++
		}
	}
	return c
}

// OrdersLastDays counts orders per calendar day in loc for the last n days, today included, oldest first.
func OrdersLastDays(orders []Order, now time.Time, loc *time.Location, n int) []DailyOrders {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	days := make([]DailyOrders, n)
	index := make(map[string]int, n)
	for i := 0; i < n; i++ {
		d := today.AddDate(0, 0, i-(n-1))
		key := d.Format("2006-01-02")
		days[i] = DailyOrders{Date: key, Label: d.Format("Mon 2")}
		index[key] = i
	}
	for _, o := range orders {
		key := o.CreatedAt.In(loc).Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			continue
		}
		days[i].Orders++
		if o.IsUrgent {
			days[i].Urgent++
		}
	}
	return days
}

// OrderStatusBreakdown counts per status in lifecycle order, omitting zeros.
func OrderStatusBreakdown(orders []Order) []StatusCount {
	counts := make(map[OrderStatus]int)
	for _, o := range orders {
		counts[o.Status]++
	}
	out := make([]StatusCount, 0, len(OrderStatuses))
	for _, st := range OrderStatuses {
		if n := counts[st]; n > 0 {
			out = append(out, StatusCount{Status: st, Count: n})
		}
	}
	return out
}

// RecentOrders returns the n newest orders reduced for display.
func RecentOrders(orders []Order, loc *time.Location, n int) []RecentOrder {
	sorted := make([]Order, len(orders))
	copy(sorted, orders)
	SortOrdersNewestFirst(sorted)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]RecentOrder, 0, len(sorted))
	for _, o := range sorted {
		kind := orderTypeWeeklyTag
		if o.IsUrgent {
			kind = orderTypeUrgentTag
		}
		out = append(out, RecentOrder{
			OrderID:    o.OrderID,
			Restaurant: o.RestaurantName,
			Type:       kind,
			Items:      o.TotalItems,
			Date:       o.CreatedAt.In(loc).Format(dashboardDateLayout),
			Status:     o.Status,
		})
	}
	return out
}

// TopProducts sums line item quantities per product ID and returns the n largest.
func TopProducts(orders []Order, n int) []TopProduct {
	totals := make(map[string]*TopProduct)
	for _, o := range orders {
		for _, li := range o.Items {
			key := li.ProductID
			if key == "" {
				key = "name:" + li.ProductName
			}
			tp, ok := totals[key]
			if !ok {
				tp = &TopProduct{ProductID: li.ProductID, Name: li.ProductName}
				totals[key] = tp
			}
			tp.Quantity += li.Quantity
		}
	}
	out := make([]TopProduct, 0, len(totals))
	for _, tp := range totals {
		out = append(out, *tp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
