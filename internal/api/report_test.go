package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_system/internal/domain"
)

// seedSales plants a small fixed order history inside August 2026
func seedSales(t *testing.T, env *testEnv) {
	t.Helper()
	day := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	satay := domain.MenuItem{Name: "Chicken Satay", Category: "Mains", Price: 10, Available: true}
	tea := domain.MenuItem{Name: "Iced Tea", Category: "Drinks", Price: 5, Available: true}
	require.NoError(t, env.db.Create(&satay).Error)
	require.NoError(t, env.db.Create(&tea).Error)

	orders := []domain.Order{
		{
			OrderType: domain.OrderTypeDineIn, Status: domain.OrderStatusCompleted, Total: 20, CreatedAt: day,
			Items: []domain.OrderItem{{MenuItemID: satay.ID, Quantity: 2, Price: 10}},
		},
		{
			OrderType: domain.OrderTypeTakeAway, Status: domain.OrderStatusHold, Total: 5, CreatedAt: day.Add(time.Hour),
			Items: []domain.OrderItem{{MenuItemID: tea.ID, Quantity: 1, Price: 5}},
		},
		{
			OrderType: domain.OrderTypeDineIn, Status: domain.OrderStatusCancelled, Total: 30, CreatedAt: day.Add(2 * time.Hour),
			Items: []domain.OrderItem{{MenuItemID: satay.ID, Quantity: 3, Price: 10}},
		},
	}
	for i := range orders {
		require.NoError(t, env.db.Create(&orders[i]).Error)
	}
}

func TestSalesReportRequiresReportRole(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("till", "correct-horse", domain.RoleCashier)
	ck := env.mustLogin("till", "correct-horse")

	w := env.do(http.MethodGet, "/reports/sales", nil, ck)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodGet, "/reports/sales", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSalesReportEmptyRangeIsZeroFilled(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("boss", "correct-horse", domain.RoleAdmin)
	ck := env.mustLogin("boss", "correct-horse")

	// A range with no orders at all
	w := env.do(http.MethodGet, "/reports/sales?start_date=2020-01-01&end_date=2020-01-31", nil, ck)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := parseBody(t, w)["data"].(map[string]any)
	summary := data["summary"].(map[string]any)
	assert.Equal(t, 0.0, summary["total_orders"])
	assert.Equal(t, 0.0, summary["completed_orders"])
	assert.Equal(t, 0.0, summary["total_revenue"])
	assert.Equal(t, "2020-01-01", summary["start_date"])
	assert.Equal(t, "2020-01-31", summary["end_date"])

	// Empty collections, never null, and the status breakdown still lists
	// every status with a zero count
	assert.Len(t, data["by_type"].([]any), 0)
	assert.Len(t, data["top_items"].([]any), 0)
	statuses := data["status_breakdown"].([]any)
	require.Len(t, statuses, 3)
	for _, row := range statuses {
		assert.Equal(t, 0.0, row.(map[string]any)["orders"])
	}
}

func TestSalesReportAggregates(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("boss", "correct-horse", domain.RoleAdmin)
	ck := env.mustLogin("boss", "correct-horse")
	seedSales(t, env)

	w := env.do(http.MethodGet, "/reports/sales?start_date=2026-08-01&end_date=2026-08-31", nil, ck)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := parseBody(t, w)["data"].(map[string]any)

	// Summary counts every order; revenue counts only completed ones
	summary := data["summary"].(map[string]any)
	assert.Equal(t, 3.0, summary["total_orders"])
	assert.Equal(t, 1.0, summary["completed_orders"])
	assert.Equal(t, 20.0, summary["total_revenue"])

	// Per type: two Dine In (one completed), one Take Away (held)
	byType := map[string]map[string]any{}
	for _, row := range data["by_type"].([]any) {
		m := row.(map[string]any)
		byType[m["order_type"].(string)] = m
	}
	require.Len(t, byType, 2)
	assert.Equal(t, 2.0, byType[domain.OrderTypeDineIn]["orders"])
	assert.Equal(t, 20.0, byType[domain.OrderTypeDineIn]["revenue"])
	assert.Equal(t, 1.0, byType[domain.OrderTypeTakeAway]["orders"])
	assert.Equal(t, 0.0, byType[domain.OrderTypeTakeAway]["revenue"])

	// Top items are ordered by quantity with a per-status split
	topItems := data["top_items"].([]any)
	require.Len(t, topItems, 2)
	first := topItems[0].(map[string]any)
	assert.Equal(t, "Chicken Satay", first["name"])
	assert.Equal(t, 5.0, first["total_qty"])
	assert.Equal(t, 2.0, first["completed_qty"])
	assert.Equal(t, 0.0, first["hold_qty"])
	assert.Equal(t, 3.0, first["cancelled_qty"])
	second := topItems[1].(map[string]any)
	assert.Equal(t, "Iced Tea", second["name"])
	assert.Equal(t, 1.0, second["total_qty"])

	// Every status shows up exactly once
	counts := map[string]float64{}
	for _, row := range data["status_breakdown"].([]any) {
		m := row.(map[string]any)
		counts[m["status"].(string)] = m["orders"].(float64)
	}
	assert.Equal(t, map[string]float64{
		domain.OrderStatusCompleted: 1,
		domain.OrderStatusHold:      1,
		domain.OrderStatusCancelled: 1,
	}, counts)
}

func TestSalesReportIsCachedPerRange(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("boss", "correct-horse", domain.RoleAdmin)
	ck := env.mustLogin("boss", "correct-horse")
	seedSales(t, env)

	path := "/reports/sales?start_date=2026-08-01&end_date=2026-08-31"
	first := parseBody(t, env.do(http.MethodGet, path, nil, ck))
	assert.Equal(t, false, first["cached"])
	second := parseBody(t, env.do(http.MethodGet, path, nil, ck))
	assert.Equal(t, true, second["cached"])
	// The cached body matches the fresh one
	assert.Equal(t, first["data"], second["data"])

	// A different range is its own cache entry
	other := parseBody(t, env.do(http.MethodGet, "/reports/sales?start_date=2026-08-15&end_date=2026-08-15", nil, ck))
	assert.Equal(t, false, other["cached"])

	// New orders drop every cached report
	menuItem := domain.MenuItem{Name: "Kopi", Price: 3.5, Available: true}
	require.NoError(t, env.db.Create(&menuItem).Error)
	w := env.do(http.MethodPost, "/orders/create", map[string]any{
		"order_type": domain.OrderTypeDineIn,
		"items":      []map[string]any{{"menu_item_id": menuItem.ID, "quantity": 1}},
	}, ck)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	third := parseBody(t, env.do(http.MethodGet, path, nil, ck))
	assert.Equal(t, false, third["cached"])
}
