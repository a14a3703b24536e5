package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed sample_data.yaml
var sampleDataYAML []byte

// KPI is a single headline number with its week-over-week movement.
type KPI struct {
	Value  float64 `yaml:"value" json:"value"`
	Change float64 `yaml:"change" json:"change"`
	Trend  string  `yaml:"trend" json:"trend"`
}

// KPISet holds the four dashboard KPI cards.
type KPISet struct {
	TotalSales     KPI `yaml:"totalSales" json:"totalSales"`
	TotalOrders    KPI `yaml:"totalOrders" json:"totalOrders"`
	TotalCustomers KPI `yaml:"totalCustomers" json:"totalCustomers"`
	LowStockItems  KPI `yaml:"lowStockItems" json:"lowStockItems"`
}

// SalesPoint is one point on the weekly sales chart.
type SalesPoint struct {
	Name   string  `yaml:"name" json:"name"`
	Sales  float64 `yaml:"sales" json:"sales"`
	Orders int     `yaml:"orders" json:"orders"`
}

// CategoryShare is one slice of the product-category breakdown.
type CategoryShare struct {
	Name  string  `yaml:"name" json:"name"`
	Value float64 `yaml:"value" json:"value"`
	Color string  `yaml:"color" json:"color"`
}

// Alert is a recent activity notice shown on the dashboard.
type Alert struct {
	ID      int    `yaml:"id" json:"id"`
	Type    string `yaml:"type" json:"type"`
	Message string `yaml:"message" json:"message"`
	Time    string `yaml:"time" json:"time"`
}

// ProductStat is one row of the top-products table.
type ProductStat struct {
	Name     string  `yaml:"name" json:"name"`
	Sales    int     `yaml:"sales" json:"sales"`
	Revenue  float64 `yaml:"revenue" json:"revenue"`
	Category string  `yaml:"category" json:"category"`
}

// Dashboard is the full dashboard dataset.
type Dashboard struct {
	KPIs         KPISet          `yaml:"kpis" json:"kpis"`
	SalesData    []SalesPoint    `yaml:"salesData" json:"salesData"`
	ProductData  []CategoryShare `yaml:"productData" json:"productData"`
	RecentAlerts []Alert         `yaml:"recentAlerts" json:"recentAlerts"`
	TopProducts  []ProductStat   `yaml:"topProducts" json:"topProducts"`
}

var (
	loadOnce  sync.Once
	loaded    Dashboard
	loadError error
)

// Load returns the embedded demo dashboard dataset.
// The YAML fixture is parsed once; subsequent calls return the cached value.
func Load() (Dashboard, error) {
	loadOnce.Do(func() {
		loadError = yaml.Unmarshal(sampleDataYAML, &loaded)
	})
	if loadError != nil {
		return Dashboard{}, fmt.Errorf("parse dashboard fixture: %w", loadError)
	}
	return loaded, nil
}

// WeeklyTotals sums the sales and orders across the weekly chart points.
func (d Dashboard) WeeklyTotals() (sales float64, orders int) {
	for _, p := range d.SalesData {
		sales += p.Sales
		orders += p.Orders
	}
	return sales, orders
}

// ExportSummary holds roll-ups computed at export time.
type ExportSummary struct {
	WeeklySales  float64   `json:"weeklySales"`
	WeeklyOrders int       `json:"weeklyOrders"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

// exportPayload is the dashboard dataset plus the computed summary.
type exportPayload struct {
	Dashboard
	Summary ExportSummary `json:"summary"`
}

// Export serializes the dashboard as indented JSON with a timestamped
// download name, e.g. analytics-report-2024-03-15.json. The payload carries
// a summary block with the weekly sales and order totals.
func Export(d Dashboard, now time.Time) ([]byte, string, error) {
	sales, orders := d.WeeklyTotals()
	payload := exportPayload{
		Dashboard: d,
		Summary: ExportSummary{
			WeeklySales:  sales,
			WeeklyOrders: orders,
			GeneratedAt:  now.UTC(),
		},
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("marshal dashboard: %w", err)
	}
	name := fmt.Sprintf("analytics-report-%s.json", now.Format("2006-01-02"))
	return data, name, nil
}
