package services

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/tab-pos/models"
)

// SettlementMetrics are running counters since start-up.
type SettlementMetrics struct {
	TotalSettlements   int64                      `json:"total_settlements"`
	PartialSettlements int64                      `json:"partial_settlements"`
	WalkUpSales        int64                      `json:"walk_up_sales"`
	Gross              decimal.Decimal            `json:"gross"`
	Fees               decimal.Decimal            `json:"fees"`
	Net                decimal.Decimal            `json:"net"`
	GrossByMethod      map[string]decimal.Decimal `json:"gross_by_method"`
	OccupiedTabs       int                        `json:"occupied_tabs"`
}

// SettlementMonitor is a Notifier that keeps SettlementMetrics.
type SettlementMonitor struct {
	mutex   sync.Mutex
	metrics SettlementMetrics
}

func NewSettlementMonitor() *SettlementMonitor {
	return &SettlementMonitor{metrics: SettlementMetrics{
		Gross:         decimal.Zero,
		Fees:          decimal.Zero,
		Net:           decimal.Zero,
		GrossByMethod: map[string]decimal.Decimal{},
	}}
}

func (m *SettlementMonitor) TabsChanged(tabs []models.Tab) {
	occupied := 0
	for _, t := range tabs {
		if t.Status == models.TabOccupied {
			occupied++
		}
	}
	m.mutex.Lock()
	m.metrics.OccupiedTabs = occupied
	m.mutex.Unlock()
}

func (m *SettlementMonitor) Settled(s Settlement) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.metrics.TotalSettlements++
	if s.Partial {
		m.metrics.PartialSettlements++
	}
	if s.TabID == "" {
		m.metrics.WalkUpSales++
	}
	m.metrics.Gross = m.metrics.Gross.Add(s.Total)
	m.metrics.Fees = m.metrics.Fees.Add(s.Fee)
	m.metrics.Net = m.metrics.Net.Add(s.Net)
	name := s.Revenue.PaymentMethodName
	m.metrics.GrossByMethod[name] = m.metrics.GrossByMethod[name].Add(s.Total)
}

// GetMetrics returns a copy of the current counters.
func (m *SettlementMonitor) GetMetrics() SettlementMetrics {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	out := m.metrics
	out.GrossByMethod = make(map[string]decimal.Decimal, len(m.metrics.GrossByMethod))
	for k, v := range m.metrics.GrossByMethod {
		out.GrossByMethod[k] = v
	}
	return out
}
