package redisx

import "time"

const (
	// Board hash: tab:board -> {tab_id: tab json}
	KeyBoard = "tab:board"

	// Recent settlements, newest first: settlement:recent -> list of settlement json
	KeyRecentSettlements = "settlement:recent"

	// Day totals per method: sales:{yyyy-mm-dd} -> hash {method: gross}
	KeyDailySales = "sales:%s"
)

const RecentSettlementsLimit = 50

var (
	TTLBoard      = 12 * time.Hour
	TTLDailySales = 72 * time.Hour
)
