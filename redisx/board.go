package redisx

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/tab-pos/models"
	"github.com/yeremiapane/tab-pos/services"
	"github.com/yeremiapane/tab-pos/utils"
)

// BoardCache mirrors the tab board and recent settlements into Redis for display
// screens that do not hold a websocket. Writes are best effort.
type BoardCache struct {
	rdb     redis.Cmdable
	timeout time.Duration
}

func NewBoardCache(rdb redis.Cmdable) *BoardCache {
	return &BoardCache{rdb: rdb, timeout: 2 * time.Second}
}

func (b *BoardCache) TabsChanged(tabs []models.Tab) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	fields, err := boardFields(tabs)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("error encoding board")
		return
	}
	_, err = b.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, KeyBoard)
		p.HSet(ctx, KeyBoard, fields)
		p.Expire(ctx, KeyBoard, TTLBoard)
		return nil
	})
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("error caching board")
	}
}

func (b *BoardCache) Settled(s services.Settlement) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	raw, err := json.Marshal(s)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("error encoding settlement")
		return
	}
	day := DailySalesKey(s.Revenue.Date)
	gross, _ := s.Total.Float64()
	_, err = b.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, KeyRecentSettlements, raw)
		p.LTrim(ctx, KeyRecentSettlements, 0, RecentSettlementsLimit-1)
		p.HIncrByFloat(ctx, day, s.Revenue.PaymentMethodName, gross)
		p.Expire(ctx, day, TTLDailySales)
		return nil
	})
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("error caching settlement")
	}
}

// Board reads the cached board back, ordered by tab number.
func (b *BoardCache) Board(ctx context.Context) ([]models.Tab, error) {
	vals, err := b.rdb.HGetAll(ctx, KeyBoard).Result()
	if err != nil {
		return nil, err
	}
	return decodeBoard(vals)
}

func DailySalesKey(t time.Time) string {
	return fmt.Sprintf(KeyDailySales, t.Format("2006-01-02"))
}

func boardFields(tabs []models.Tab) (map[string]interface{}, error) {
	fields := make(map[string]interface{}, len(tabs))
	for _, t := range tabs {
		raw, err := json.Marshal(t)
		if err != nil {
			return nil, err
		}
		fields[t.ID] = string(raw)
	}
	return fields, nil
}

func decodeBoard(vals map[string]string) ([]models.Tab, error) {
	tabs := make([]models.Tab, 0, len(vals))
	for id, raw := range vals {
		var t models.Tab
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			return nil, fmt.Errorf("decode tab %s: %w", id, err)
		}
		tabs = append(tabs, t)
	}
	sort.Slice(tabs, func(i, j int) bool { return tabs[i].Number < tabs[j].Number })
	return tabs, nil
}
