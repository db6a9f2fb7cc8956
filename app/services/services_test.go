package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mahjong/app/models/fortune"
	"mahjong/app/models/prediction"
	"mahjong/pkg/ai"
	"mahjong/pkg/app"
	"mahjong/pkg/database"
	"mahjong/pkg/database/migrations"
	"mahjong/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// 内存库只在单个连接内可见
	db, err := database.Connect(sqlite.Open(":memory:"), logger.NewGormLogger(), database.PoolConfig{MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, migrations.RegisterTables()))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func fixedClock() Clock {
	now := time.Date(2025, 3, 8, 10, 30, 0, 0, app.Location())
	return func() time.Time { return now }
}

type fakeAI struct {
	mu           sync.Mutex
	reading      prediction.Reading
	fortune      fortune.Data
	err          error
	readingCalls int
	fortuneCalls int
}

func newFakeAI() *fakeAI {
	return &fakeAI{
		reading: prediction.Reading{
			Direction:   "东南",
			LuckyNumber: 8,
			LuckyColor:  "红色",
			LuckyItem:   "玉佩",
			Advice:      "坐东南，稳中求胜",
			GoodFor:     []string{"打牌"},
			BadFor:      []string{"远行"},
			Bazi:        prediction.Bazi{Year: "庚午", Month: "壬午", Day: "甲子"},
		},
		fortune: fortune.Data{
			LunarDate:      "二月初九",
			ChineseZodiac:  "兔",
			GoodFor:        []string{"打牌", "聚会"},
			BadFor:         []string{"远行"},
			StarSign:       "角宿",
			LuckyDirection: "西北",
			LuckyNumber:    4,
			LuckyColor:     "黄色",
			LuckyItem:      "硬币",
			Advice:         "宜守不宜攻",
		},
	}
}

func (f *fakeAI) PersonalizedReading(_ context.Context, _ ai.Params) (prediction.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readingCalls++
	return f.reading, f.err
}

func (f *fakeAI) DailyFortune(_ context.Context, _ time.Time) (fortune.Data, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fortuneCalls++
	return f.fortune, f.err
}

type memoryCache struct {
	prefix string
	mu     sync.Mutex
	items  map[string]interface{}
	ttls   map[string]time.Duration
}

func newMemoryCache(prefix string) *memoryCache {
	return &memoryCache{prefix: prefix, items: map[string]interface{}{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Key(parts ...string) string {
	return strings.Join(append([]string{m.prefix}, parts...), ":")
}

func (m *memoryCache) GetJSON(_ context.Context, key string, dst interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return false, nil
	}
	*(dst.(*fortune.Data)) = v.(fortune.Data)
	return true, nil
}

func (m *memoryCache) SetJSON(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	m.ttls[key] = expiration
	return nil
}
