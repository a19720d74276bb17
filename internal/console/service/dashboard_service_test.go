package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/cache"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/dto"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/repository"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/entity"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTrades(t *testing.T, db *gorm.DB, userID string, n int) {
	t.Helper()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		trade := entity.Trade{
			ID:         uuid.NewString(),
			UserID:     userID,
			Symbol:     "EURUSD",
			TradeType:  "buy",
			OpenedAt:   base.Add(time.Duration(i) * time.Hour),
			Pnl:        float64(i) - 3,
			PnlPercent: float64(i) / 10,
		}
		require.NoError(t, db.Create(&trade).Error)
	}
}

func newDashboardService(db *gorm.DB, statsCache cache.StatsCache) DashboardService {
	return NewDashboardService(
		repository.NewUserRepository(db),
		repository.NewAccountRepository(db),
		repository.NewTradeRepository(db),
		statsCache,
		logger.NewNop(),
	)
}

func TestSummaryZeroedStatsWithoutProfileRow(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(db, nil)

	summary, err := svc.Summary(context.Background(), "ghost-user")
	require.NoError(t, err)

	assert.Equal(t, dto.AggregatedStats{}, summary.Stats)
	assert.Empty(t, summary.Accounts)
	assert.Empty(t, summary.RecentTrades)
}

func TestSummaryReadsProfileTotals(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&entity.User{
		ID:          "user-1",
		FullName:    "Jo Trader",
		TotalProfit: 1234.56,
		TotalTrades: 42,
		WinRate:     61.9,
	}).Error)

	svc := newDashboardService(db, nil)
	summary, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1234.56, summary.Stats.TotalProfit)
	assert.Equal(t, 42, summary.Stats.TotalTrades)
	assert.Equal(t, 61.9, summary.Stats.WinRate)
}

func TestSummaryTruncatesTradesForDisplay(t *testing.T) {
	db := newTestDB(t)
	seedTrades(t, db, "user-1", 12)

	svc := newDashboardService(db, nil)
	summary, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, summary.RecentTrades, 5)
	// Newest first.
	for i := 1; i < len(summary.RecentTrades); i++ {
		assert.True(t, summary.RecentTrades[i-1].OpenedAt.After(summary.RecentTrades[i].OpenedAt))
	}
}

func TestRecentTradesDefaultLimitAndOrdering(t *testing.T) {
	db := newTestDB(t)
	seedTrades(t, db, "user-1", 12)

	svc := newDashboardService(db, nil)

	trades, err := svc.RecentTrades(context.Background(), "user-1", 0)
	require.NoError(t, err)
	require.Len(t, trades, 10)
	for i := 1; i < len(trades); i++ {
		assert.True(t, trades[i-1].OpenedAt.After(trades[i].OpenedAt))
	}

	three, err := svc.RecentTrades(context.Background(), "user-1", 3)
	require.NoError(t, err)
	assert.Len(t, three, 3)
}

// failingTradeRepo simulates the trade store being unreachable.
type failingTradeRepo struct{}

func (failingTradeRepo) FindRecentByUserID(ctx context.Context, userID string, limit int) ([]entity.Trade, error) {
	return nil, errors.New("connection refused")
}

func TestSummaryRendersPartialDataWhenOneReadFails(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&entity.User{ID: "user-1", TotalProfit: 10, TotalTrades: 2, WinRate: 50}).Error)
	require.NoError(t, db.Create(&entity.MT5Account{
		ID: uuid.NewString(), UserID: "user-1", AccountName: "Main",
		Broker: "Pepperstone", AccountNumber: "1", Server: "Live",
		EncryptedPassword: "eA==", IsActive: true,
	}).Error)

	svc := NewDashboardService(
		repository.NewUserRepository(db),
		repository.NewAccountRepository(db),
		failingTradeRepo{},
		nil,
		logger.NewNop(),
	)

	summary, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)

	// Stats and accounts still render; trades degrade to empty.
	assert.Equal(t, 10.0, summary.Stats.TotalProfit)
	assert.Len(t, summary.Accounts, 1)
	assert.Empty(t, summary.RecentTrades)
}

// fakeStatsCache is an in-memory StatsCache stand-in.
type fakeStatsCache struct {
	mu      sync.Mutex
	entries map[string]dto.AggregatedStats
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{entries: make(map[string]dto.AggregatedStats)}
}

func (c *fakeStatsCache) Get(ctx context.Context, userID string) (*dto.AggregatedStats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	return &stats, true
}

func (c *fakeStatsCache) Set(ctx context.Context, userID string, stats *dto.AggregatedStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = *stats
}

// countingUserRepo counts profile reads behind a real repository.
type countingUserRepo struct {
	inner repository.UserRepository
	mu    sync.Mutex
	calls int
}

func (r *countingUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return r.inner.FindByID(ctx, id)
}

func (r *countingUserRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestSummaryUsesStatsCacheOnSecondRead(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&entity.User{ID: "user-1", TotalProfit: 99, TotalTrades: 7, WinRate: 71.4}).Error)

	users := &countingUserRepo{inner: repository.NewUserRepository(db)}
	svc := NewDashboardService(
		users,
		repository.NewAccountRepository(db),
		repository.NewTradeRepository(db),
		newFakeStatsCache(),
		logger.NewNop(),
	)

	for i := 0; i < 3; i++ {
		summary, err := svc.Summary(context.Background(), "user-1")
		require.NoError(t, err, fmt.Sprintf("summary call %d", i))
		assert.Equal(t, 99.0, summary.Stats.TotalProfit)
	}

	assert.Equal(t, 1, users.callCount())
}
