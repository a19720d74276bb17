package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/cache"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/dto"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/repository"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/entity"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/apperrors"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"
)

const (
	// recentTradesFetchLimit caps the trade history query.
	recentTradesFetchLimit = 10
	// summaryTradesLimit is how many of the fetched trades the summary
	// panel actually shows.
	summaryTradesLimit = 5
	// recentTradesMaxLimit bounds the explicit /trades endpoint.
	recentTradesMaxLimit = 100
)

// DashboardService derives the summary view from a user's profile
// rollup, linked accounts and trade history. Pure read, no side effects
// beyond the best-effort stats cache.
type DashboardService interface {
	Summary(ctx context.Context, userID string) (*dto.DashboardSummary, error)
	RecentTrades(ctx context.Context, userID string, limit int) ([]dto.TradeResponse, error)
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	tradeRepo repository.TradeRepository,
	statsCache cache.StatsCache,
	logger *logger.Logger,
) DashboardService {
	return &dashboardService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		tradeRepo:   tradeRepo,
		statsCache:  statsCache,
		logger:      logger,
	}
}

type dashboardService struct {
	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
	tradeRepo   repository.TradeRepository
	statsCache  cache.StatsCache
	logger      *logger.Logger
}

// Summary issues the three independent reads concurrently and assembles
// whatever resolved. A failed read is logged and leaves its slot at the
// zero value so the page renders partial data instead of an error.
func (s *dashboardService) Summary(ctx context.Context, userID string) (*dto.DashboardSummary, error) {
	summary := &dto.DashboardSummary{
		Accounts:     []dto.AccountResponse{},
		RecentTrades: []dto.TradeResponse{},
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		summary.Stats = s.loadStats(ctx, userID)
	}()

	go func() {
		defer wg.Done()
		accounts, err := s.accountRepo.FindByUserID(ctx, userID)
		if err != nil {
			s.logger.Error("Failed to load accounts for dashboard", logger.ErrorField(err), logger.Field("user_id", userID))
			return
		}
		for _, account := range accounts {
			summary.Accounts = append(summary.Accounts, mapToAccountResponse(&account))
		}
	}()

	go func() {
		defer wg.Done()
		trades, err := s.tradeRepo.FindRecentByUserID(ctx, userID, recentTradesFetchLimit)
		if err != nil {
			s.logger.Error("Failed to load trades for dashboard", logger.ErrorField(err), logger.Field("user_id", userID))
			return
		}
		if len(trades) > summaryTradesLimit {
			trades = trades[:summaryTradesLimit]
		}
		for _, trade := range trades {
			summary.RecentTrades = append(summary.RecentTrades, mapToTradeResponse(&trade))
		}
	}()

	wg.Wait()
	return summary, nil
}

// RecentTrades returns the user's trade history, newest first.
func (s *dashboardService) RecentTrades(ctx context.Context, userID string, limit int) ([]dto.TradeResponse, error) {
	if limit <= 0 {
		limit = recentTradesFetchLimit
	}
	if limit > recentTradesMaxLimit {
		limit = recentTradesMaxLimit
	}

	trades, err := s.tradeRepo.FindRecentByUserID(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.NewTransportError("list trades", err)
	}

	responses := make([]dto.TradeResponse, 0, len(trades))
	for _, trade := range trades {
		responses = append(responses, mapToTradeResponse(&trade))
	}
	return responses, nil
}

// loadStats reads the rollup totals, preferring the cache. A user
// without a profile row yet gets zeroed totals, not an error.
func (s *dashboardService) loadStats(ctx context.Context, userID string) dto.AggregatedStats {
	if s.statsCache != nil {
		if stats, ok := s.statsCache.Get(ctx, userID); ok {
			return *stats
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("Failed to load profile totals", logger.ErrorField(err), logger.Field("user_id", userID))
		}
		return dto.AggregatedStats{}
	}

	stats := dto.AggregatedStats{
		TotalProfit: user.TotalProfit,
		TotalTrades: user.TotalTrades,
		WinRate:     user.WinRate,
	}
	if s.statsCache != nil {
		s.statsCache.Set(ctx, userID, &stats)
	}
	return stats
}

func mapToTradeResponse(trade *entity.Trade) dto.TradeResponse {
	return dto.TradeResponse{
		ID:         trade.ID,
		Symbol:     trade.Symbol,
		TradeType:  trade.TradeType,
		OpenedAt:   trade.OpenedAt,
		Pnl:        trade.Pnl,
		PnlPercent: trade.PnlPercent,
		Metadata:   json.RawMessage(trade.Metadata),
	}
}
