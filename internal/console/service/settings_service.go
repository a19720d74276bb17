package service

import (
	"context"
	"errors"
	"sync"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/dto"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/repository"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/entity"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/apperrors"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"
)

// Supported instruments and bar intervals. The trading engine only
// understands these values.
var (
	supportedSymbols = map[string]struct{}{
		"EURUSD": {}, "GBPUSD": {}, "USDJPY": {}, "AUDUSD": {}, "USDCAD": {},
	}
	supportedTimeframes = map[string]struct{}{
		"1m": {}, "5m": {}, "15m": {}, "30m": {}, "1h": {}, "4h": {}, "1d": {},
	}
)

// SettingsService loads, validates, normalizes and persists the single
// bot configuration record per user. It owns the percentage/fraction
// conversion seam: the API speaks percentages, the store keeps fractions.
type SettingsService interface {
	Get(ctx context.Context, userID string) (*dto.BotSettingsResponse, error)
	Save(ctx context.Context, userID string, req *dto.SaveBotSettingsRequest) error
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo repository.SettingsRepository, logger *logger.Logger) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
		saving:       make(map[string]struct{}),
	}
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	logger       *logger.Logger

	// saving tracks users with a Save in flight so a double-click on the
	// save button cannot pipeline two upserts.
	mu     sync.Mutex
	saving map[string]struct{}
}

// Get returns the user's configuration in display units, or the
// documented defaults when the user has never saved.
func (s *settingsService) Get(ctx context.Context, userID string) (*dto.BotSettingsResponse, error) {
	setting, err := s.settingsRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := DefaultBotSettings()
			return &defaults, nil
		}
		return nil, apperrors.NewTransportError("load settings", err)
	}

	return &dto.BotSettingsResponse{
		Symbol:          setting.Symbol,
		Timeframe:       setting.Timeframe,
		MaxPositionRisk: setting.MaxPositionRiskPct * 100,
		MaxDailyLoss:    setting.MaxDailyLossPct * 100,
		MaxDrawdown:     setting.MaxDrawdownPct * 100,
		MaxTradesPerDay: setting.MaxTradesPerDay,
		EmaShort:        setting.EmaShort,
		EmaLong:         setting.EmaLong,
		RsiPeriod:       setting.RsiPeriod,
		UseMl:           setting.UseMlPrediction,
		MinConfidence:   setting.MinConfidenceThreshold * 100,
	}, nil
}

// Save validates the display config, converts percentages to fractions
// and upserts the record. Nothing is written on a validation failure,
// and saving the same config twice produces the same stored record.
func (s *settingsService) Save(ctx context.Context, userID string, req *dto.SaveBotSettingsRequest) error {
	if !s.beginSave(userID) {
		return apperrors.ErrMutationInFlight
	}
	defer s.endSave(userID)

	if err := validateBotSettings(req); err != nil {
		return err
	}

	setting := &entity.BotSetting{
		UserID:                 userID,
		Symbol:                 req.Symbol,
		Timeframe:              req.Timeframe,
		MaxPositionRiskPct:     req.MaxPositionRisk / 100,
		MaxDailyLossPct:        req.MaxDailyLoss / 100,
		MaxDrawdownPct:         req.MaxDrawdown / 100,
		MaxTradesPerDay:        req.MaxTradesPerDay,
		EmaShort:               req.EmaShort,
		EmaLong:                req.EmaLong,
		RsiPeriod:              req.RsiPeriod,
		UseMlPrediction:        req.UseMl,
		MinConfidenceThreshold: req.MinConfidence / 100,
	}

	if err := s.settingsRepo.Upsert(ctx, setting); err != nil {
		s.logger.Error("Failed to save settings", logger.ErrorField(err), logger.Field("user_id", userID))
		return apperrors.NewTransportError("save settings", err)
	}

	s.logger.Info("Settings saved", logger.Field("user_id", userID), logger.Field("symbol", req.Symbol))
	return nil
}

func (s *settingsService) beginSave(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, inFlight := s.saving[userID]; inFlight {
		return false
	}
	s.saving[userID] = struct{}{}
	return true
}

func (s *settingsService) endSave(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saving, userID)
}

// DefaultBotSettings is the configuration a brand-new user sees before
// the first save.
func DefaultBotSettings() dto.BotSettingsResponse {
	return dto.BotSettingsResponse{
		Symbol:          "EURUSD",
		Timeframe:       "1h",
		MaxPositionRisk: 2,
		MaxDailyLoss:    5,
		MaxDrawdown:     10,
		MaxTradesPerDay: 10,
		EmaShort:        9,
		EmaLong:         21,
		RsiPeriod:       14,
		UseMl:           true,
		MinConfidence:   65,
	}
}

func validateBotSettings(req *dto.SaveBotSettingsRequest) error {
	if _, ok := supportedSymbols[req.Symbol]; !ok {
		return apperrors.NewValidationError("symbol", "unsupported symbol %q", req.Symbol)
	}
	if _, ok := supportedTimeframes[req.Timeframe]; !ok {
		return apperrors.NewValidationError("timeframe", "unsupported timeframe %q", req.Timeframe)
	}
	if req.MaxPositionRisk < 0.1 || req.MaxPositionRisk > 10 {
		return apperrors.NewValidationError("maxPositionRisk", "must be between 0.1 and 10")
	}
	if req.MaxDailyLoss < 1 || req.MaxDailyLoss > 20 {
		return apperrors.NewValidationError("maxDailyLoss", "must be between 1 and 20")
	}
	if req.MaxDrawdown < 5 || req.MaxDrawdown > 30 {
		return apperrors.NewValidationError("maxDrawdown", "must be between 5 and 30")
	}
	if req.MaxTradesPerDay < 1 || req.MaxTradesPerDay > 50 {
		return apperrors.NewValidationError("maxTradesPerDay", "must be between 1 and 50")
	}
	if req.EmaShort < 1 {
		return apperrors.NewValidationError("emaShort", "must be a positive integer")
	}
	if req.EmaLong < 1 {
		return apperrors.NewValidationError("emaLong", "must be a positive integer")
	}
	if req.RsiPeriod < 1 {
		return apperrors.NewValidationError("rsiPeriod", "must be a positive integer")
	}
	if req.MinConfidence < 0 || req.MinConfidence > 100 {
		return apperrors.NewValidationError("minConfidence", "must be between 0 and 100")
	}
	return nil
}
