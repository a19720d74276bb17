package dto

// SaveBotSettingsRequest carries the bot configuration as edited in the
// browser: risk fields are percentages in [0,100]. The service converts
// them to stored fractions after validation.
type SaveBotSettingsRequest struct {
	Symbol          string  `json:"symbol" validate:"required"`
	Timeframe       string  `json:"timeframe" validate:"required"`
	MaxPositionRisk float64 `json:"maxPositionRisk"`
	MaxDailyLoss    float64 `json:"maxDailyLoss"`
	MaxDrawdown     float64 `json:"maxDrawdown"`
	MaxTradesPerDay int     `json:"maxTradesPerDay"`
	EmaShort        int     `json:"emaShort"`
	EmaLong         int     `json:"emaLong"`
	RsiPeriod       int     `json:"rsiPeriod"`
	UseMl           bool    `json:"useMl"`
	MinConfidence   float64 `json:"minConfidence"`
}

// BotSettingsResponse mirrors SaveBotSettingsRequest so a saved
// configuration loads back exactly as it was edited.
type BotSettingsResponse struct {
	Symbol          string  `json:"symbol"`
	Timeframe       string  `json:"timeframe"`
	MaxPositionRisk float64 `json:"maxPositionRisk"`
	MaxDailyLoss    float64 `json:"maxDailyLoss"`
	MaxDrawdown     float64 `json:"maxDrawdown"`
	MaxTradesPerDay int     `json:"maxTradesPerDay"`
	EmaShort        int     `json:"emaShort"`
	EmaLong         int     `json:"emaLong"`
	RsiPeriod       int     `json:"rsiPeriod"`
	UseMl           bool    `json:"useMl"`
	MinConfidence   float64 `json:"minConfidence"`
}
