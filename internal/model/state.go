package model

// GameState is the payload returned by every backend call. Only the fields
// of the level named by CurrentLevel are meaningful.
type GameState struct {
	CurrentLevel int    `json:"currentLevel"`
	IsGoalMet    bool   `json:"isGoalMet"`
	Goal         Amount `json:"goal"`

	// Level 1: bank savings
	Principal      Amount       `json:"principal"`
	InterestEarned Amount       `json:"interestEarned"`
	AvailableRates []RateOption `json:"availableRates"`

	// Level 2: single stock trading
	Cash         Amount       `json:"cash"`
	TotalValue   Amount       `json:"totalValue"`
	Stock        Stock        `json:"stock"`
	Day          int          `json:"day"`
	Date         string       `json:"date"`
	PriceHistory []PricePoint `json:"priceHistory"`
}

// RateOption is one deposit plan offered on level 1.
type RateOption struct {
	Period int     `json:"period"` // days
	Rate   float64 `json:"rate"`   // annual rate, 0.025 = 2.5%
}

// Stock is the tradable asset of level 2.
type Stock struct {
	Name    string `json:"name"`
	Ticker  string `json:"ticker"`
	Price   Amount `json:"price"`
	Holding int    `json:"holding"`
}

// PricePoint is one day of the level-2 price history.
type PricePoint struct {
	Date  string `json:"date"`
	Price Amount `json:"price"`
}
