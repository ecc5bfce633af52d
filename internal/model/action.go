package model

import "encoding/json"

// ActionKind tags an ActionRequest.
type ActionKind string

const (
	ActionDeposit ActionKind = "deposit"
	ActionBuy     ActionKind = "buy"
	ActionSell    ActionKind = "sell"
	ActionNextDay ActionKind = "next_day"
)

// ActionRequest is the body of POST /api/perform_action. Which optional
// fields are set depends on Action; use the constructors below.
type ActionRequest struct {
	Action ActionKind
	Period int
	Rate   float64
	// Quantity is the raw text of the quantity input. The backend parses
	// and validates it.
	Quantity string
}

// MarshalJSON writes the fields of the request's kind, even when zero.
func (r ActionRequest) MarshalJSON() ([]byte, error) {
	wire := struct {
		Action   ActionKind `json:"action"`
		Period   *int       `json:"period,omitempty"`
		Rate     *float64   `json:"rate,omitempty"`
		Quantity *string    `json:"quantity,omitempty"`
	}{Action: r.Action}
	switch r.Action {
	case ActionDeposit:
		wire.Period, wire.Rate = &r.Period, &r.Rate
	case ActionBuy, ActionSell:
		wire.Quantity = &r.Quantity
	}
	return json.Marshal(wire)
}

// Deposit saves the principal for period days at the given annual rate.
func Deposit(period int, rate float64) ActionRequest {
	return ActionRequest{Action: ActionDeposit, Period: period, Rate: rate}
}

// Buy purchases quantity shares of the level-2 stock.
func Buy(quantity string) ActionRequest {
	return ActionRequest{Action: ActionBuy, Quantity: quantity}
}

// Sell sells quantity shares of the level-2 stock.
func Sell(quantity string) ActionRequest {
	return ActionRequest{Action: ActionSell, Quantity: quantity}
}

// NextDay advances the market by one day without trading.
func NextDay() ActionRequest {
	return ActionRequest{Action: ActionNextDay}
}
