package stockai

// Suggestion is one autocomplete entry, displayed in service order.
type Suggestion struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// PredictionDays is the fixed forecast horizon of every model.
const PredictionDays = 30

// PredictionSet holds the three model forecasts for a symbol, each
// aligned to labels Day 1..Day 30. Symbol is the resolved symbol the
// backend trained on (it may carry an exchange suffix such as .NS).
type PredictionSet struct {
	Symbol string    `json:"symbol"`
	MA     []float64 `json:"ma"`
	ARMA   []float64 `json:"arma"`
	ARIMA  []float64 `json:"arima"`
	// RMSE holds per-model backtest error, keyed MA/ARMA/ARIMA.
	RMSE map[string]float64 `json:"rmse"`
}

// Direction classifies a price change for presentation.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// Quote is the latest price snapshot for a symbol.
type Quote struct {
	Symbol  string  `json:"symbol"`
	Current float64 `json:"current"`
	// PrevClose defaults to Current when the backend omits it, so a
	// missing previous close reads as "no change".
	PrevClose float64 `json:"prev_close"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Timestamp string  `json:"timestamp"`
}

// Change is the signed difference against the previous close.
func (q Quote) Change() float64 { return q.Current - q.PrevClose }

// Direction is Up for a non-negative change, Down otherwise.
func (q Quote) Direction() Direction {
	if q.Change() < 0 {
		return Down
	}
	return Up
}
