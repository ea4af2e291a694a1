package stockai

import (
	"context"
	"fmt"
	"net/url"
)

type predictResponse struct {
	Symbol string             `json:"symbol"`
	MA     []float64          `json:"MA_Prediction"`
	ARMA   []float64          `json:"ARMA_Prediction"`
	ARIMA  []float64          `json:"ARIMA_Prediction"`
	RMSE   map[string]float64 `json:"RMSE"`
}

// Predict fetches the three model forecasts for a symbol. A response
// missing any of the three series, or carrying a series that is not
// exactly PredictionDays long, is reported as a FetchError.
func (c *Client) Predict(ctx context.Context, symbol string) (*PredictionSet, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	var resp predictResponse
	if err := c.getJSON(ctx, "predict", "/predict/"+url.PathEscape(sym), &resp); err != nil {
		return nil, err
	}

	for name, series := range map[string][]float64{"MA": resp.MA, "ARMA": resp.ARMA, "ARIMA": resp.ARIMA} {
		if len(series) != PredictionDays {
			return nil, &FetchError{
				Op:     "predict",
				Reason: fmt.Sprintf("%s series has %d values, want %d", name, len(series), PredictionDays),
			}
		}
	}

	resolved := resp.Symbol
	if resolved == "" {
		resolved = sym
	}
	return &PredictionSet{
		Symbol: resolved,
		MA:     resp.MA,
		ARMA:   resp.ARMA,
		ARIMA:  resp.ARIMA,
		RMSE:   resp.RMSE,
	}, nil
}
