package stockai

import (
	"context"
	"net/url"
)

type realtimeResponse struct {
	Symbol    string   `json:"symbol"`
	Current   float64  `json:"current"`
	PrevClose *float64 `json:"prev_close"`
	Open      float64  `json:"open"`
	High      float64  `json:"high"`
	Low       float64  `json:"low"`
	Timestamp string   `json:"timestamp"`
}

// Realtime fetches the latest quote for a symbol. When the backend omits
// prev_close the quote reads as unchanged (PrevClose == Current).
func (c *Client) Realtime(ctx context.Context, symbol string) (*Quote, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	var resp realtimeResponse
	if err := c.getJSON(ctx, "realtime", "/realtime/"+url.PathEscape(sym), &resp); err != nil {
		return nil, err
	}

	prevClose := resp.Current
	if resp.PrevClose != nil {
		prevClose = *resp.PrevClose
	}
	resolved := resp.Symbol
	if resolved == "" {
		resolved = sym
	}
	return &Quote{
		Symbol:    resolved,
		Current:   resp.Current,
		PrevClose: prevClose,
		Open:      resp.Open,
		High:      resp.High,
		Low:       resp.Low,
		Timestamp: resp.Timestamp,
	}, nil
}
