package stockai

import (
	"context"
	"net/url"
	"strings"
)

type autocompleteResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
	} `json:"quotes"`
}

// Autocomplete returns symbol suggestions for a prefix. An empty or
// whitespace-only prefix yields no suggestions without a network call.
// Suggestions are returned in service order; callers treat failures as
// best-effort.
func (c *Client) Autocomplete(ctx context.Context, prefix string) ([]Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, nil
	}

	var resp autocompleteResponse
	if err := c.getJSON(ctx, "autocomplete", "/autocomplete/"+url.PathEscape(prefix), &resp); err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, len(resp.Quotes))
	for _, q := range resp.Quotes {
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		// Entries without a symbol or any display name are useless.
		if q.Symbol == "" || name == "" {
			continue
		}
		out = append(out, Suggestion{Symbol: q.Symbol, Name: name, Exchange: q.Exchange})
	}
	return out, nil
}
