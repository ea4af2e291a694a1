package stockai_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Aaditya-Gupta-2004/Stock-price-prediction/internal/httpx"
	"github.com/Aaditya-Gupta-2004/Stock-price-prediction/internal/stockai"
)

// jsonResponse builds a 200 response with the given JSON body.
func jsonResponse(t *testing.T, status int, body any) *http.Response {
	t.Helper()
	buffer := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buffer).Encode(body))
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(buffer),
	}
}

func series(n int, base float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + float64(i)
	}
	return out
}

func TestNew(t *testing.T) {
	t.Parallel()

	client, err := stockai.New("http://localhost:8000/")
	require.NoError(t, err)
	require.NotNil(t, client)

	// Assert: an empty base URL is rejected before any call.
	_, err = stockai.New("   ")
	var verr *stockai.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUserAgentReachesTheWire(t *testing.T) {
	t.Parallel()

	// Wire the client exactly the way the commands do: the inner
	// *http.Client from the httpx wrapper plus its UserAgent.
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"symbol":  "AAPL",
			"current": 150.0,
		}))
	}))
	defer srv.Close()

	hc := httpx.New(5 * time.Second)
	client, err := stockai.New(srv.URL,
		stockai.WithHTTPClient(hc.HTTP),
		stockai.WithUserAgent(hc.UserAgent),
	)
	require.NoError(t, err)

	_, err = client.Realtime(t.Context(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, hc.UserAgent, gotUA)
}

func TestWithHeaderIsSentOnEveryRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "bar", req.Header.Get("foo"))
			return jsonResponse(t, http.StatusOK, map[string]any{"quotes": []map[string]any{}}), nil
		}).
		Times(1)

	client, err := stockai.New("http://localhost:8000",
		stockai.WithHTTPClient(httpClient),
		stockai.WithHeader(http.Header{"foo": []string{"bar"}}),
	)
	require.NoError(t, err)

	_, err = client.Autocomplete(t.Context(), "appl")
	require.NoError(t, err)
}

func TestAutocomplete_EmptyPrefix_NoNetworkCall(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	// Arrange: a mock http client with no expected calls; gomock fails
	// the test if Do is invoked.
	httpClient := NewMockHTTPClient(ctrl)

	client, err := stockai.New("http://localhost:8000", stockai.WithHTTPClient(httpClient))
	require.NoError(t, err)

	got, err := client.Autocomplete(t.Context(), "   ")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestAutocomplete_FiltersAndPreservesOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.True(t, strings.HasSuffix(req.URL.Path, "/autocomplete/appl"), "unexpected path: %s", req.URL.Path)
			return jsonResponse(t, http.StatusOK, map[string]any{
				"quotes": []map[string]any{
					{"symbol": "AAPL", "shortname": "Apple Inc.", "exchange": "NMS"},
					{"symbol": "", "shortname": "no symbol"},
					{"symbol": "APLE", "longname": "Apple Hospitality REIT", "exchange": "NYQ"},
					{"symbol": "APP.X", "exchange": "CCC"},
				},
			}), nil
		}).
		Times(1)

	client, err := stockai.New("http://localhost:8000", stockai.WithHTTPClient(httpClient))
	require.NoError(t, err)

	got, err := client.Autocomplete(t.Context(), "appl")
	require.NoError(t, err)
	require.Equal(t, []stockai.Suggestion{
		{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "NMS"},
		{Symbol: "APLE", Name: "Apple Hospitality REIT", Exchange: "NYQ"},
	}, got)
}

func TestAutocomplete_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(&http.Response{StatusCode: http.StatusBadGateway, Body: io.NopCloser(strings.NewReader("upstream down"))}, nil).
		Times(1)

	client, err := stockai.New("http://localhost:8000", stockai.WithHTTPClient(httpClient))
	require.NoError(t, err)

	_, err = client.Autocomplete(t.Context(), "appl")
	var ferr *stockai.FetchError
	require.ErrorAs(t, err, &ferr)
	require.Equal(t, http.StatusBadGateway, ferr.Status)
}

func TestPredict_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			// Symbols are normalized before hitting the wire.
			require.True(t, strings.HasSuffix(req.URL.Path, "/predict/TCS"), "unexpected path: %s", req.URL.Path)
			return jsonResponse(t, http.StatusOK, map[string]any{
				"symbol":           "TCS.NS",
				"MA_Prediction":    series(30, 100),
				"ARMA_Prediction":  series(30, 200),
				"ARIMA_Prediction": series(30, 300),
				"RMSE":             map[string]float64{"MA": 1.5, "ARMA": 1.2, "ARIMA": 0.9},
			}), nil
		}).
		Times(1)

	client, err := stockai.New("http://localhost:8000", stockai.WithHTTPClient(httpClient))
	require.NoError(t, err)

	got, err := client.Predict(t.Context(), " tcs ")
	require.NoError(t, err)
	require.Equal(t, "TCS.NS", got.Symbol)
	require.Len(t, got.MA, stockai.PredictionDays)
	require.Equal(t, series(30, 200), got.ARMA)
	require.Equal(t, series(30, 300), got.ARIMA)
	require.Equal(t, 0.9, got.RMSE["ARIMA"])
}

func TestPredict_MissingSeriesIsFetchError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(t, http.StatusOK, map[string]any{
				"symbol":          "AAPL",
				"MA_Prediction":   series(30, 100),
				"ARMA_Prediction": series(30, 200),
				// ARIMA_Prediction intentionally absent.
			}), nil
		}).
		Times(1)

	client, err := stockai.New("http://localhost:8000", stockai.WithHTTPClient(httpClient))
	require.NoError(t, err)

	_, err = client.Predict(t.Context(), "AAPL")
	var ferr *stockai.FetchError
	require.ErrorAs(t, err, &ferr)
	require.Contains(t, ferr.Error(), "ARIMA")
}

func TestPredict_EmptySymbol(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	client, err := stockai.New("http://localhost:8000", stockai.WithHTTPClient(httpClient))
	require.NoError(t, err)

	_, err = client.Predict(t.Context(), "  ")
	var verr *stockai.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestRealtime_MissingPrevCloseReadsAsUnchanged(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.True(t, strings.HasSuffix(req.URL.Path, "/realtime/AAPL"), "unexpected path: %s", req.URL.Path)
			return jsonResponse(t, http.StatusOK, map[string]any{
				"symbol":  "AAPL",
				"current": 150.0,
				"open":    149.0,
				"high":    151.0,
				"low":     148.5,
			}), nil
		}).
		Times(1)

	client, err := stockai.New("http://localhost:8000", stockai.WithHTTPClient(httpClient))
	require.NoError(t, err)

	q, err := client.Realtime(t.Context(), "aapl")
	require.NoError(t, err)
	require.Equal(t, 150.0, q.Current)
	require.Equal(t, 150.0, q.PrevClose)
	require.Zero(t, q.Change())
	require.Equal(t, stockai.Up, q.Direction())
}

func TestRealtime_NegativeChangeClassifiesDown(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(jsonResponse(t, http.StatusOK, map[string]any{
			"symbol":     "AAPL",
			"current":    149.5,
			"prev_close": 150.0,
		}), nil).
		Times(1)

	client, err := stockai.New("http://localhost:8000", stockai.WithHTTPClient(httpClient))
	require.NoError(t, err)

	q, err := client.Realtime(t.Context(), "AAPL")
	require.NoError(t, err)
	require.InDelta(t, -0.5, q.Change(), 1e-9)
	require.Equal(t, stockai.Down, q.Direction())
}

func TestRealtime_TransportError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(nil, errors.New("connection refused")).
		Times(1)

	client, err := stockai.New("http://localhost:8000", stockai.WithHTTPClient(httpClient))
	require.NoError(t, err)

	_, err = client.Realtime(t.Context(), "AAPL")
	var terr *stockai.TransportError
	require.ErrorAs(t, err, &terr)
}

func TestRealtime_UnparsableBodyIsFetchError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(&http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader("<html>not json</html>"))}, nil).
		Times(1)

	client, err := stockai.New("http://localhost:8000", stockai.WithHTTPClient(httpClient))
	require.NoError(t, err)

	_, err = client.Realtime(t.Context(), "AAPL")
	var ferr *stockai.FetchError
	require.ErrorAs(t, err, &ferr)
}
