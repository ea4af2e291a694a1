package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Aaditya-Gupta-2004/Stock-price-prediction/internal/config"
	"github.com/Aaditya-Gupta-2004/Stock-price-prediction/internal/httpx"
	"github.com/Aaditya-Gupta-2004/Stock-price-prediction/internal/stockai"
)

type output struct {
	Symbol     string                 `json:"symbol"`
	Quote      *stockai.Quote         `json:"quote"`
	Prediction *stockai.PredictionSet `json:"prediction"`
}

func main() {
	var cfgPath string
	var symbol string
	var asJSON bool
	flag.StringVar(&cfgPath, "config", getenv("CONFIG_PATH", "config.yaml"), "path to config file")
	flag.StringVar(&symbol, "symbol", "", "symbol to predict (required)")
	flag.BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	flag.Parse()

	if symbol == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	httpClient := httpx.New(time.Duration(cfg.Backend.RequestTimeoutSec) * time.Second)
	client, err := stockai.New(cfg.Backend.BaseURL,
		stockai.WithHTTPClient(httpClient.HTTP),
		stockai.WithUserAgent(httpClient.UserAgent),
	)
	if err != nil {
		log.Fatalf("client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var pred *stockai.PredictionSet
	var quote *stockai.Quote
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := client.Predict(gctx, symbol)
		pred = p
		return err
	})
	g.Go(func() error {
		q, err := client.Realtime(gctx, symbol)
		quote = q
		return err
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("fetch %s: %v", symbol, err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(output{Symbol: pred.Symbol, Quote: quote, Prediction: pred}); err != nil {
			log.Fatalf("encode: %v", err)
		}
		return
	}

	fmt.Printf("%s  $%.2f  %+.2f (%s)\n", quote.Symbol, quote.Current, quote.Change(), quote.Direction())
	fmt.Printf("%-6s %10s %10s %8s\n", "model", "day 1", "day 30", "rmse")
	for _, row := range []struct {
		name   string
		series []float64
	}{
		{"MA", pred.MA},
		{"ARMA", pred.ARMA},
		{"ARIMA", pred.ARIMA},
	} {
		fmt.Printf("%-6s %10.2f %10.2f %8.3f\n",
			row.name, row.series[0], row.series[len(row.series)-1], pred.RMSE[row.name])
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
