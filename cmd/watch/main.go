package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Aaditya-Gupta-2004/Stock-price-prediction/internal/config"
	"github.com/Aaditya-Gupta-2004/Stock-price-prediction/internal/httpx"
	"github.com/Aaditya-Gupta-2004/Stock-price-prediction/internal/recorder"
	"github.com/Aaditya-Gupta-2004/Stock-price-prediction/internal/session"
	"github.com/Aaditya-Gupta-2004/Stock-price-prediction/internal/stockai"
)

func main() {
	log.SetFlags(log.LstdFlags)

	var cfgPath string
	var symbol string
	flag.StringVar(&cfgPath, "config", getenv("CONFIG_PATH", "config.yaml"), "path to config file")
	flag.StringVar(&symbol, "symbol", "", "symbol to watch on start")
	flag.Parse()

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
	suggest := &stockai.SuggestionCache{
		S:           client,
		TTL:         time.Duration(cfg.Suggest.CacheTTLSec) * time.Second,
		MinInterval: time.Duration(cfg.Suggest.MinIntervalMs) * time.Millisecond,
		MaxItems:    cfg.Suggest.MaxEntries,
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("warning: sqlite recorder unavailable, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ctrl := session.NewController(client,
		session.WithInterval(time.Duration(cfg.Watch.PollIntervalSec)*time.Second),
		session.WithWindowCapacity(cfg.Watch.WindowSize),
		session.WithRecorder(rec),
		session.WithRedraw(printUpdate),
	)
	defer ctrl.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if symbol != "" {
		watch(ctx, ctrl, symbol)
	}

	fmt.Println("commands: SYMBOL to watch, ?PREFIX for suggestions, quit to exit")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Println("shutting down")
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			line = strings.TrimSpace(line)
			switch {
			case line == "":
			case line == "quit" || line == "exit":
				return
			case strings.HasPrefix(line, "?"):
				printSuggestions(ctx, suggest, strings.TrimPrefix(line, "?"))
			default:
				watch(ctx, ctrl, line)
			}
		}
	}
}

// watch switches the live session to symbol; failures only log, any
// running session keeps polling.
func watch(ctx context.Context, ctrl *session.Controller, symbol string) {
	if err := ctrl.Start(ctx, symbol); err != nil {
		log.Printf("watch %s: %v", symbol, err)
		return
	}
	if pred := ctrl.Prediction(); pred != nil {
		printPrediction(pred)
	}
}

func printUpdate(u session.Update) {
	sign := "+"
	if u.Change < 0 {
		sign = ""
	}
	fmt.Printf("[%s] $%.2f  %s%.2f (%s)  window=%d\n",
		u.Symbol, u.Quote.Current, sign, u.Change, u.Direction, len(u.Points))
}

func printPrediction(p *stockai.PredictionSet) {
	fmt.Printf("prediction for %s (%d days):\n", p.Symbol, stockai.PredictionDays)
	for _, name := range []string{"MA", "ARMA", "ARIMA"} {
		var series []float64
		switch name {
		case "MA":
			series = p.MA
		case "ARMA":
			series = p.ARMA
		case "ARIMA":
			series = p.ARIMA
		}
		if len(series) == 0 {
			continue
		}
		fmt.Printf("  %-5s day1=%.2f day%d=%.2f rmse=%.3f\n",
			name, series[0], len(series), series[len(series)-1], p.RMSE[name])
	}
}

// printSuggestions is best-effort: failures log and yield nothing.
func printSuggestions(ctx context.Context, s stockai.Suggester, prefix string) {
	suggestions, err := s.Autocomplete(ctx, prefix)
	if err != nil {
		log.Printf("autocomplete %q: %v", prefix, err)
		return
	}
	if len(suggestions) == 0 {
		fmt.Println("no suggestions")
		return
	}
	for _, sg := range suggestions {
		fmt.Printf("  %-10s %-40s %s\n", sg.Symbol, sg.Name, sg.Exchange)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
