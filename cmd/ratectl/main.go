// ratectl loads an exchange rate into the bot's database.
//
// The bot never fetches rates itself; they are loaded out of band with
// this tool and the amount parser picks the most recent one per currency.
//
// Usage:
//
//	ratectl <code> <rate> [dd/mm/yy]
//
// The date defaults to today.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"gastobot/internal/config"
	"gastobot/internal/currency"
	"gastobot/internal/models"
	"gastobot/internal/storage/sqlite"
	"gastobot/pkg/logging"
)

const dateLayout = "02/01/06"

func main() {
	_ = godotenv.Load()
	logging.Setup()

	if len(os.Args) < 3 || len(os.Args) > 4 {
		fmt.Fprintln(os.Stderr, "usage: ratectl <code> <rate> [dd/mm/yy]")
		os.Exit(2)
	}

	code := os.Args[1]
	cur, ok := currency.ByCode(code)
	if !ok {
		codes := make([]string, 0, len(currency.Table))
		for _, c := range currency.Table {
			codes = append(codes, c.Code)
		}
		slog.Error("Unknown currency code", "code", code, "known", strings.Join(codes, ", "))
		os.Exit(1)
	}

	rate, err := decimal.NewFromString(strings.ReplaceAll(os.Args[2], ",", "."))
	if err != nil {
		slog.Error("Invalid rate", "rate", os.Args[2], "error", err)
		os.Exit(1)
	}

	date := time.Now()
	if len(os.Args) == 4 {
		date, err = time.Parse(dateLayout, os.Args[3])
		if err != nil {
			slog.Error("Invalid date, expected dd/mm/yy", "date", os.Args[3], "error", err)
			os.Exit(1)
		}
	}

	cfg := config.Load()
	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	record := &models.ExchangeRate{Currency: cur.Code, Rate: rate, Date: date}
	if err := store.SaveExchangeRate(context.Background(), record); err != nil {
		slog.Error("Failed to save exchange rate", "error", err)
		os.Exit(1)
	}
	slog.Info("Exchange rate saved",
		"currency", cur.Code,
		"rate", rate.String(),
		"date", date.Format("2006-01-02"),
	)
}
