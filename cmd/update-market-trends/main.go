package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Bhavishya011/Kalpana-AI-Backend/internal/kvstore"
	"github.com/Bhavishya011/Kalpana-AI-Backend/internal/marketintel"
	"github.com/Bhavishya011/Kalpana-AI-Backend/internal/trends"
)

func main() {
	dbPath := flag.String("db", "pricing.db", "Path to the market cache database")
	providerURL := flag.String("provider-url", "http://localhost:9090", "Interest data provider base URL")
	geo := flag.String("geo", "IN", "Provider geo code")
	schedule := flag.String("schedule", "", "Cron schedule (empty runs one refresh and exits)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := kvstore.NewSQLiteStore(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	cache := marketintel.Load(marketintel.Config{
		Store:    store,
		Provider: trends.NewClient(*providerURL, *geo),
	})

	if *schedule == "" {
		ok, err := cache.Refresh(ctx)
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			log.Fatal("refresh failed: provider unreachable")
		}
		log.Printf("market cache refreshed")
		return
	}

	scheduler, err := marketintel.NewScheduler(cache, *schedule)
	if err != nil {
		log.Fatal(err)
	}
	scheduler.Start()
	log.Printf("scheduled market refresh (%s), waiting for signals", *schedule)
	<-ctx.Done()
	scheduler.Stop()
}
