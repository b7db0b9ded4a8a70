package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Bhavishya011/Kalpana-AI-Backend/internal/kvstore"
	"github.com/Bhavishya011/Kalpana-AI-Backend/internal/marketintel"
	"github.com/Bhavishya011/Kalpana-AI-Backend/internal/pricing"
)

func main() {
	dbPath := flag.String("db", "pricing.db", "Path to the market cache database")
	description := flag.String("description", "", "Product description (required)")
	region := flag.String("region", "", "Artisan region")
	storyTitle := flag.String("story-title", "", "Narrative story title")
	elements := flag.String("cultural-elements", "", "Comma-separated cultural elements")
	narrative := flag.String("narrative", "", "Narrative text from the story generator")
	materialCost := flag.Float64("material-cost", 0, "Material cost to add to the asking total")
	report := flag.Bool("report", false, "Print a markdown report instead of JSON")
	flag.Parse()

	if strings.TrimSpace(*description) == "" {
		log.Fatal("missing required flag -description")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := kvstore.NewSQLiteStore(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	cache := marketintel.Load(marketintel.Config{Store: store})
	if cache.IsStale() {
		log.Printf("market cache is stale; run update-market-trends to refresh")
	}

	var estimator pricing.ComplexityEstimator
	if est, err := pricing.NewAnthropicEstimatorFromEnv(); err != nil {
		log.Printf("complexity estimator disabled: %v", err)
	} else {
		estimator = est
	}

	attrs := pricing.NarrativeAttributes{
		Region:           *region,
		CulturalElements: splitElements(*elements),
		NarrativeText:    *narrative,
		StoryTitle:       *storyTitle,
	}
	engine := pricing.NewEngine(estimator, cache)
	result := engine.CalculatePrice(ctx, *description, attrs, *materialCost)

	if *report {
		fmt.Print(pricing.BuildReport(*description, attrs, result, time.Now()))
		return
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}

func splitElements(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
