package marketintel

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/Bhavishya011/Kalpana-AI-Backend/internal/trends"
)

// ErrRefreshRunning is returned when a refresh cycle is already in flight;
// overlapping cycles would race on the persisted aggregate.
var ErrRefreshRunning = errors.New("market cache refresh already running")

// Band-drift guard rails: a rising trend widens PriceRangeHigh by +10% per
// cycle and a falling trend narrows it by -5%, compounding against the
// stored value. The drift is intentional, but it is capped so a long-rising
// category cannot grow without limit.
const (
	risingBandFactor  = 1.10
	fallingBandFactor = 0.95
	maxBandDrift      = 3.0
)

type trendReading struct {
	score      int
	direction  TrendDirection
	recentMean float64
}

// Refresh fetches fresh interest data for every tracked category, a bounded
// subset of regions, and the seasonal keyword list, then swaps the updated
// aggregate in atomically and persists it. Individual fetch failures are
// logged and skipped; the cycle reports failure only when the provider
// yields no data at all during the category phase. Cancellation is honored
// between per-item fetches, keeping already-updated items.
func (c *Cache) Refresh(ctx context.Context) (bool, error) {
	if c.provider == nil {
		return false, errors.New("no interest provider configured")
	}
	if !c.refreshMu.TryLock() {
		return false, ErrRefreshRunning
	}
	defer c.refreshMu.Unlock()

	work := c.Snapshot()

	log.Printf("market refresh: fetching categories")
	readings, fetched, err := c.refreshCategories(ctx, &work)
	if err != nil {
		return false, c.abort(work, err)
	}
	if fetched == 0 {
		log.Printf("market refresh: provider unreachable, keeping previous aggregate")
		return false, nil
	}

	log.Printf("market refresh: fetching regions")
	if err := c.refreshRegions(ctx, &work); err != nil {
		return false, c.abort(work, err)
	}

	log.Printf("market refresh: fetching seasonal trends")
	if err := c.refreshSeasonal(ctx, &work); err != nil {
		return false, c.abort(work, err)
	}

	log.Printf("market refresh: ranking trending crafts")
	work.TrendingCrafts = rankTrending(readings)

	ts := c.now()
	if !ts.After(work.LastUpdated) {
		ts = work.LastUpdated.Add(time.Nanosecond)
	}
	work.LastUpdated = ts

	log.Printf("market refresh: persisting aggregate (updated=%s)", ts.Format(time.RFC3339))
	c.swap(work)
	c.persist(work)
	return true, nil
}

// abort commits whatever the cycle managed to update before cancellation so
// those categories stay fresh, without advancing the aggregate timestamp or
// persisting a half-finished document.
func (c *Cache) abort(work Snapshot, err error) error {
	c.swap(work)
	return err
}

func (c *Cache) refreshCategories(ctx context.Context, work *Snapshot) (map[string]trendReading, int, error) {
	names := make([]string, 0, len(craftKeywords))
	for name := range craftKeywords {
		names = append(names, name)
	}
	sort.Strings(names)

	readings := map[string]trendReading{}
	fetched := 0
	for _, name := range names {
		if err := c.limiter.Wait(ctx); err != nil {
			return readings, fetched, err
		}
		keyword := craftKeywords[name][0]
		points, err := c.provider.InterestOverTime(ctx, keyword, trends.WindowQuarter)
		if err != nil {
			log.Printf("market refresh: category %s: no data (%v)", name, err)
			continue
		}
		if len(points) == 0 {
			log.Printf("market refresh: category %s: empty series", name)
			continue
		}
		fetched++
		reading := deriveTrend(points)
		readings[name] = reading

		data, ok := work.Categories[name]
		if !ok {
			data = defaultCategories[name]
		}
		data.TrendScore = reading.score
		data.TrendDirection = reading.direction
		data.PriceRangeHigh = c.driftBand(name, data, reading.direction)
		data.LastUpdated = c.now()
		work.Categories[name] = data
		log.Printf("market refresh: category %s score=%d direction=%s high=%.0f", name, reading.score, reading.direction, data.PriceRangeHigh)
	}
	return readings, fetched, nil
}

func (c *Cache) driftBand(name string, data CategoryMarketData, direction TrendDirection) float64 {
	high := data.PriceRangeHigh
	switch direction {
	case TrendRising:
		high *= risingBandFactor
	case TrendFalling:
		high *= fallingBandFactor
	default:
		return high
	}
	if seed, ok := c.seeded.Categories[name]; ok {
		if ceiling := seed.PriceRangeHigh * maxBandDrift; high > ceiling {
			high = ceiling
		}
		if high < seed.PriceRangeLow {
			high = seed.PriceRangeLow
		}
	}
	if high < data.PriceRangeLow {
		high = data.PriceRangeLow
	}
	return high
}

func (c *Cache) refreshRegions(ctx context.Context, work *Snapshot) error {
	regions := make([]string, 0, len(regionalKeywords))
	for region := range regionalKeywords {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	if len(regions) > maxRegionsPerRefresh {
		regions = regions[:maxRegionsPerRefresh]
	}

	for _, region := range regions {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		points, err := c.provider.InterestOverTime(ctx, regionalKeywords[region][0], trends.WindowQuarter)
		if err != nil {
			log.Printf("market refresh: region %s: no data (%v)", region, err)
			continue
		}
		if len(points) == 0 {
			continue
		}
		work.RegionalScores[region] = int(mean(points))
	}
	return nil
}

func (c *Cache) refreshSeasonal(ctx context.Context, work *Snapshot) error {
	for _, keyword := range seasonalKeywords {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		points, err := c.provider.InterestOverTime(ctx, keyword, trends.WindowMonth)
		if err != nil {
			log.Printf("market refresh: seasonal %q: no data (%v)", keyword, err)
			continue
		}
		if len(points) == 0 {
			continue
		}
		score := int(mean(tail(points, 7)))
		work.SeasonalTrends[keyword] = SeasonalTrend{
			Score:      score,
			Multiplier: seasonalMultiplier(score),
			Active:     score > 30,
		}
	}
	return nil
}

func seasonalMultiplier(score int) float64 {
	switch {
	case score > 70:
		return 1.3
	case score > 50:
		return 1.2
	case score > 30:
		return 1.1
	default:
		return 1.0
	}
}

// deriveTrend scores a series by the mean of its most recent period against
// the overall mean. A zero recent mean substitutes the neutral score 50, so
// sparse provider data never reads as a collapsed market.
func deriveTrend(points []trends.InterestPoint) trendReading {
	recent := mean(tail(points, 4))
	overall := mean(points)

	score := int(recent)
	if score <= 0 {
		score = 50
	}
	direction := TrendStable
	switch {
	case recent > overall*1.15:
		direction = TrendRising
	case recent < overall*0.85:
		direction = TrendFalling
	}
	return trendReading{score: score, direction: direction, recentMean: recent}
}

func rankTrending(readings map[string]trendReading) []TrendingCraft {
	out := []TrendingCraft{}
	for name, r := range readings {
		if r.recentMean > 60 {
			out = append(out, TrendingCraft{Category: name, Score: int(r.recentMean), Keyword: craftKeywords[name][0]})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

func mean(points []trends.InterestPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range points {
		sum += float64(p.Value)
	}
	return sum / float64(len(points))
}

func tail(points []trends.InterestPoint, n int) []trends.InterestPoint {
	if len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}
