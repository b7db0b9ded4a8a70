package marketintel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Bhavishya011/Kalpana-AI-Backend/internal/kvstore"
	"github.com/Bhavishya011/Kalpana-AI-Backend/internal/trends"
)

type stubProvider struct {
	mu     sync.Mutex
	series map[string][]trends.InterestPoint
	errs   map[string]error
	calls  int
	onCall func(n int)
}

func (p *stubProvider) InterestOverTime(ctx context.Context, keyword, window string) ([]trends.InterestPoint, error) {
	p.mu.Lock()
	p.calls++
	n := p.calls
	hook := p.onCall
	p.mu.Unlock()
	if hook != nil {
		hook(n)
	}
	if err, ok := p.errs[keyword]; ok {
		return nil, err
	}
	if s, ok := p.series[keyword]; ok {
		return s, nil
	}
	return series(50, 50, 50, 50), nil
}

func series(values ...int) []trends.InterestPoint {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make([]trends.InterestPoint, len(values))
	for i, v := range values {
		out[i] = trends.InterestPoint{Date: base.AddDate(0, 0, 7*i), Value: v}
	}
	return out
}

func testCache(p Provider, store Store) *Cache {
	return Load(Config{Store: store, Provider: p, Pace: time.Millisecond})
}

func TestRefreshRisingTrendWidensBand(t *testing.T) {
	p := &stubProvider{series: map[string][]trends.InterestPoint{
		// overall mean 33.33, recent mean 80 -> rising, score 80.
		"indian pottery": series(10, 10, 10, 10, 10, 10, 10, 10, 80, 80, 80, 80),
	}}
	c := testCache(p, kvstore.NewMemStore())

	ok, err := c.Refresh(context.Background())
	if err != nil || !ok {
		t.Fatalf("refresh failed: ok=%v err=%v", ok, err)
	}
	data, _ := c.Get("pottery")
	if data.TrendScore != 80 || data.TrendDirection != TrendRising {
		t.Fatalf("unexpected trend: %+v", data)
	}
	// 400 * 1.10 = 440
	if data.PriceRangeHigh != 440 {
		t.Fatalf("expected widened high 440, got %v", data.PriceRangeHigh)
	}
	if data.PriceRangeLow != 100 {
		t.Fatalf("floor must not drift, got %v", data.PriceRangeLow)
	}
	if c.IsStale() {
		t.Fatal("cache must be fresh after successful refresh")
	}
}

func TestRefreshFallingTrendNarrowsBand(t *testing.T) {
	p := &stubProvider{series: map[string][]trends.InterestPoint{
		// overall mean 56.67, recent mean 10 -> falling, score 10.
		"indian pottery": series(80, 80, 80, 80, 80, 80, 80, 80, 10, 10, 10, 10),
	}}
	c := testCache(p, kvstore.NewMemStore())

	if ok, err := c.Refresh(context.Background()); err != nil || !ok {
		t.Fatalf("refresh failed: ok=%v err=%v", ok, err)
	}
	data, _ := c.Get("pottery")
	if data.TrendDirection != TrendFalling {
		t.Fatalf("expected falling, got %s", data.TrendDirection)
	}
	// 400 * 0.95 = 380
	if data.PriceRangeHigh != 380 {
		t.Fatalf("expected narrowed high 380, got %v", data.PriceRangeHigh)
	}
}

func TestRefreshFailureIsolation(t *testing.T) {
	p := &stubProvider{errs: map[string]error{
		"indian embroidery": errors.New("provider timeout"),
	}}
	c := testCache(p, kvstore.NewMemStore())

	ok, err := c.Refresh(context.Background())
	if err != nil || !ok {
		t.Fatalf("one failing category must not fail the cycle: ok=%v err=%v", ok, err)
	}

	pottery, _ := c.Get("pottery")
	if pottery.LastUpdated.IsZero() {
		t.Fatal("pottery should have been refreshed")
	}
	embroidery, _ := c.Get("embroidery")
	if !embroidery.LastUpdated.IsZero() {
		t.Fatal("failed category must keep its previous state")
	}
	if embroidery.TrendScore != 50 || embroidery.PriceRangeHigh != 600 {
		t.Fatalf("failed category data changed: %+v", embroidery)
	}
}

func TestRefreshTotalProviderFailure(t *testing.T) {
	errAll := errors.New("connection refused")
	p := &stubProvider{errs: map[string]error{}}
	for _, kws := range craftKeywords {
		p.errs[kws[0]] = errAll
	}
	for _, kws := range regionalKeywords {
		p.errs[kws[0]] = errAll
	}
	for _, kw := range seasonalKeywords {
		p.errs[kw] = errAll
	}
	store := kvstore.NewMemStore()
	c := testCache(p, store)

	ok, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("refresh must report failure when no data was obtained")
	}
	if !c.IsStale() {
		t.Fatal("failed refresh must not mark the cache fresh")
	}
	if _, found, _ := store.Get(StoreKey); found {
		t.Fatal("failed refresh must not persist")
	}
}

func TestRefreshSeasonalTrends(t *testing.T) {
	p := &stubProvider{series: map[string][]trends.InterestPoint{
		"diwali gifts": series(75, 75, 75, 75, 75, 75, 75),
		"holi colors":  series(5, 5, 5, 5, 5, 5, 5),
	}}
	c := testCache(p, kvstore.NewMemStore())

	if ok, err := c.Refresh(context.Background()); err != nil || !ok {
		t.Fatalf("refresh failed: ok=%v err=%v", ok, err)
	}
	snap := c.Snapshot()
	diwali := snap.SeasonalTrends["diwali gifts"]
	if !diwali.Active || diwali.Multiplier != 1.3 {
		t.Fatalf("expected active diwali 1.3x, got %+v", diwali)
	}
	holi := snap.SeasonalTrends["holi colors"]
	if holi.Active || holi.Multiplier != 1.0 {
		t.Fatalf("expected inactive holi, got %+v", holi)
	}
	if got := c.ActiveSeasonalMultiplier(); got != 1.3 {
		t.Fatalf("expected 1.3 active multiplier, got %v", got)
	}
}

func TestRefreshRanksTrendingCrafts(t *testing.T) {
	p := &stubProvider{series: map[string][]trends.InterestPoint{
		"indian pottery":         series(90, 90, 90, 90),
		"handmade jewelry india": series(70, 70, 70, 70),
	}}
	c := testCache(p, kvstore.NewMemStore())

	if ok, err := c.Refresh(context.Background()); err != nil || !ok {
		t.Fatalf("refresh failed: ok=%v err=%v", ok, err)
	}
	snap := c.Snapshot()
	if len(snap.TrendingCrafts) != 2 {
		t.Fatalf("expected 2 trending crafts, got %+v", snap.TrendingCrafts)
	}
	if snap.TrendingCrafts[0].Category != "pottery" || snap.TrendingCrafts[1].Category != "jewelry" {
		t.Fatalf("unexpected trending order: %+v", snap.TrendingCrafts)
	}
}

func TestRefreshTimestampAlwaysAdvances(t *testing.T) {
	fixed := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	p := &stubProvider{}
	c := Load(Config{Store: kvstore.NewMemStore(), Provider: p, Pace: time.Millisecond, Now: func() time.Time { return fixed }})

	if ok, err := c.Refresh(context.Background()); err != nil || !ok {
		t.Fatalf("refresh failed: ok=%v err=%v", ok, err)
	}
	first := c.Snapshot().LastUpdated

	if ok, err := c.Refresh(context.Background()); err != nil || !ok {
		t.Fatalf("second refresh failed: ok=%v err=%v", ok, err)
	}
	second := c.Snapshot().LastUpdated
	if !second.After(first) {
		t.Fatalf("timestamp must strictly advance: first=%v second=%v", first, second)
	}
	// Trend values stay stable without new provider data.
	data, _ := c.Get("pottery")
	if data.TrendScore != 50 || data.TrendDirection != TrendStable {
		t.Fatalf("trend drifted without new data: %+v", data)
	}
}

func TestRefreshBandDriftCap(t *testing.T) {
	p := &stubProvider{series: map[string][]trends.InterestPoint{
		"indian pottery": series(10, 10, 10, 10, 10, 10, 10, 10, 80, 80, 80, 80),
	}}
	c := testCache(p, kvstore.NewMemStore())
	data := c.snap.Categories["pottery"]
	data.PriceRangeHigh = 1150 // one rising cycle would exceed 3x the seeded 400
	c.snap.Categories["pottery"] = data

	if ok, err := c.Refresh(context.Background()); err != nil || !ok {
		t.Fatalf("refresh failed: ok=%v err=%v", ok, err)
	}
	got, _ := c.Get("pottery")
	if got.PriceRangeHigh != 1200 {
		t.Fatalf("expected drift capped at 1200, got %v", got.PriceRangeHigh)
	}
}

func TestRefreshMutualExclusion(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	p := &stubProvider{}
	p.onCall = func(n int) {
		if n == 1 {
			close(entered)
			<-release
		}
	}
	c := testCache(p, kvstore.NewMemStore())

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Refresh(context.Background())
	}()
	<-entered

	if _, err := c.Refresh(context.Background()); !errors.Is(err, ErrRefreshRunning) {
		t.Fatalf("expected ErrRefreshRunning, got %v", err)
	}
	close(release)
	<-done
}

func TestRefreshCancellationKeepsCompletedItems(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &stubProvider{}
	p.onCall = func(n int) {
		if n == 3 {
			cancel()
		}
	}
	store := kvstore.NewMemStore()
	c := testCache(p, store)

	ok, err := c.Refresh(ctx)
	if ok || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got ok=%v err=%v", ok, err)
	}

	// Categories run alphabetically; the first three fetches complete
	// before the cancel takes effect at the next checkpoint.
	emb, _ := c.Get("embroidery")
	if emb.LastUpdated.IsZero() {
		t.Fatal("completed category lost after cancellation")
	}
	wood, _ := c.Get("woodwork")
	if !wood.LastUpdated.IsZero() {
		t.Fatal("unfetched category should be untouched")
	}
	if !c.IsStale() {
		t.Fatal("cancelled cycle must not mark the aggregate fresh")
	}
	if _, found, _ := store.Get(StoreKey); found {
		t.Fatal("cancelled cycle must not persist")
	}
}

func TestRefreshPersistsAndReloads(t *testing.T) {
	store := kvstore.NewMemStore()
	p := &stubProvider{series: map[string][]trends.InterestPoint{
		"indian pottery": series(10, 10, 10, 10, 10, 10, 10, 10, 80, 80, 80, 80),
	}}
	c := testCache(p, store)
	if ok, err := c.Refresh(context.Background()); err != nil || !ok {
		t.Fatalf("refresh failed: ok=%v err=%v", ok, err)
	}

	reloaded := Load(Config{Store: store})
	data, ok := reloaded.Get("pottery")
	if !ok || data.TrendScore != 80 || data.PriceRangeHigh != 440 {
		t.Fatalf("reloaded cache lost refresh results: %+v", data)
	}
	if reloaded.IsStale() {
		t.Fatal("reloaded cache should be fresh")
	}
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	c := Load(Config{})
	if _, err := NewScheduler(c, "not a cron spec"); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
	if _, err := NewScheduler(c, ""); err != nil {
		t.Fatalf("default schedule should be valid: %v", err)
	}
}
