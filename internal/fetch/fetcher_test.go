package fetch

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dbmrq/paddock/internal/cache"
	perrors "github.com/dbmrq/paddock/internal/errors"
	"github.com/dbmrq/paddock/internal/standings"
)

// fakeAPI returns canned rows or an error and counts calls.
type fakeAPI struct {
	drivers      []standings.DriverStanding
	constructors []standings.ConstructorStanding
	err          error
	calls        int
}

func (f *fakeAPI) DriverStandings(ctx context.Context, year int) ([]standings.DriverStanding, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]standings.DriverStanding, len(f.drivers))
	copy(out, f.drivers)
	return out, nil
}

func (f *fakeAPI) ConstructorStandings(ctx context.Context, year int) ([]standings.ConstructorStanding, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]standings.ConstructorStanding, len(f.constructors))
	copy(out, f.constructors)
	return out, nil
}

// failingCache reports every write as failed.
type failingCache struct{}

func (failingCache) Get(string, any) (time.Time, bool, error) { return time.Time{}, false, nil }
func (failingCache) Put(string, any, time.Time) error        { return errors.New("disk full") }

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func driverRows() []standings.DriverStanding {
	return []standings.DriverStanding{
		{Position: 1, Driver: "Oscar Piastri", Team: "McLaren", Points: 99.5, Wins: 3},
		{Position: 2, Driver: "Lando Norris", Team: "McLaren", Points: 87, Wins: 1},
		{Position: 3, Driver: "Max Verstappen", Team: "Red Bull", Points: 61, Wins: 0},
	}
}

func constructorRows() []standings.ConstructorStanding {
	return []standings.ConstructorStanding{
		{Position: 1, Constructor: "McLaren", Points: 186.5, Wins: 4},
		{Position: 2, Constructor: "Ferrari", Points: 92, Wins: 1},
	}
}

func newTestFetcher(t *testing.T, api *fakeAPI) (*Fetcher, *cache.Store, *clock) {
	t.Helper()
	store := cache.NewStore(filepath.Join(t.TempDir(), "f1_cache.json"))
	clk := &clock{t: time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC)}
	return New(api, store, WithClock(clk.now), WithTTL(time.Hour)), store, clk
}

func TestFetcher_NetworkThenCache(t *testing.T) {
	api := &fakeAPI{drivers: driverRows()}
	f, _, clk := newTestFetcher(t, api)

	rows, meta, err := f.Drivers(context.Background(), 2026, false)
	if err != nil {
		t.Fatalf("Drivers() error = %v", err)
	}
	if meta.Source != SourceNetwork {
		t.Errorf("first fetch source = %v, want network", meta.Source)
	}
	for i, row := range rows {
		if row.Position != i+1 {
			t.Errorf("rows[%d].Position = %d", i, row.Position)
		}
	}

	clk.advance(10 * time.Minute)
	again, meta, err := f.Drivers(context.Background(), 2026, false)
	if err != nil {
		t.Fatalf("Drivers() error = %v", err)
	}
	if meta.Source != SourceCache {
		t.Errorf("second fetch source = %v, want cache", meta.Source)
	}
	if api.calls != 1 {
		t.Errorf("API calls = %d, want 1", api.calls)
	}
	assertSameDrivers(t, again, rows)
}

func TestFetcher_ExpiredEntryRefetches(t *testing.T) {
	api := &fakeAPI{drivers: driverRows()}
	f, _, clk := newTestFetcher(t, api)

	_, _, _ = f.Drivers(context.Background(), 2026, false)
	clk.advance(2 * time.Hour)
	_, meta, _ := f.Drivers(context.Background(), 2026, false)

	if meta.Source != SourceNetwork {
		t.Errorf("source = %v, want network after TTL", meta.Source)
	}
	if api.calls != 2 {
		t.Errorf("API calls = %d, want 2", api.calls)
	}
}

func TestFetcher_ForceBypassesTTL(t *testing.T) {
	api := &fakeAPI{constructors: constructorRows()}
	f, _, _ := newTestFetcher(t, api)

	_, _, _ = f.Constructors(context.Background(), 2026, false)
	_, meta, err := f.Constructors(context.Background(), 2026, true)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Source != SourceNetwork {
		t.Errorf("forced source = %v, want network", meta.Source)
	}
	if api.calls != 2 {
		t.Errorf("API calls = %d, want 2", api.calls)
	}
}

func TestFetcher_NetworkFailureUsesCache(t *testing.T) {
	api := &fakeAPI{drivers: driverRows()}
	f, _, clk := newTestFetcher(t, api)

	want, _, err := f.Drivers(context.Background(), 2026, false)
	if err != nil {
		t.Fatal(err)
	}

	api.err = perrors.NetworkUnavailable("api.jolpi.ca", errors.New("connection refused"))
	clk.advance(3 * time.Hour)

	got, meta, err := f.Drivers(context.Background(), 2026, false)
	if err != nil {
		t.Fatalf("expected fallback, got error %v", err)
	}
	if meta.Source != SourceStale {
		t.Errorf("source = %v, want stale", meta.Source)
	}
	if !errors.Is(meta.Err, perrors.ErrNetwork) {
		t.Errorf("meta.Err = %v, want network error", meta.Err)
	}
	assertSameDrivers(t, got, want)
}

func TestFetcher_NetworkFailureNoCache(t *testing.T) {
	api := &fakeAPI{err: perrors.NetworkUnavailable("", errors.New("offline"))}
	f, _, _ := newTestFetcher(t, api)

	rows, _, err := f.Drivers(context.Background(), 2026, false)
	if err == nil {
		t.Fatal("expected error with nothing cached")
	}
	if rows != nil {
		t.Errorf("expected nil rows, got %v", rows)
	}
}

func TestFetcher_FallbackIsPerYear(t *testing.T) {
	api := &fakeAPI{drivers: driverRows()}
	f, _, _ := newTestFetcher(t, api)

	_, _, _ = f.Drivers(context.Background(), 2025, false)
	api.err = errors.New("offline")

	if _, _, err := f.Drivers(context.Background(), 2026, false); err == nil {
		t.Error("a cached 2025 entry must not satisfy 2026")
	}
}

func TestFetcher_Idempotent(t *testing.T) {
	api := &fakeAPI{drivers: driverRows()}
	f, _, _ := newTestFetcher(t, api)

	first, _, err := f.Drivers(context.Background(), 2026, true)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := f.Drivers(context.Background(), 2026, true)
	if err != nil {
		t.Fatal(err)
	}
	assertSameDrivers(t, first, second)
}

func TestFetcher_WritesCache(t *testing.T) {
	api := &fakeAPI{constructors: constructorRows()}
	f, store, clk := newTestFetcher(t, api)

	if _, _, err := f.Constructors(context.Background(), 2026, false); err != nil {
		t.Fatal(err)
	}

	var cached []standings.ConstructorStanding
	at, ok, err := store.Get("constructors_2026", &cached)
	if err != nil || !ok {
		t.Fatalf("expected cache entry, ok=%v err=%v", ok, err)
	}
	if !at.Equal(clk.t) {
		t.Errorf("cached at %v, want %v", at, clk.t)
	}
	if len(cached) != 2 || cached[0].Constructor != "McLaren" {
		t.Errorf("unexpected cached rows %+v", cached)
	}
}

func TestFetcher_CacheWriteFailureIsNotFatal(t *testing.T) {
	api := &fakeAPI{drivers: driverRows()}
	f := New(api, failingCache{})

	rows, meta, err := f.Drivers(context.Background(), 2026, false)
	if err != nil {
		t.Fatalf("cache write failure should not fail the fetch: %v", err)
	}
	if meta.Source != SourceNetwork || len(rows) != 3 {
		t.Errorf("unexpected result: %v rows from %v", len(rows), meta.Source)
	}
}

func TestFetcher_NilCache(t *testing.T) {
	api := &fakeAPI{drivers: driverRows()}
	f := New(api, nil)

	_, _, _ = f.Drivers(context.Background(), 2026, false)
	_, meta, _ := f.Drivers(context.Background(), 2026, false)

	if meta.Source != SourceNetwork || api.calls != 2 {
		t.Errorf("without a cache every call hits the API (calls=%d)", api.calls)
	}
}

func TestFetcher_ZeroTTLAlwaysAsks(t *testing.T) {
	api := &fakeAPI{drivers: driverRows()}
	store := cache.NewStore(filepath.Join(t.TempDir(), "c.json"))
	f := New(api, store, WithTTL(0))

	_, _, _ = f.Drivers(context.Background(), 2026, false)
	_, _, _ = f.Drivers(context.Background(), 2026, false)

	if api.calls != 2 {
		t.Errorf("API calls = %d, want 2", api.calls)
	}
}

func TestSourceString(t *testing.T) {
	tests := map[Source]string{
		SourceNetwork: "network",
		SourceCache:   "cache",
		SourceStale:   "stale",
		Source(9):     "unknown",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("Source(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}

func assertSameDrivers(t *testing.T, got, want []standings.DriverStanding) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
