package pipeline

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kallax/pkg/cache"
	"github.com/matzehuels/kallax/pkg/core/game"
	"github.com/matzehuels/kallax/pkg/core/pack"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
	kio "github.com/matzehuels/kallax/pkg/io"
)

func item(id int, name string, statuses ...string) game.Item {
	return game.Item{
		GameID:    id,
		VersionID: id * 10,
		Name:      name,
		Statuses:  statuses,
		Dimensions: []game.DimensionRecord{
			{Kind: game.KindVersion, Length: 11.5, Width: 11.5, Depth: 3},
		},
	}
}

func sampleItems() []game.Item {
	return []game.Item{
		item(1, "Azul", "own"),
		item(2, "Brass", "own"),
		item(3, "Cascadia", "wishlist"),
		item(4, "Dune", "own", "fortrade"),
	}
}

type fakeFetcher struct {
	items []game.Item
	err   error
	calls atomic.Int32
}

func (f *fakeFetcher) FetchItems(_ context.Context, username string, refresh bool) ([]game.Item, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestRunner(t *testing.T, f CollectionFetcher) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, f, quietLogger())
	t.Cleanup(func() { r.Close() })
	return r
}

func TestValidateForFetch(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode kerrors.Code
	}{
		{"username", Options{Username: "matze"}, ""},
		{"items file", Options{ItemsFile: "items.json"}, ""},
		{"empty items", Options{Items: []game.Item{}}, ""},
		{"none", Options{}, kerrors.ErrCodeInvalidInput},
		{"two sources", Options{Username: "matze", ItemsFile: "items.json"}, kerrors.ErrCodeInvalidInput},
		{"bad username", Options{Username: "a/b"}, kerrors.ErrCodeInvalidUsername},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForFetch()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !kerrors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := DefaultOptions()
	opts.Items = sampleItems()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}

	bad := DefaultOptions()
	bad.Items = sampleItems()
	bad.Formats = []string{"png"}
	if err := bad.ValidateAndSetDefaults(); !kerrors.Is(err, kerrors.ErrCodeInvalidFormat) {
		t.Errorf("png format: error = %v, want INVALID_FORMAT", err)
	}

	zero := Options{Items: sampleItems()}
	if err := zero.ValidateAndSetDefaults(); !kerrors.Is(err, kerrors.ErrCodeInvalidConfig) {
		t.Errorf("zero config: error = %v, want INVALID_CONFIG", err)
	}
}

func TestFilterItems(t *testing.T) {
	expansion := item(5, "Azul: Crystal Mosaic", "own")
	expansion.IsExpansion = true
	items := append(sampleItems(), expansion)

	tests := []struct {
		name     string
		statuses map[string]pack.StatusMode
		expand   bool
		want     []int
	}{
		{"no filter", nil, true, []int{1, 2, 3, 4, 5}},
		{"no expansions", nil, false, []int{1, 2, 3, 4}},
		{"include own", map[string]pack.StatusMode{"own": pack.StatusInclude}, true, []int{1, 2, 4, 5}},
		{"exclude fortrade", map[string]pack.StatusMode{"fortrade": pack.StatusExclude}, true, []int{1, 2, 3, 5}},
		{"include own exclude fortrade", map[string]pack.StatusMode{
			"own": pack.StatusInclude, "fortrade": pack.StatusExclude,
		}, false, []int{1, 2}},
		{"include unknown", map[string]pack.StatusMode{"preordered": pack.StatusInclude}, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := pack.DefaultConfig()
			cfg.Statuses = tt.statuses
			cfg.IncludeExpansions = tt.expand
			got := FilterItems(items, cfg)
			var ids []int
			for _, it := range got {
				ids = append(ids, it.GameID)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("got %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", ids, tt.want)
				}
			}
		})
	}
}

func TestExecuteItems(t *testing.T) {
	r := newTestRunner(t, nil)
	opts := DefaultOptions()
	opts.Items = sampleItems()
	opts.Formats = []string{"json", "svg"}

	var reports int
	opts.Progress = func(pack.Progress) { reports++ }

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.RunID == "" {
		t.Error("RunID should be set")
	}
	if res.Stats.ItemCount != 4 {
		t.Errorf("ItemCount = %d, want 4", res.Stats.ItemCount)
	}
	if res.Packing.Halted() {
		t.Fatal("packing should not halt")
	}
	if res.Stats.CubeCount != len(res.Packing.Cubes) || res.Stats.CubeCount == 0 {
		t.Errorf("CubeCount = %d, cubes = %d", res.Stats.CubeCount, len(res.Packing.Cubes))
	}
	if len(res.Artifacts["json"]) == 0 || len(res.Artifacts["svg"]) == 0 {
		t.Errorf("missing artifacts: %v", keys(res.Artifacts))
	}
	if reports == 0 {
		t.Error("progress should be reported on a fresh pack")
	}
	if res.CacheInfo.PackHit || res.CacheInfo.RenderHit {
		t.Errorf("first run should not hit the cache: %+v", res.CacheInfo)
	}

	again, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !again.CacheInfo.PackHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run should hit pack and render caches: %+v", again.CacheInfo)
	}
	if again.RunID == res.RunID {
		t.Error("each run should get its own id")
	}
}

func TestExecuteUsername(t *testing.T) {
	f := &fakeFetcher{items: sampleItems()}
	r := newTestRunner(t, f)
	opts := DefaultOptions()
	opts.Username = "Matze"
	opts.Config.Statuses = map[string]pack.StatusMode{"own": pack.StatusInclude}

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.ItemCount != 3 {
		t.Errorf("ItemCount = %d, want 3 after the status filter", res.Stats.ItemCount)
	}
	if res.CacheInfo.FetchHit {
		t.Error("first fetch should miss")
	}

	opts.Username = "matze"
	res, err = r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !res.CacheInfo.FetchHit {
		t.Error("second fetch should hit regardless of username case")
	}
	if got := f.calls.Load(); got != 1 {
		t.Errorf("fetcher calls = %d, want 1", got)
	}

	opts.Refresh = true
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if got := f.calls.Load(); got != 2 {
		t.Errorf("fetcher calls after refresh = %d, want 2", got)
	}

	opts.Refresh = false
	opts.Config.Statuses = nil
	res, err = r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("unfiltered Execute: %v", err)
	}
	if res.CacheInfo.FetchHit || res.Stats.ItemCount != 4 {
		t.Errorf("a different filter should miss the cache: hit=%v items=%d", res.CacheInfo.FetchHit, res.Stats.ItemCount)
	}
}

func TestExecuteItemsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	if err := kio.ExportItems(path, "matze", sampleItems()); err != nil {
		t.Fatalf("ExportItems: %v", err)
	}
	r := newTestRunner(t, nil)
	opts := DefaultOptions()
	opts.ItemsFile = path

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.ItemCount != 4 {
		t.Errorf("ItemCount = %d, want 4", res.Stats.ItemCount)
	}
}

func TestExecuteHalted(t *testing.T) {
	guessed := game.Item{
		GameID: 13,
		Name:   "Catan",
		Dimensions: []game.DimensionRecord{
			{Kind: game.KindGuessed, Length: 11.7, Width: 11.7, Depth: 2.8},
		},
	}
	r := newTestRunner(t, nil)
	opts := DefaultOptions()
	opts.Items = []game.Item{guessed}
	opts.Formats = []string{"svg"}

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Packing.Halted() {
		t.Fatal("packing should halt on a missing version")
	}
	if len(res.Artifacts) != 0 {
		t.Errorf("halted run should render nothing, got %v", keys(res.Artifacts))
	}

	opts.Config.BypassVersionWarning = true
	res, err = r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("bypass Execute: %v", err)
	}
	if res.Packing.Halted() || len(res.Artifacts["svg"]) == 0 {
		t.Error("bypassed run should pack and render")
	}
}

func TestExecuteErrors(t *testing.T) {
	opts := DefaultOptions()
	opts.Username = "matze"

	_, err := newTestRunner(t, nil).Execute(context.Background(), opts)
	if !kerrors.Is(err, kerrors.ErrCodeUnsupported) {
		t.Errorf("no fetcher: error = %v, want UNSUPPORTED", err)
	}

	f := &fakeFetcher{err: kerrors.New(kerrors.ErrCodeUserNotFound, "no such user")}
	_, err = newTestRunner(t, f).Execute(context.Background(), opts)
	if !kerrors.Is(err, kerrors.ErrCodeUserNotFound) {
		t.Errorf("fetch error: error = %v, want USER_NOT_FOUND", err)
	}

	f = &fakeFetcher{err: errors.New("boom")}
	_, err = newTestRunner(t, f).Execute(context.Background(), opts)
	if err == nil {
		t.Error("expected fetch error")
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner should fill defaults: %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func keys(m map[string][]byte) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	return out
}
