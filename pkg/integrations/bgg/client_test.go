package bgg

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/kallax/pkg/cache"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
)

type fakeBGG struct {
	collectionCalls atomic.Int32
	thingCalls      atomic.Int32
	queued          atomic.Int32 // collection replies to answer with 202 first

	mu       sync.Mutex
	thingIDs []string
	auth     string
}

func (f *fakeBGG) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.auth = r.Header.Get("Authorization")
	f.mu.Unlock()

	switch r.URL.Path {
	case "/xmlapi2/collection":
		f.collectionCalls.Add(1)
		if f.queued.Add(-1) >= 0 {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		if r.URL.Query().Get("username") == "nobody" {
			fmt.Fprint(w, unknownUserXML)
			return
		}
		fmt.Fprint(w, collectionXML)
	case "/xmlapi2/thing":
		f.thingCalls.Add(1)
		f.mu.Lock()
		f.thingIDs = append(f.thingIDs, r.URL.Query().Get("id"))
		f.mu.Unlock()
		fmt.Fprint(w, thingsXML)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestClient(t *testing.T, backend cache.Cache) (*Client, *fakeBGG) {
	t.Helper()
	fake := &fakeBGG{}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	c := NewClient(backend, time.Hour, "tok")
	c.SetBaseURL(server.URL + "/")
	c.SetHTTPClient(server.Client())
	c.SetRetry(4, time.Millisecond)
	return c, fake
}

func TestFetchItems(t *testing.T) {
	c, fake := newTestClient(t, nil)

	items, err := c.FetchItems(context.Background(), "matze", false)
	if err != nil {
		t.Fatalf("FetchItems() error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].Name != "CATAN" || items[0].VersionID != 346745 {
		t.Errorf("first item = %s/%d", items[0].Name, items[0].VersionID)
	}
	if fake.thingCalls.Load() != 1 {
		t.Errorf("thing calls = %d, want 1", fake.thingCalls.Load())
	}
	if fake.thingIDs[0] != "13,325,822" {
		t.Errorf("thing ids = %q, want sorted batch", fake.thingIDs[0])
	}
	if fake.auth != "Bearer tok" {
		t.Errorf("Authorization = %q", fake.auth)
	}
}

func TestFetchCollectionQueued(t *testing.T) {
	c, fake := newTestClient(t, nil)
	fake.queued.Store(2)

	coll, err := c.FetchCollection(context.Background(), "matze", false)
	if err != nil {
		t.Fatalf("FetchCollection() error: %v", err)
	}
	if len(coll.Items) != 3 {
		t.Errorf("got %d items, want 3", len(coll.Items))
	}
	if n := fake.collectionCalls.Load(); n != 3 {
		t.Errorf("collection calls = %d, want 3", n)
	}
}

func TestFetchCollectionQueuedTooLong(t *testing.T) {
	c, fake := newTestClient(t, nil)
	fake.queued.Store(100)

	_, err := c.FetchCollection(context.Background(), "matze", false)
	if !kerrors.Is(err, kerrors.ErrCodeTimeout) {
		t.Errorf("error = %v, want TIMEOUT", err)
	}
}

func TestFetchCollectionUnknownUser(t *testing.T) {
	c, _ := newTestClient(t, nil)

	_, err := c.FetchCollection(context.Background(), "nobody", false)
	if !kerrors.Is(err, kerrors.ErrCodeUserNotFound) {
		t.Errorf("error = %v, want USER_NOT_FOUND", err)
	}
}

func TestFetchCollectionInvalidUsername(t *testing.T) {
	c, fake := newTestClient(t, nil)

	_, err := c.FetchCollection(context.Background(), "bad/name", false)
	if !kerrors.Is(err, kerrors.ErrCodeInvalidUsername) {
		t.Errorf("error = %v, want INVALID_USERNAME", err)
	}
	if fake.collectionCalls.Load() != 0 {
		t.Error("invalid usernames must not reach BGG")
	}
}

func TestFetchCollectionCached(t *testing.T) {
	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer backend.Close()
	c, fake := newTestClient(t, backend)
	ctx := context.Background()

	for range 2 {
		if _, err := c.FetchCollection(ctx, "Matze", false); err != nil {
			t.Fatalf("FetchCollection() error: %v", err)
		}
	}
	if _, err := c.FetchCollection(ctx, "matze", false); err != nil {
		t.Fatalf("FetchCollection() error: %v", err)
	}
	if n := fake.collectionCalls.Load(); n != 1 {
		t.Errorf("collection calls = %d, want 1 (usernames are case-insensitive)", n)
	}

	if _, err := c.FetchCollection(ctx, "matze", true); err != nil {
		t.Fatalf("FetchCollection() error: %v", err)
	}
	if n := fake.collectionCalls.Load(); n != 2 {
		t.Errorf("collection calls = %d, want 2 after refresh", n)
	}
}

func TestFetchThingsBatches(t *testing.T) {
	c, fake := newTestClient(t, nil)

	ids := make([]int, 0, 50)
	for i := 45; i >= 1; i-- {
		ids = append(ids, i)
	}
	ids = append(ids, 1, 2, 3)

	if _, err := c.FetchThings(context.Background(), ids, false); err != nil {
		t.Fatalf("FetchThings() error: %v", err)
	}
	if n := fake.thingCalls.Load(); n != 3 {
		t.Fatalf("thing calls = %d, want 3", n)
	}
	total := 0
	for _, q := range fake.thingIDs {
		n := len(strings.Split(q, ","))
		if n > BatchSize {
			t.Errorf("batch of %d ids exceeds %d", n, BatchSize)
		}
		total += n
	}
	if total != 45 {
		t.Errorf("requested %d ids, want 45 unique", total)
	}
}

func TestFetchThingsEmpty(t *testing.T) {
	c, fake := newTestClient(t, nil)

	things, err := c.FetchThings(context.Background(), nil, false)
	if err != nil {
		t.Fatalf("FetchThings() error: %v", err)
	}
	if len(things) != 0 || fake.thingCalls.Load() != 0 {
		t.Errorf("empty input should make no requests")
	}
}
