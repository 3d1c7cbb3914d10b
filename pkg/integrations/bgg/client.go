package bgg

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/kallax/pkg/cache"
	"github.com/matzehuels/kallax/pkg/core/game"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
	"github.com/matzehuels/kallax/pkg/integrations"
)

const (
	// DefaultBaseURL is the public BGG site.
	DefaultBaseURL = "https://boardgamegeek.com"

	// BatchSize is the most ids BGG accepts in one thing request.
	BatchSize = 20

	// Concurrency bounds parallel thing requests.
	Concurrency = 4

	namespace = "bgg"
)

// Client fetches collections and game data from BGG.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a BGG client caching decoded replies in backend for ttl.
// BGG requires a registered application token for the XML API; an empty
// token sends no Authorization header.
func NewClient(backend cache.Cache, ttl time.Duration, token string) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, namespace, ttl, integrations.BearerHeaders(token)),
		baseURL: DefaultBaseURL,
	}
}

// SetBaseURL points the client at another host, e.g. a test server.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// FetchCollection returns the raw collection of username. An unknown user
// yields [kerrors.ErrCodeUserNotFound].
func (c *Client) FetchCollection(ctx context.Context, username string, refresh bool) (*Collection, error) {
	if err := kerrors.ValidateUsername(username); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/xmlapi2/collection?username=%s&version=1&stats=1",
		c.baseURL, integrations.URLEncode(username))
	key := "collection:" + strings.ToLower(username)

	var coll Collection
	err := c.Cached(ctx, key, refresh, &coll, func() error {
		if err := c.GetXML(ctx, url, &coll); err != nil {
			return err
		}
		if coll.IsError() {
			return kerrors.New(kerrors.ErrCodeUserNotFound, "BGG user %q not found", username)
		}
		return nil
	})
	if err != nil {
		return nil, classify(err, "fetch collection of %s", username)
	}
	return &coll, nil
}

// FetchThings returns game data keyed by id. Ids are deduplicated and
// requested in batches of [BatchSize], at most [Concurrency] at a time.
func (c *Client) FetchThings(ctx context.Context, ids []int, refresh bool) (map[int]Thing, error) {
	ids = slices.Compact(slices.Sorted(slices.Values(ids)))
	batches := slices.Collect(slices.Chunk(ids, BatchSize))
	results := make([][]Thing, len(batches))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(Concurrency)
	for i, batch := range batches {
		g.Go(func() error {
			things, err := c.fetchBatch(ctx, batch, refresh)
			if err != nil {
				return err
			}
			results[i] = things
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, classify(err, "fetch game data")
	}

	out := make(map[int]Thing, len(ids))
	for _, things := range results {
		for _, t := range things {
			out[t.ID] = t
		}
	}
	return out, nil
}

func (c *Client) fetchBatch(ctx context.Context, ids []int, refresh bool) ([]Thing, error) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	joined := strings.Join(parts, ",")
	url := fmt.Sprintf("%s/xmlapi2/thing?id=%s&versions=1&stats=1", c.baseURL, joined)

	var resp Things
	err := c.Cached(ctx, "thing:"+joined, refresh, &resp, func() error {
		return c.GetXML(ctx, url, &resp)
	})
	return resp.Items, err
}

// FetchItems fetches the collection of username with its game data and
// returns the normalized items.
func (c *Client) FetchItems(ctx context.Context, username string, refresh bool) ([]game.Item, error) {
	coll, err := c.FetchCollection(ctx, username, refresh)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(coll.Items))
	for _, it := range coll.Items {
		ids = append(ids, it.ObjectID)
	}
	things, err := c.FetchThings(ctx, ids, refresh)
	if err != nil {
		return nil, err
	}
	return Normalize(coll.Items, things), nil
}

// classify maps transport failures onto error codes. Errors that already
// carry a code pass through.
func classify(err error, format string, args ...any) error {
	var coded *kerrors.Error
	if errors.As(err, &coded) {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, integrations.ErrQueued):
		return kerrors.Wrap(kerrors.ErrCodeTimeout, err, format, args...)
	case errors.Is(err, integrations.ErrRateLimited):
		return kerrors.Wrap(kerrors.ErrCodeRateLimited, err, format, args...)
	case errors.Is(err, integrations.ErrNotFound):
		return kerrors.Wrap(kerrors.ErrCodeNotFound, err, format, args...)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return kerrors.Wrap(kerrors.ErrCodeNetwork, err, format, args...)
	}
}
