package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/kallax/pkg/buildinfo"
	"github.com/matzehuels/kallax/pkg/cache"
	"github.com/matzehuels/kallax/pkg/core/game"
	"github.com/matzehuels/kallax/pkg/core/pack"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
	"github.com/matzehuels/kallax/pkg/pipeline"
	"github.com/matzehuels/kallax/pkg/render"
	"github.com/matzehuels/kallax/pkg/storage"
)

// packRequest is the POST /api/pack body. Config fields absent from the
// request keep their defaults.
type packRequest struct {
	Username string         `json:"username,omitempty"`
	Items    []game.Item    `json:"items,omitempty"`
	Config   pack.Config    `json:"config"`
	Formats  []string       `json:"formats,omitempty"`
	Render   render.Options `json:"render"`
	Refresh  bool           `json:"refresh,omitempty"`

	// Owner names the stored record when packing inline items. It
	// defaults to Username.
	Owner string `json:"owner,omitempty"`
}

type packResponse struct {
	RunID     string             `json:"runId"`
	Result    *pack.Result       `json:"result"`
	Artifacts map[string][]byte  `json:"artifacts,omitempty"`
	Cached    pipeline.CacheInfo `json:"cached"`
	Timings   map[string]int64   `json:"timingsMs"`
}

type collectionResponse struct {
	Username string      `json:"username"`
	Items    []game.Item `json:"items"`
	Cached   bool        `json:"cached"`
}

// pinger is implemented by backends that can report connectivity, such as
// the Redis cache and the MongoDB store.
type pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// healthCheck returns the health status of the API. Backends that can be
// pinged are checked; any failure answers 503 with status "degraded".
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	body := map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	}
	status := http.StatusOK
	backends := []struct {
		name string
		v    any
	}{
		{"cache", s.runner.Cache},
		{"store", s.store},
	}
	for _, b := range backends {
		p, ok := b.v.(pinger)
		if !ok {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			s.logger.Warn("health check failed", "backend", b.name, "err", err)
			body[b.name] = err.Error()
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
	}
	respondJSON(w, status, body)
}

// getCollection fetches and filters a BGG collection. Query parameters:
// refresh=1, expansions=0, and repeated include=STATUS / exclude=STATUS.
func (s *Server) getCollection(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.DefaultOptions()
	opts.Username = chi.URLParam(r, "username")
	opts.Refresh = queryBool(r, "refresh", false)
	opts.Config.IncludeExpansions = queryBool(r, "expansions", true)
	opts.Config.Statuses = queryStatuses(r)

	ctx, cancel := s.runContext(r.Context())
	defer cancel()

	items, hit, err := s.runner.FetchWithCacheInfo(ctx, opts)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	if items == nil {
		items = []game.Item{}
	}
	respondJSON(w, http.StatusOK, collectionResponse{Username: opts.Username, Items: items, Cached: hit})
}

// postPack runs the pipeline. A halted run answers 200 with the
// missing_versions result; the client resubmits with
// config.bypassVersionWarning set.
func (s *Server) postPack(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	req := packRequest{Config: pack.DefaultConfig()}
	if err := json.Unmarshal(body, &req); err != nil {
		s.respondErr(w, r, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if s.opts.MaxItems > 0 && len(req.Items) > s.opts.MaxItems {
		s.respondErr(w, r, kerrors.New(kerrors.ErrCodeInvalidInput,
			"too many items: %d (max %d)", len(req.Items), s.opts.MaxItems))
		return
	}

	opts := pipeline.Options{
		Username: req.Username,
		Items:    req.Items,
		Config:   req.Config,
		Formats:  req.Formats,
		Render:   req.Render,
		Refresh:  req.Refresh,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.respondErr(w, r, err)
		return
	}

	// Identical concurrent requests share one run.
	v, err, shared := s.packs.Do(cache.Hash(body), func() (any, error) {
		ctx, cancel := s.runContext(context.WithoutCancel(r.Context()))
		defer cancel()
		return s.runner.Execute(ctx, opts)
	})
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	res := v.(*pipeline.Result)
	if shared {
		s.logger.Debug("shared pack run", "run", res.RunID)
	}

	owner := req.Owner
	if owner == "" {
		owner = req.Username
	}
	if owner != "" && !res.Packing.Halted() {
		rec := storage.Record{
			ID:        res.RunID,
			Owner:     owner,
			Config:    opts.Config,
			Result:    res.Packing,
			CreatedAt: s.now(),
		}
		if err := s.store.SaveLast(r.Context(), rec); err != nil {
			s.logger.Warn("store result", "owner", owner, "err", err)
		}
	}

	respondJSON(w, http.StatusOK, packResponse{
		RunID:     res.RunID,
		Result:    res.Packing,
		Artifacts: res.Artifacts,
		Cached:    res.CacheInfo,
		Timings: map[string]int64{
			"fetch":  res.Stats.FetchTime.Milliseconds(),
			"pack":   res.Stats.PackTime.Milliseconds(),
			"render": res.Stats.RenderTime.Milliseconds(),
		},
	})
}

// getLatest returns the owner's last stored record.
func (s *Server) getLatest(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Last(r.Context(), chi.URLParam(r, "owner"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// getLatestArtifact renders the owner's last stored result. Query
// parameters columns and title tune svg and pdf output.
func (s *Server) getLatestArtifact(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := render.ValidateFormat(format); err != nil {
		s.respondErr(w, r, err)
		return
	}
	rec, err := s.store.Last(r.Context(), chi.URLParam(r, "owner"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	opts := pipeline.DefaultOptions()
	opts.Formats = []string{format}
	opts.Render.Title = r.URL.Query().Get("title")
	if c, err := strconv.Atoi(r.URL.Query().Get("columns")); err == nil {
		opts.Render.Columns = c
	}

	artifacts, err := s.runner.Render(r.Context(), rec.Result, opts)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.ContentType(format))
	w.Header().Set("Content-Disposition",
		`inline; filename="`+storage.NormalizeOwner(rec.Owner)+"."+render.Extension(format)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.RequestTimeout > 0 {
		return context.WithTimeout(ctx, s.opts.RequestTimeout)
	}
	return context.WithCancel(ctx)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, DefaultMaxBodyBytes))
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "read request body")
	}
	return body, nil
}

func queryBool(r *http.Request, key string, def bool) bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func queryStatuses(r *http.Request) map[string]pack.StatusMode {
	q := r.URL.Query()
	if len(q["include"]) == 0 && len(q["exclude"]) == 0 {
		return nil
	}
	out := make(map[string]pack.StatusMode)
	for _, s := range q["include"] {
		out[s] = pack.StatusInclude
	}
	for _, s := range q["exclude"] {
		out[s] = pack.StatusExclude
	}
	return out
}
