/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mikeb26/mcmahon-pairings/internal"
	"github.com/mikeb26/mcmahon-pairings/s3store"
	"github.com/mikeb26/mcmahon-pairings/tourney"
)

// Options controls where documents are fetched from and cached.
type Options struct {
	// CacheBucket, when set, backs the web cache with S3. Otherwise
	// responses are cached in memory for the life of the process.
	CacheBucket string
	Gzip        bool
	MaxAge      time.Duration

	// HTTPClient overrides the cached client built from the fields above.
	HTTPClient *http.Client
	// Store is used for s3:// locations in its bucket instead of a store
	// created from the default AWS configuration.
	Store  *s3store.Store
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func isS3(location string) bool {
	return strings.HasPrefix(location, "s3://")
}

func isHTTP(location string) bool {
	return strings.HasPrefix(location, "http://") ||
		strings.HasPrefix(location, "https://")
}

// Load reads a tournament document from an s3://bucket/key url, an
// http(s) url or a local file.
func Load(ctx context.Context, location string, opts Options) (*tourney.Tournament,
	error) {

	switch {
	case isS3(location):
		store, key, err := openStore(ctx, location, opts)
		if err != nil {
			return nil, err
		}
		return store.LoadTournament(ctx, key)
	case isHTTP(location):
		return fetchTournament(ctx, location, opts)
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("unable to open tournament: %w", err)
	}
	defer f.Close()

	return tourney.Decode(f)
}

// Save writes a tournament document to an s3:// url or a local file.
func Save(ctx context.Context, location string, t *tourney.Tournament,
	opts Options) error {

	if isS3(location) {
		store, key, err := openStore(ctx, location, opts)
		if err != nil {
			return err
		}
		return store.SaveTournament(ctx, key, t)
	}

	var buf bytes.Buffer
	if err := t.Encode(&buf); err != nil {
		return fmt.Errorf("unable to encode tournament: %w", err)
	}
	return writeFile(location, buf.Bytes())
}

// SavePairings writes the games of a round to an s3:// url or a local file.
func SavePairings(ctx context.Context, location string, games []tourney.Game,
	opts Options) error {

	if isS3(location) {
		store, key, err := openStore(ctx, location, opts)
		if err != nil {
			return err
		}
		return store.SavePairings(ctx, key, games)
	}

	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode pairings: %w", err)
	}
	return writeFile(location, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write %v: %w", path, err)
	}
	return nil
}

func openStore(ctx context.Context, location string,
	opts Options) (*s3store.Store, string, error) {

	bucket, key, err := s3store.ParseURL(location)
	if err != nil {
		return nil, "", err
	}
	if opts.Store != nil && opts.Store.Bucket() == bucket {
		return opts.Store, key, nil
	}

	store := s3store.New(ctx, bucket, opts.Gzip, opts.logger())
	if err := store.Init(); err != nil {
		return nil, "", err
	}

	return store, key, nil
}

// httpClient returns the caller's client or a cached one. When the S3 cache
// cannot be initialized it falls back to an in-memory cache.
func httpClient(ctx context.Context, opts Options) *http.Client {
	if opts.HTTPClient != nil {
		return opts.HTTPClient
	}
	if opts.CacheBucket == "" {
		return internal.NewCachedHttpClient(nil, opts.MaxAge)
	}

	cache := s3store.New(ctx, opts.CacheBucket, opts.Gzip, opts.logger())
	if err := cache.Init(); err != nil {
		opts.logger().Warn("failed to init S3 cache; using memory cache",
			zap.String("bucket", opts.CacheBucket), zap.Error(err))
		return internal.NewCachedHttpClient(nil, opts.MaxAge)
	}

	return internal.NewCachedHttpClient(cache, opts.MaxAge)
}

func fetch(ctx context.Context, url string, opts Options) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch %v (new): %w", url, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := httpClient(ctx, opts).Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch %v (do): %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unable to fetch %v: http status: %v", url,
			resp.StatusCode)
	}
	opts.logger().Debug("fetched document", zap.String("url", url),
		zap.Bool("cached", resp.Header.Get("X-From-Cache") == "1"))

	return resp.Body, nil
}

func fetchTournament(ctx context.Context, url string,
	opts Options) (*tourney.Tournament, error) {

	body, err := fetch(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	// read to EOF so the response lands in the cache
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("unable to read %v: %w", url, err)
	}

	return tourney.Decode(bytes.NewReader(data))
}
