/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package s3store keeps tournament documents and cached web responses in
 * Amazon S3. Its httpcache.Cache implementation is based on the original
 * github.com/sourcegraph/s3cache, updated to use aws-sdk-go-v2.
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/mikeb26/mcmahon-pairings/tourney"
)

const cachePrefix = "httpcache"

var ErrNotFound = errors.New("object not found")

// API is the subset of *s3.Client the store uses.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput,
		opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input,
		opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Store reads and writes objects in a single S3 bucket.
type Store struct {
	// Client is the s3 client used by the store. Init sets it from the
	// default AWS configuration unless the caller already provided one.
	Client API

	bucket string

	// gzip compresses objects on write and expects them compressed on
	// read. Keys get a ".gz" suffix.
	gzip bool

	log *zap.Logger

	// ctx is used by the httpcache.Cache methods, which take no context.
	ctx context.Context
}

// New returns a Store over bucket. Callers should invoke Init before use
// unless they set Client themselves.
func New(ctx context.Context, bucket string, gzip bool, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}

	return &Store{
		bucket: bucket,
		gzip:   gzip,
		log:    log.With(zap.String("bucket", bucket)),
		ctx:    ctx,
	}
}

// Init loads the default AWS configuration (environment variables, then
// the shared config and credentials files) and checks that the bucket
// exists and can be listed.
func (s *Store) Init() error {
	if s.Client == nil {
		cfg, err := config.LoadDefaultConfig(s.ctx)
		if err != nil {
			return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
		}
		s.Client = s3.NewFromConfig(cfg)
	}

	if _, err := s.Client.HeadBucket(s.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w",
			s.bucket, err)
	}
	if _, err := s.Client.ListObjectsV2(s.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3store.init: list objects failed for %s: %w",
			s.bucket, err)
	}

	return nil
}

// Bucket returns the bucket name.
func (s *Store) Bucket() string {
	return s.bucket
}

func (s *Store) objectKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	if s.gzip && !strings.HasSuffix(key, ".gz") {
		key += ".gz"
	}
	return key
}

func (s *Store) cacheKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)

	return s.objectKey(fmt.Sprintf("%v/%v", cachePrefix,
		hex.EncodeToString(h.Sum(nil))))
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: s3://%v/%v", ErrNotFound, s.bucket, key)
		}
		return nil, fmt.Errorf("failed to get s3://%v/%v: %w", s.bucket, key, err)
	}
	defer resp.Body.Close()

	rdr := io.Reader(resp.Body)
	if s.gzip {
		gz, err := gzip.NewReader(rdr)
		if err != nil {
			return nil, fmt.Errorf("failed to open compressed s3://%v/%v: %w",
				s.bucket, key, err)
		}
		defer gz.Close()
		rdr = gz
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%v/%v: %w", s.bucket, key,
			err)
	}

	return data, nil
}

func (s *Store) put(ctx context.Context, key string, data []byte,
	contentType string) error {

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if s.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("failed to gzip data for s3://%v/%v: %w",
				s.bucket, key, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("failed to close gzip writer for s3://%v/%v: %w",
				s.bucket, key, err)
		}
		input.Body = bytes.NewReader(buf.Bytes())
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put failed for s3://%v/%v: %w", s.bucket, key, err)
	}
	return nil
}

// Get returns the cached response stored under key.
func (s *Store) Get(key string) ([]byte, bool) {
	data, err := s.get(s.ctx, s.cacheKey(key))
	if err != nil {
		// a missing object is just a cache miss
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	return data, true
}

// Set stores a cached response under key.
func (s *Store) Set(key string, data []byte) {
	if err := s.put(s.ctx, s.cacheKey(key), data, ""); err != nil {
		s.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes the cached response stored under key.
func (s *Store) Delete(key string) {
	_, err := s.Client.DeleteObject(s.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.cacheKey(key)),
	})
	if err != nil {
		s.log.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
	}
}

// LoadTournament reads and validates the tournament document at key.
func (s *Store) LoadTournament(ctx context.Context, key string) (*tourney.Tournament,
	error) {

	data, err := s.get(ctx, s.objectKey(key))
	if err != nil {
		return nil, err
	}

	return tourney.Decode(bytes.NewReader(data))
}

// SaveTournament writes t as JSON under key.
func (s *Store) SaveTournament(ctx context.Context, key string,
	t *tourney.Tournament) error {

	var buf bytes.Buffer
	if err := t.Encode(&buf); err != nil {
		return fmt.Errorf("unable to encode tournament: %w", err)
	}
	if err := s.put(ctx, s.objectKey(key), buf.Bytes(),
		"application/json"); err != nil {
		return err
	}
	s.log.Debug("saved tournament", zap.String("key", key),
		zap.Int("rounds", len(t.Rounds)))

	return nil
}

// SavePairings writes the games of a round as a JSON array under key.
func (s *Store) SavePairings(ctx context.Context, key string,
	games []tourney.Game) error {

	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode pairings: %w", err)
	}
	if err := s.put(ctx, s.objectKey(key), data, "application/json"); err != nil {
		return err
	}
	s.log.Debug("saved pairings", zap.String("key", key),
		zap.Int("games", len(games)))

	return nil
}

// ParseURL splits an s3://bucket/key location.
func ParseURL(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, "s3://")
	if !ok {
		return "", "", fmt.Errorf("%w: %q is not an s3 url",
			tourney.ErrInvalidInput, location)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs a bucket and a key",
			tourney.ErrInvalidInput, location)
	}

	return bucket, key, nil
}
