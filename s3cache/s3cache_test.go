/* Copyright (c) 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/gregjones/httpcache/test"
	"github.com/mikeb26/pdga-ratingest/internal"
)

func TestS3Cache(t *testing.T) {
	cache := New(context.Background(), internal.WebCacheBucket, false, nil)
	if err := cache.Init(); err != nil {
		t.Skipf("Skipping test due to lack of access to %v: %v",
			internal.WebCacheBucket, err)
	}

	test.Cache(t, cache)
}

func TestS3CacheWithGzip(t *testing.T) {
	cache := New(context.Background(), internal.WebCacheBucket, true, nil)
	if err := cache.Init(); err != nil {
		t.Skipf("Skipping test due to lack of access to %v: %v",
			internal.WebCacheBucket, err)
	}

	test.Cache(t, cache)
}

func TestCacheKeyToObjectKey(t *testing.T) {
	plain := New(context.Background(), "b", false, nil)
	zipped := New(context.Background(), "b", true, nil)

	k := plain.cacheKeyToObjectKey("https://www.pdga.com/player/1")
	if !strings.HasPrefix(k, PathPrefix+"/") || strings.HasSuffix(k, ".gz") {
		t.Errorf("unexpected plain key %q", k)
	}
	if k != plain.cacheKeyToObjectKey("https://www.pdga.com/player/1") {
		t.Errorf("key not stable")
	}
	if k == plain.cacheKeyToObjectKey("https://www.pdga.com/player/2") {
		t.Errorf("distinct urls map to the same key")
	}
	if zk := zipped.cacheKeyToObjectKey("https://www.pdga.com/player/1"); zk != k+".gz" {
		t.Errorf("gzip key: got %q want %q", zk, k+".gz")
	}
}

func TestGzipBytes(t *testing.T) {
	in := []byte("<html>round ratings</html>")
	buf, err := gzipBytes(in)
	if err != nil {
		t.Fatalf("gzip: %v", err)
	}
	gr, err := gzip.NewReader(buf)
	if err != nil {
		t.Fatalf("gunzip: %v", err)
	}
	out, err := io.ReadAll(gr)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(in, out) {
		t.Fatalf("round trip mismatch: %q", out)
	}
}
