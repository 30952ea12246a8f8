package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func init() {
	DefaultBackoff.Delay = time.Millisecond
}

var errCorrupt = errors.New("corrupt entry")

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "a", []byte("svg"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "svg" {
		t.Fatalf("Get(a) = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry should be gone after Clear")
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultDir("chartkit")
	if err != nil {
		t.Fatalf("DefaultDir: %v", err)
	}
	if dir != "/tmp/xdg/chartkit" {
		t.Errorf("DefaultDir = %q, want /tmp/xdg/chartkit", dir)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashJSON(t *testing.T) {
	a, err := HashJSON(map[string]int{"x": 1, "y": 2})
	if err != nil {
		t.Fatalf("HashJSON: %v", err)
	}
	b, _ := HashJSON(map[string]int{"y": 2, "x": 1})
	if a != b {
		t.Error("HashJSON should not depend on map insertion order")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	dk1 := k.DatasetKey("data/tax.csv", DatasetKeyOpts{Shape: "bubble"})
	dk2 := k.DatasetKey("data/tax.csv", DatasetKeyOpts{Shape: "series"})
	if dk1 == dk2 {
		t.Error("Different shapes should produce different dataset keys")
	}
	if !strings.HasPrefix(dk1, "dataset:bubble:") {
		t.Errorf("DatasetKey prefix unexpected: %s", dk1)
	}

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Kind: "line", Format: "svg", Width: 800})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Kind: "line", Format: "png", Width: 800})
	if ak1 == ak2 {
		t.Error("Different formats should produce different artifact keys")
	}

	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Kind: "line", Format: "svg", Width: 800, Selection: []string{"A", "B"}})
	ak4 := k.ArtifactKey("hash123", ArtifactKeyOpts{Kind: "line", Format: "svg", Width: 800, Selection: []string{"B", "A"}})
	if ak3 != ak4 {
		t.Error("Selection order should not affect the artifact key")
	}
	if ak1 == ak3 {
		t.Error("Selection should affect the artifact key")
	}
}

func TestArtifactKeyDoesNotMutateSelection(t *testing.T) {
	sel := []string{"b", "a"}
	NewDefaultKeyer().ArtifactKey("h", ArtifactKeyOpts{Selection: sel})
	if sel[0] != "b" {
		t.Error("ArtifactKey must not reorder the caller's selection")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "proj:")

	if key := scoped.DatasetKey("a.csv", DatasetKeyOpts{Shape: "tile"}); !strings.HasPrefix(key, "proj:dataset:tile:") {
		t.Errorf("ScopedKeyer DatasetKey should be prefixed: %s", key)
	}
	if key := scoped.ArtifactKey("h", ArtifactKeyOpts{Kind: "tile", Format: "svg"}); !strings.HasPrefix(key, "proj:artifact:tile:svg:") {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	want := "prefix:" + NewDefaultKeyer().ArtifactKey("h", ArtifactKeyOpts{})
	if key := scoped.ArtifactKey("h", ArtifactKeyOpts{}); key != want {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://localhost:6379", ""); err == nil {
		t.Error("NewRedisCache should reject non-redis URL schemes")
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrBackend)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrBackend.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(errCorrupt) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errCorrupt
	})
	if err != errCorrupt {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrBackend)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrBackend)
	})
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("Should give up after 3 attempts: calls=%d err=%v", calls, err)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrBackend)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestBackoffAttempts(t *testing.T) {
	tests := []struct {
		name  string
		b     Backoff
		calls int
	}{
		{"default", Backoff{Attempts: 3, Delay: time.Millisecond}, 3},
		{"single", Backoff{Attempts: 1, Delay: time.Hour}, 1},
		{"zero attempts still calls once", Backoff{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := tt.b.Retry(context.Background(), func() error {
				calls++
				return Retryable(ErrBackend)
			})
			if calls != tt.calls || !errors.Is(err, ErrBackend) {
				t.Errorf("calls = %d err = %v, want %d calls and ErrBackend", calls, err, tt.calls)
			}
		})
	}
}

func TestBackendError(t *testing.T) {
	if backendError(nil) != nil {
		t.Error("nil error should stay nil")
	}

	err := backendError(fmt.Errorf("dial tcp 127.0.0.1:6379: connection refused"))
	if !IsRetryable(err) || !errors.Is(err, ErrBackend) {
		t.Errorf("network failure = %v, want retryable ErrBackend", err)
	}

	for _, cause := range []error{context.Canceled, fmt.Errorf("read: %w", context.DeadlineExceeded)} {
		err := backendError(cause)
		if IsRetryable(err) || errors.Is(err, ErrBackend) {
			t.Errorf("backendError(%v) = %v, want caller error returned as-is", cause, err)
		}
	}
}
