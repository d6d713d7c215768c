package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testSnapshots(t *testing.T) (*Snapshots, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewWithClient(rdb, 30*time.Second)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestPutGetRoundTrip(t *testing.T) {
	c, _ := testSnapshots(t)
	ctx := context.Background()

	if err := c.Put(ctx, "tbl-1", []byte(`{"phase":"flop"}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	payload, ok, err := c.Get(ctx, "tbl-1")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if string(payload) != `{"phase":"flop"}` {
		t.Fatalf("payload = %s", payload)
	}
}

func TestGetMiss(t *testing.T) {
	c, _ := testSnapshots(t)
	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Fatal("hit on absent key")
	}
}

func TestEntriesExpire(t *testing.T) {
	c, mr := testSnapshots(t)
	ctx := context.Background()

	if err := c.Put(ctx, "tbl-1", []byte("x")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	mr.FastForward(time.Minute)
	_, ok, err := c.Get(ctx, "tbl-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Fatal("entry survived past its TTL")
	}
}

func TestInvalidate(t *testing.T) {
	c, _ := testSnapshots(t)
	ctx := context.Background()

	if err := c.Put(ctx, "tbl-1", []byte("x")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := c.Invalidate(ctx, "tbl-1"); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "tbl-1"); ok {
		t.Fatal("entry survived invalidation")
	}
}

func TestNilCacheIsInert(t *testing.T) {
	var c *Snapshots
	ctx := context.Background()
	if err := c.Put(ctx, "tbl-1", []byte("x")); err != nil {
		t.Fatalf("nil Put() error = %v", err)
	}
	if _, ok, err := c.Get(ctx, "tbl-1"); ok || err != nil {
		t.Fatalf("nil Get() = %v, %v", ok, err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil Close() error = %v", err)
	}
}
