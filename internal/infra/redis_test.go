package infra

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewRedisClientRequiresURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

func TestNewRedisClientRejectsMalformedURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), "not-a-redis-url"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNewRedisClientConnects(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	if err := client.Set(context.Background(), "idempotency:v1:smoke-key", "x", 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
}

func TestNewRedisClientFailsWhenUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisClient(context.Background(), "redis://"+addr); err == nil {
		t.Fatalf("expected connection error for stopped server")
	}
}
