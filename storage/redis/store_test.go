package redis

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/xraph/formwizard/form"
)

// testClient connects to the Redis named by REDIS_ADDR, skipping the
// test when the variable is unset.
func testClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping redis: %v", err)
	}
	return client
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)
	st := New(client, t.Name())
	t.Cleanup(func() { _ = st.Reset(ctx) })

	if err := st.SetCurrentStep(ctx, "profile"); err != nil {
		t.Fatalf("SetCurrentStep: %v", err)
	}
	if err := st.SetStepData(ctx, "profile", form.Values{"name": {"alice"}}); err != nil {
		t.Fatalf("SetStepData: %v", err)
	}

	st2 := New(client, t.Name())
	cur, err := st2.CurrentStep(ctx)
	if err != nil || cur != "profile" {
		t.Fatalf("CurrentStep = %q, %v", cur, err)
	}
	data, err := st2.StepData(ctx, "profile")
	if err != nil || data.Get("name") != "alice" {
		t.Fatalf("StepData = %v, %v", data, err)
	}
}

func TestStoreReset(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)
	st := New(client, t.Name())

	if err := st.SetCurrentStep(ctx, "x"); err != nil {
		t.Fatalf("SetCurrentStep: %v", err)
	}
	if err := st.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	cur, err := st.CurrentStep(ctx)
	if err != nil || cur != "" {
		t.Fatalf("CurrentStep after reset = %q, %v", cur, err)
	}
}
