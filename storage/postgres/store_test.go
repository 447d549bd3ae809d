package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xraph/formwizard/form"
)

// testPool connects to the database named by POSTGRES_DSN, skipping
// the test when the variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := Migrate(context.Background(), pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	st := New(pool, t.Name())
	t.Cleanup(func() { _ = st.Reset(ctx) })

	if err := st.SetCurrentStep(ctx, "delivery"); err != nil {
		t.Fatalf("SetCurrentStep: %v", err)
	}
	if err := st.SetStepData(ctx, "delivery", form.Values{"city": {"lyon"}}); err != nil {
		t.Fatalf("SetStepData: %v", err)
	}

	st2 := New(pool, t.Name())
	cur, err := st2.CurrentStep(ctx)
	if err != nil || cur != "delivery" {
		t.Fatalf("CurrentStep = %q, %v", cur, err)
	}
	data, err := st2.StepData(ctx, "delivery")
	if err != nil || data.Get("city") != "lyon" {
		t.Fatalf("StepData = %v, %v", data, err)
	}
}

func TestStoreReset(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	st := New(pool, t.Name())

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
