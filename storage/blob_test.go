package storage

import (
	"context"
	"testing"

	"github.com/xraph/formwizard/form"
)

// mapBlob is a Blob over a single in-memory record, exercising the
// read-modify-write path shared by the cookie, redis, and sql backends.
func mapBlob() (*Blob, *State) {
	rec := NewState()
	b := &Blob{
		Load: func(context.Context) (*State, error) { return rec, nil },
		Save: func(_ context.Context, s *State) error {
			*rec = *s
			return nil
		},
		Clear: func(context.Context) error {
			*rec = *NewState()
			return nil
		},
	}
	return b, rec
}

func TestBlobRoundTrip(t *testing.T) {
	ctx := context.Background()
	b, _ := mapBlob()

	if err := b.SetCurrentStep(ctx, "shipping"); err != nil {
		t.Fatalf("SetCurrentStep: %v", err)
	}
	if err := b.SetStepData(ctx, "shipping", form.Values{"city": {"berlin"}}); err != nil {
		t.Fatalf("SetStepData: %v", err)
	}
	if err := b.SetStepFiles(ctx, "shipping", form.Files{"doc": {Key: "k"}}); err != nil {
		t.Fatalf("SetStepFiles: %v", err)
	}
	if err := b.SetExtraData(ctx, map[string]string{"a": "1"}); err != nil {
		t.Fatalf("SetExtraData: %v", err)
	}

	cur, err := b.CurrentStep(ctx)
	if err != nil || cur != "shipping" {
		t.Fatalf("CurrentStep = %q, %v", cur, err)
	}
	data, err := b.StepData(ctx, "shipping")
	if err != nil || data.Get("city") != "berlin" {
		t.Fatalf("StepData = %v, %v", data, err)
	}
	files, err := b.StepFiles(ctx, "shipping")
	if err != nil || files["doc"].Key != "k" {
		t.Fatalf("StepFiles = %v, %v", files, err)
	}
	extra, err := b.ExtraData(ctx)
	if err != nil || extra["a"] != "1" {
		t.Fatalf("ExtraData = %v, %v", extra, err)
	}
}

func TestBlobResetClears(t *testing.T) {
	ctx := context.Background()
	b, _ := mapBlob()

	if err := b.SetCurrentStep(ctx, "x"); err != nil {
		t.Fatalf("SetCurrentStep: %v", err)
	}
	if err := b.SetStepData(ctx, "x", form.Values{"f": {"v"}}); err != nil {
		t.Fatalf("SetStepData: %v", err)
	}
	if err := b.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	cur, _ := b.CurrentStep(ctx)
	if cur != "" {
		t.Fatalf("CurrentStep after reset = %q", cur)
	}
	data, _ := b.StepData(ctx, "x")
	if data != nil {
		t.Fatalf("StepData after reset = %v", data)
	}
}

func TestBlobMissingStepIsNil(t *testing.T) {
	ctx := context.Background()
	b, _ := mapBlob()

	data, err := b.StepData(ctx, "never")
	if err != nil {
		t.Fatalf("StepData: %v", err)
	}
	if data != nil {
		t.Fatalf("StepData for unknown step = %v, want nil", data)
	}
}
