package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/abrezinsky/luckydraw/internal/logger"
	"github.com/abrezinsky/luckydraw/internal/services"
	"github.com/abrezinsky/luckydraw/internal/testutil"
)

func TestSettingsService_BaseURL(t *testing.T) {
	svc := services.NewSettingsService(logger.Discard(), testutil.NewTestRepository(t))
	ctx := context.Background()

	url, err := svc.GetBaseURL(ctx)
	if err != nil || url != "" {
		t.Fatalf("expected empty base url, got %q (%v)", url, err)
	}

	if err := svc.SetBaseURL(ctx, "http://192.168.1.20:8082/"); err != nil {
		t.Fatal(err)
	}
	url, _ = svc.GetBaseURL(ctx)
	if url != "http://192.168.1.20:8082" {
		t.Errorf("expected trailing slash trimmed, got %q", url)
	}
}

func TestSettingsService_OperatorQR(t *testing.T) {
	svc := services.NewSettingsService(logger.Discard(), testutil.NewTestRepository(t))
	ctx := context.Background()

	if _, err := svc.OperatorQR(ctx); !errors.Is(err, services.ErrBaseURLNotSet) {
		t.Fatalf("expected ErrBaseURLNotSet, got %v", err)
	}

	svc.SetBaseURL(ctx, "http://10.0.0.2:8082")
	png, err := svc.OperatorQR(ctx)
	if err != nil {
		t.Fatalf("OperatorQR failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected PNG data")
	}
}
