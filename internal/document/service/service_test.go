package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/internal/document"
	"github.com/glovebox/glovebox/backend/go-services/internal/document/repository"
	"github.com/glovebox/glovebox/backend/go-services/internal/expiry"
	"github.com/glovebox/glovebox/backend/go-services/internal/storage"
	"github.com/glovebox/glovebox/backend/go-services/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC)

func TestSaveCreatesThenUpdatesInPlace(t *testing.T) {
	svc := NewMemoryService()
	ctx := context.Background()

	created, err := svc.Save(ctx, "u1", SaveInput{Title: " Insurance ", ExpiryDate: "2026-02-01", VehicleID: "v1"})
	require.NoError(t, err)
	assert.Equal(t, "Insurance", created.Title)
	assert.Equal(t, "u1", created.UserID)

	updated, err := svc.Save(ctx, "u1", SaveInput{ID: created.ID, Title: "Insurance", ExpiryDate: "2027-02-01"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "2027-02-01", updated.ExpiryDate)
	assert.Equal(t, "v1", updated.VehicleID)

	list, err := svc.List(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSaveValidation(t *testing.T) {
	svc := NewMemoryService()
	ctx := context.Background()

	_, err := svc.Save(ctx, "u1", SaveInput{Title: "", ExpiryDate: "2026-02-01", VehicleID: "v1"})
	assert.ErrorIs(t, err, document.ErrInvalidInput)

	_, err = svc.Save(ctx, "u1", SaveInput{Title: "Tax", ExpiryDate: "01-02-2026", VehicleID: "v1"})
	assert.ErrorIs(t, err, expiry.ErrInvalidDateFormat)

	_, err = svc.Save(ctx, "u1", SaveInput{Title: "Tax", ExpiryDate: "2026-02-01"})
	assert.ErrorIs(t, err, document.ErrInvalidInput)

	_, err = svc.Save(ctx, "u1", SaveInput{ID: "missing", Title: "Tax"})
	assert.ErrorIs(t, err, document.ErrNotFound)

	doc, err := svc.Save(ctx, "u1", SaveInput{Title: "Logbook", VehicleID: "v1"})
	require.NoError(t, err)
	assert.Empty(t, doc.ExpiryDate)
}

func TestClassifyReportsInvalidStoredDatesPerItem(t *testing.T) {
	repo := repository.NewMemoryRepo()
	svc := New(repo, nil, 0)
	ctx := context.Background()

	for _, d := range []*document.TrackedDocument{
		{UserID: "u1", VehicleID: "v1", Title: "Insurance", ExpiryDate: "2026-01-25"},
		{UserID: "u1", VehicleID: "v1", Title: "Legacy", ExpiryDate: "10/01/2026"},
		{UserID: "u1", VehicleID: "v1", Title: "Manual"},
	} {
		require.NoError(t, repo.Create(ctx, d))
		time.Sleep(time.Millisecond)
	}

	before := testutil.ToFloat64(metrics.DocumentsClassified.WithLabelValues("invalid"))
	out, err := svc.Classify(ctx, "u1", "v1", refNow)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.NoError(t, out[0].Err)
	assert.Equal(t, expiry.StatusExpiring, out[0].Result.Status)
	assert.Equal(t, 15, out[0].Result.DaysRemaining)

	assert.ErrorIs(t, out[1].Err, expiry.ErrInvalidDateFormat)

	assert.NoError(t, out[2].Err)
	assert.Equal(t, expiry.StatusNone, out[2].Result.Status)

	after := testutil.ToFloat64(metrics.DocumentsClassified.WithLabelValues("invalid"))
	assert.Equal(t, before+1, after)
}

func TestScanLifecycle(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := New(repository.NewMemoryRepo(), store, time.Minute)
	ctx := context.Background()

	d, err := svc.Save(ctx, "u1", SaveInput{Title: "Licence", ExpiryDate: "2030-05-05", VehicleID: "v1"})
	require.NoError(t, err)

	_, _, err = svc.OpenScan(ctx, "u1", d.ID)
	assert.ErrorIs(t, err, document.ErrNoScan)

	withScan, err := svc.AttachScan(ctx, "u1", d.ID, strings.NewReader("jpeg"), 4, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "scans/u1/v1/"+d.ID, withScan.AttachmentKey)

	rc, ct, err := svc.OpenScan(ctx, "u1", d.ID)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "jpeg", string(body))
	assert.Equal(t, "image/jpeg", ct)

	_, err = svc.ScanURL(ctx, "u1", d.ID)
	assert.ErrorIs(t, err, storage.ErrPresignUnsupported)

	_, _, err = svc.OpenScan(ctx, "u2", d.ID)
	assert.ErrorIs(t, err, document.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, "u1", d.ID))
	_, _, err = store.Download(ctx, withScan.AttachmentKey)
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestScanWithoutStorage(t *testing.T) {
	svc := New(repository.NewMemoryRepo(), nil, 0)
	ctx := context.Background()
	d, err := svc.Save(ctx, "u1", SaveInput{Title: "Tax", VehicleID: "v1"})
	require.NoError(t, err)
	_, err = svc.AttachScan(ctx, "u1", d.ID, strings.NewReader("x"), 1, "")
	assert.ErrorIs(t, err, document.ErrStorageDisabled)
}
