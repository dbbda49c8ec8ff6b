// internal/services/image_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageServiceInvalidateListingsWithoutCache(t *testing.T) {
	svc := NewImageService(nil, nil, nil)

	// With caching disabled the invalidation hook is a no-op.
	assert.NotPanics(t, func() {
		svc.invalidateListings(context.Background())
	})
}

func TestImageServiceCleanupBlobWithoutStorage(t *testing.T) {
	svc := NewImageService(nil, nil, nil)

	result := svc.cleanupBlob("https://cdn.makaohomes.co.ke/properties/a.jpg")
	assert.True(t, result.Deleted)
	assert.Empty(t, result.OrphanedKey)
}
