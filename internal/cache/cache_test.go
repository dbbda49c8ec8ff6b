// internal/cache/cache_test.go
package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryKeyDeterministic(t *testing.T) {
	a := QueryKey("listings:v1", map[string]string{
		"location": "Nairobi",
		"min_beds": "3",
		"page":     "1",
	})
	b := QueryKey("listings:v1", map[string]string{
		"page":     "1",
		"min_beds": "3",
		"location": "Nairobi",
	})

	// Key must not depend on map iteration order.
	assert.Equal(t, a, b)
}

func TestQueryKeyVariesWithParams(t *testing.T) {
	base := QueryKey("listings:v1", map[string]string{"location": "Nairobi"})
	other := QueryKey("listings:v1", map[string]string{"location": "Mombasa"})
	assert.NotEqual(t, base, other)
}

func TestQueryKeyVariesWithVersion(t *testing.T) {
	v1 := QueryKey("listings:v1", map[string]string{"page": "1"})
	v2 := QueryKey("listings:v2", map[string]string{"page": "1"})
	assert.NotEqual(t, v1, v2)
}
