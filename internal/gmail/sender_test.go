package gmail

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSenderCacheFetchesOnce(t *testing.T) {
	calls := 0
	fetch := func() (Identity, error) {
		calls++
		return Identity{Name: "Alice", Address: "a@x.test", Signature: "<b>sig</b>"}, nil
	}

	cache := NewSenderCache()
	first := cache.Get(fetch)
	second := cache.Get(fetch)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, "Alice", first.Name)
}

func TestSenderCacheRetriesAfterError(t *testing.T) {
	calls := 0
	fetch := func() (Identity, error) {
		calls++
		if calls == 1 {
			return Identity{}, errors.New("upstream down")
		}
		return Identity{Address: "a@x.test"}, nil
	}

	cache := NewSenderCache()

	first := cache.Get(fetch)
	assert.Equal(t, Identity{}, first, "fetch error degrades to empty identity")

	second := cache.Get(fetch)
	assert.Equal(t, "a@x.test", second.Address)
	assert.Equal(t, 2, calls)
}

func TestSenderCacheInvalidate(t *testing.T) {
	calls := 0
	fetch := func() (Identity, error) {
		calls++
		return Identity{Address: "a@x.test"}, nil
	}

	cache := NewSenderCache()
	cache.Get(fetch)
	cache.Invalidate()
	cache.Get(fetch)

	assert.Equal(t, 2, calls)
}
