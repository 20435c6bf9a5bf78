package cache

import (
	"sync"
	"testing"
	"time"

	"delivery-sync/feature/sync/tabular"

	"github.com/stretchr/testify/assert"
)

func testDatasets() map[string]*tabular.Dataset {
	return map[string]*tabular.Dataset{
		"DeliveryOrders": tabular.New("DeliveryOrders", []string{"A"}, [][]any{{"1"}}),
	}
}

func TestStore_GetPut(t *testing.T) {
	store := NewStore()

	_, ok := store.Get("partner")
	assert.False(t, ok)

	store.Put("partner", testDatasets(), time.Minute)

	snap, ok := store.Get("partner")
	assert.True(t, ok)
	assert.Contains(t, snap.Datasets, "DeliveryOrders")
	assert.WithinDuration(t, time.Now(), snap.StoredAt, time.Second)

	// Other keys are unaffected
	_, ok = store.Get("other-partner")
	assert.False(t, ok)
}

func TestStore_ExpiredBehavesAsAbsent(t *testing.T) {
	store := NewStore()
	store.Put("partner", testDatasets(), time.Millisecond)

	time.Sleep(5 * time.Millisecond)

	_, ok := store.Get("partner")
	assert.False(t, ok)

	// The expired entry is not cleared; a fresh Put replaces it.
	store.Put("partner", testDatasets(), time.Minute)
	_, ok = store.Get("partner")
	assert.True(t, ok)
}

func TestStore_Invalidate(t *testing.T) {
	store := NewStore()
	store.Put("partner", testDatasets(), time.Minute)

	store.Invalidate("partner")

	_, ok := store.Get("partner")
	assert.False(t, ok)
}

func TestStore_PutReplacesWholeMapping(t *testing.T) {
	store := NewStore()
	store.Put("partner", testDatasets(), time.Minute)

	replacement := map[string]*tabular.Dataset{
		"Other": tabular.New("Other", []string{"B"}, nil),
	}
	store.Put("partner", replacement, time.Minute)

	snap, ok := store.Get("partner")
	assert.True(t, ok)
	assert.NotContains(t, snap.Datasets, "DeliveryOrders")
	assert.Contains(t, snap.Datasets, "Other")
}

func TestStore_ZeroTTLUsesDefault(t *testing.T) {
	store := NewStore()
	store.Put("partner", testDatasets(), 0)

	snap, ok := store.Get("partner")
	assert.True(t, ok)
	assert.Equal(t, DefaultTTL, snap.TTL)
}

func TestStore_ConcurrentReads(t *testing.T) {
	store := NewStore()
	store.Put("partner", testDatasets(), time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, ok := store.Get("partner")
			assert.True(t, ok)
			assert.Contains(t, snap.Datasets, "DeliveryOrders")
		}()
	}
	wg.Wait()
}

func TestStore_ConcurrentReadersAndWriters(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Put("partner", testDatasets(), time.Minute)
		}()
		go func() {
			defer wg.Done()
			if snap, ok := store.Get("partner"); ok {
				// A reader must never observe a half-written mapping.
				assert.Contains(t, snap.Datasets, "DeliveryOrders")
			}
		}()
	}
	wg.Wait()
}
