package revokex_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/revokex"
	"github.com/stretchr/testify/require"
)

func TestRevokeAndLookup(t *testing.T) {
	s := revokex.New()
	notAfter := time.Now().Add(time.Hour)

	require.False(t, s.IsRevoked("token-a"))

	s.Revoke("token-a", notAfter)
	require.True(t, s.IsRevoked("token-a"))
	require.False(t, s.IsRevoked("token-b"))
}

func TestRevokeIdempotent(t *testing.T) {
	s := revokex.New()
	later := time.Now().Add(2 * time.Hour)
	earlier := time.Now().Add(1 * time.Hour)

	s.Revoke("token-a", later)
	s.Revoke("token-a", later)
	require.Equal(t, 1, s.Len())

	// A second revoke with an earlier bound must not shorten the entry.
	s.Revoke("token-a", earlier)
	require.Equal(t, 0, s.Prune(earlier.Add(time.Minute)))
	require.True(t, s.IsRevoked("token-a"))
}

func TestExpiredEntryNotRevoked(t *testing.T) {
	s := revokex.New()
	s.Revoke("token-a", time.Now().Add(-time.Second))

	// The entry still exists but no longer counts: the token is already
	// rejected by expiry checking.
	require.False(t, s.IsRevoked("token-a"))
	require.Equal(t, 1, s.Len())
}

func TestPrune(t *testing.T) {
	s := revokex.New()
	now := time.Now()

	s.Revoke("live", now.Add(time.Hour))
	s.Revoke("dead", now.Add(-time.Minute))
	s.Revoke("edge", now) // notAfter <= now is eligible

	removed := s.Prune(now)
	require.Equal(t, 2, removed)
	require.Equal(t, 1, s.Len())
	require.True(t, s.IsRevoked("live"))
	require.False(t, s.IsRevoked("dead"))
}

func TestPruneKeepsLiveEntries(t *testing.T) {
	s := revokex.New()
	now := time.Now()

	for i := range 100 {
		s.Revoke(fmt.Sprintf("token-%d", i), now.Add(time.Duration(i+1)*time.Second))
	}

	require.Equal(t, 0, s.Prune(now))
	require.Equal(t, 100, s.Len())
}

// Read-after-write visibility under concurrent load: once Revoke returns,
// every reader must observe the entry. Run 100 revoke+lookup pairs on
// distinct tokens across goroutines and assert zero false negatives.
func TestConcurrentRevokeVisibility(t *testing.T) {
	s := revokex.New()
	notAfter := time.Now().Add(time.Hour)

	const n = 100
	var wg sync.WaitGroup
	misses := make(chan string, n)

	for i := range n {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			s.Revoke(id, notAfter)
			if !s.IsRevoked(id) {
				misses <- id
			}
		}(fmt.Sprintf("token-%d", i))
	}
	wg.Wait()
	close(misses)

	for id := range misses {
		t.Errorf("revocation of %s not visible after Revoke returned", id)
	}
	require.Equal(t, n, s.Len())
}

func TestConcurrentPruneDoesNotBlockOrCorrupt(t *testing.T) {
	s := revokex.New()
	stop := make(chan struct{})
	var wg sync.WaitGroup

	// Writers and readers churn while prune runs continuously.
	for w := range 4 {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-stop:
					return
				default:
				}
				id := fmt.Sprintf("w%d-%d", w, i)
				s.Revoke(id, time.Now().Add(time.Millisecond))
				s.IsRevoked(id)
			}
		}(w)
	}

	for range 200 {
		s.Prune(time.Now())
	}
	close(stop)
	wg.Wait()

	// Everything left is prunable shortly after.
	time.Sleep(5 * time.Millisecond)
	s.Prune(time.Now())
	require.Zero(t, s.Len())
}

// Store growth must be bounded by revocation rate x token lifetime, not by
// how many tokens have ever been revoked.
func TestBoundedGrowthAcrossRevokeExpireCycles(t *testing.T) {
	s := revokex.New()
	base := time.Now()

	const cycles = 10_000
	const lifetime = 100 // entries that are still live at any instant

	maxLen := 0
	for i := range cycles {
		now := base.Add(time.Duration(i) * time.Second)
		s.Revoke(fmt.Sprintf("token-%d", i), now.Add(lifetime*time.Second))
		if i%lifetime == 0 {
			s.Prune(now)
		}
		if l := s.Len(); l > maxLen {
			maxLen = l
		}
	}

	require.LessOrEqual(t, maxLen, 2*lifetime, "store grew beyond the live-token bound")
	s.Prune(base.Add((cycles + lifetime) * time.Second))
	require.Zero(t, s.Len())
}
