package verification

import (
	"context"
	"sync"
	"testing"
	"time"

	verificationerrors "go-presence/internal/verification/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPairCode_BindsEmployeeAndTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	code := NewPairCode("emp-1", now, DefaultPairCodeTTL)

	assert.Contains(t, code.Code, "PAIR-emp-1-")
	assert.Equal(t, "emp-1", code.EmployeeID)
	assert.Equal(t, now.Add(2*time.Minute), code.ExpiresAt())

	other := NewPairCode("emp-1", now, DefaultPairCodeTTL)
	assert.NotEqual(t, code.Code, other.Code)
}

func TestNewPairCode_ConfiguredTTL(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	code := NewPairCode("emp-1", now, 30*time.Second)
	assert.Equal(t, now.Add(30*time.Second), code.ExpiresAt())

	// a non-positive ttl falls back to the default window
	code = NewPairCode("emp-1", now, 0)
	assert.Equal(t, now.Add(DefaultPairCodeTTL), code.ExpiresAt())
}

func TestMemoryStore_ShortTTLRejectedAfterExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPairCodeStore()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	code := NewPairCode("emp-1", now, time.Second)
	require.NoError(t, store.Save(ctx, code))

	_, err := store.Claim(ctx, code.Code, "emp-2", now.Add(90*time.Second))
	assert.ErrorIs(t, err, verificationerrors.ErrPairCodeExpired)
}

func TestMemoryStore_ClaimOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPairCodeStore()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	code := NewPairCode("emp-1", now, DefaultPairCodeTTL)
	require.NoError(t, store.Save(ctx, code))

	claimed, err := store.Claim(ctx, code.Code, "emp-2", now.Add(30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, code.Code, claimed.Code)

	_, err = store.Claim(ctx, code.Code, "emp-2", now.Add(40*time.Second))
	assert.ErrorIs(t, err, verificationerrors.ErrPairCodeNotFound)
}

func TestMemoryStore_ExpiredCodeRejectedOnFirstClaim(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPairCodeStore()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	code := NewPairCode("emp-1", now, DefaultPairCodeTTL)
	require.NoError(t, store.Save(ctx, code))

	_, err := store.Claim(ctx, code.Code, "emp-2", now.Add(121*time.Second))
	assert.ErrorIs(t, err, verificationerrors.ErrPairCodeExpired)
}

func TestMemoryStore_ClaimAtExactExpiryAllowed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPairCodeStore()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	code := NewPairCode("emp-1", now, DefaultPairCodeTTL)
	require.NoError(t, store.Save(ctx, code))

	_, err := store.Claim(ctx, code.Code, "emp-2", now.Add(120*time.Second))
	assert.NoError(t, err)
}

func TestMemoryStore_GeneratorCannotClaimOwnCode(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPairCodeStore()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	code := NewPairCode("emp-1", now, DefaultPairCodeTTL)
	require.NoError(t, store.Save(ctx, code))

	_, err := store.Claim(ctx, code.Code, "emp-1", now.Add(time.Second))
	assert.ErrorIs(t, err, verificationerrors.ErrPairCodeSelfClaim)

	// the failed self-claim must not consume the code
	claimed, err := store.Claim(ctx, code.Code, "emp-2", now.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, code.Code, claimed.Code)
}

func TestMemoryStore_UnknownCode(t *testing.T) {
	store := NewMemoryPairCodeStore()
	_, err := store.Claim(context.Background(), "PAIR-nope", "emp-2", time.Now())
	assert.ErrorIs(t, err, verificationerrors.ErrPairCodeNotFound)
}

func TestMemoryStore_ConcurrentClaimsSingleWinner(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPairCodeStore()
	now := time.Now()

	code := NewPairCode("emp-1", now, DefaultPairCodeTTL)
	require.NoError(t, store.Save(ctx, code))

	const attempts = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Claim(ctx, code.Code, "emp-2", now.Add(time.Second)); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestPairValidation_ConfirmRequiresClaim(t *testing.T) {
	var v PairValidation

	err := v.Confirm()
	assert.ErrorIs(t, err, verificationerrors.ErrPairNotClaimed)
	assert.False(t, v.Confirmed())

	v.RecordClaim(NewPairCode("emp-1", time.Now(), DefaultPairCodeTTL))
	require.NoError(t, v.Confirm())
	assert.True(t, v.Confirmed())
}
