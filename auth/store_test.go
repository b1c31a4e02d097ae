package auth

import (
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func sequentialCodes(start int) func() (string, error) {
	var mu sync.Mutex
	next := start
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		code := fmt.Sprintf("%06d", next)
		next++
		return code, nil
	}
}

func newTestStore(t *testing.T, clock *fakeClock, opts ...StoreOption) *Store {
	t.Helper()
	opts = append([]StoreOption{WithClock(clock.Now)}, opts...)
	store, err := NewStore(16, 5*time.Minute, opts...)
	require.NoError(t, err)
	return store
}

func TestGenerateCode(t *testing.T) {
	sixDigits := regexp.MustCompile(`^[1-9][0-9]{5}$`)
	for i := 0; i < 500; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code)
	}
}

func TestStoreIssueAndRedeem(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(t, clock, WithCodeGenerator(sequentialCodes(123456)))

	assert.Equal(t, Idle, store.State("admin@example.com"))

	c, err := store.Issue("admin@example.com", PurposeLogin, "secret")
	require.NoError(t, err)
	assert.Equal(t, "123456", c.Code)
	assert.Equal(t, clock.Now(), c.IssuedAt)
	assert.Equal(t, CodeSent, store.State("ADMIN@example.com "))

	got, err := store.Redeem("admin@example.com", PurposeLogin, "123456")
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Pending)
	assert.Equal(t, Idle, store.State("admin@example.com"), "a matching code is consumed")

	_, err = store.Redeem("admin@example.com", PurposeLogin, "123456")
	assert.True(t, errs.IsNoPendingCodeError(err))
}

func TestStoreRedeemErrors(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(t, clock, WithCodeGenerator(sequentialCodes(200000)))

	_, err := store.Redeem("nobody@example.com", PurposeLogin, "200000")
	assert.True(t, errs.IsNoPendingCodeError(err))

	_, err = store.Issue("admin@example.com", PurposeLogin, "pw")
	require.NoError(t, err)

	_, err = store.Redeem("admin@example.com", PurposeLogin, "999999")
	assert.True(t, errs.IsInvalidCodeError(err))
	assert.Equal(t, CodeSent, store.State("admin@example.com"), "mismatch keeps the challenge")

	_, err = store.Redeem("admin@example.com", PurposeCredentialUpdate, "200000")
	assert.True(t, errs.IsNoPendingCodeError(err), "codes are scoped to their purpose")

	_, err = store.Redeem("admin@example.com", PurposeLogin, "200000")
	assert.NoError(t, err)
}

func TestStoreExpiry(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(t, clock, WithCodeGenerator(sequentialCodes(300000)))

	_, err := store.Issue("admin@example.com", PurposeLogin, "pw")
	require.NoError(t, err)
	clock.Advance(5 * time.Minute)
	_, err = store.Redeem("admin@example.com", PurposeLogin, "300000")
	require.NoError(t, err, "a code is still valid at exactly the ttl")

	_, err = store.Issue("admin@example.com", PurposeLogin, "pw")
	require.NoError(t, err)
	clock.Advance(5*time.Minute + time.Second)
	_, err = store.Redeem("admin@example.com", PurposeLogin, "300001")
	assert.True(t, errs.IsCodeExpiredError(err))
	assert.Equal(t, Idle, store.State("admin@example.com"), "expiry purges the challenge")

	_, err = store.Redeem("admin@example.com", PurposeLogin, "300001")
	assert.True(t, errs.IsNoPendingCodeError(err))
}

func TestStoreExpiredRegardlessOfCode(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(t, clock, WithCodeGenerator(sequentialCodes(310000)))

	_, err := store.Issue("admin@example.com", PurposeLogin, "pw")
	require.NoError(t, err)
	clock.Advance(6 * time.Minute)

	_, err = store.Redeem("admin@example.com", PurposeLogin, "000000")
	assert.True(t, errs.IsCodeExpiredError(err))
}

func TestStoreLatestCodeWins(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(t, clock, WithCodeGenerator(sequentialCodes(400000)))

	first, err := store.Issue("admin@example.com", PurposeLogin, "pw")
	require.NoError(t, err)
	second, err := store.Issue("admin@example.com", PurposeLogin, "pw")
	require.NoError(t, err)
	require.NotEqual(t, first.Code, second.Code)

	_, err = store.Redeem("admin@example.com", PurposeLogin, first.Code)
	assert.True(t, errs.IsInvalidCodeError(err))

	_, err = store.Redeem("admin@example.com", PurposeLogin, second.Code)
	assert.NoError(t, err)
}

func TestStoreRestore(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(t, clock, WithCodeGenerator(sequentialCodes(500000)))

	_, err := store.Issue("admin@example.com", PurposeLogin, "pw")
	require.NoError(t, err)
	redeemed, err := store.Redeem("admin@example.com", PurposeLogin, "500000")
	require.NoError(t, err)

	store.Restore("admin@example.com", redeemed)
	clock.Advance(6 * time.Minute)
	_, err = store.Redeem("admin@example.com", PurposeLogin, "500000")
	assert.True(t, errs.IsCodeExpiredError(err), "a restored code keeps its issue time")

	_, err = store.Issue("admin@example.com", PurposeLogin, "pw")
	require.NoError(t, err)
	store.Restore("admin@example.com", redeemed)
	_, err = store.Redeem("admin@example.com", PurposeLogin, "500001")
	assert.NoError(t, err, "a newer code is not overwritten by a restore")
}

func TestStoreWithdraw(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(t, clock, WithCodeGenerator(sequentialCodes(600000)))

	issued, _, had, err := store.replace("admin@example.com", PurposeLogin, "pw")
	require.NoError(t, err)
	require.False(t, had)
	store.withdraw("admin@example.com", issued, Challenge{}, false)
	assert.Equal(t, Idle, store.State("admin@example.com"))

	first, err := store.Issue("admin@example.com", PurposeLogin, "pw")
	require.NoError(t, err)
	resent, previous, had, err := store.replace("admin@example.com", PurposeLogin, "pw")
	require.NoError(t, err)
	require.True(t, had)
	assert.Equal(t, first, previous)

	store.withdraw("admin@example.com", resent, previous, had)
	_, err = store.Redeem("admin@example.com", PurposeLogin, first.Code)
	assert.NoError(t, err, "withdrawing a resend brings back the earlier code")
}

func TestStoreConcurrentRedeem(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(t, clock, WithCodeGenerator(sequentialCodes(700000)))

	_, err := store.Issue("admin@example.com", PurposeLogin, "pw")
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		redeemed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Redeem("admin@example.com", PurposeLogin, "700000"); err == nil {
				mu.Lock()
				redeemed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, redeemed)
}

func TestStoreSweep(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(t, clock)

	_, err := store.Issue("old@example.com", PurposeLogin, "pw")
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)
	_, err = store.Issue("recent@example.com", PurposeLogin, "pw")
	require.NoError(t, err)

	assert.Equal(t, 0, store.Sweep(time.Hour))
	assert.Equal(t, 2, store.Len())

	clock.Advance(36 * time.Minute)
	assert.Equal(t, 1, store.Sweep(time.Hour))
	assert.Equal(t, Idle, store.State("old@example.com"))
	assert.Equal(t, CodeSent, store.State("recent@example.com"))
}

func TestStoreConcurrentIssue(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(t, clock)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Issue("admin@example.com", PurposeLogin, "pw")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.Len())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "code_sent", CodeSent.String())
	assert.Equal(t, "authenticated", Authenticated.String())
}
