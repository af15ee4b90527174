package challenge

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"board/internal/platform/notify"
)

func newTestRegistry(t *testing.T) (*Registry, *time.Time) {
	t.Helper()
	r := NewRegistry(10*time.Minute, 30*time.Second, 10)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	return r, &now
}

func TestCreateIssuesSixDigitCode(t *testing.T) {
	r, now := newTestRegistry(t)
	iss, err := r.Create("user-1", notify.MethodEmail, "a@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, iss.ID)
	assert.Len(t, iss.Code, 6)
	assert.Equal(t, now.Add(10*time.Minute), iss.ExpiresAt)
	assert.Equal(t, notify.MethodEmail, iss.Method)
	assert.Equal(t, "a@example.com", iss.Destination)
}

func TestConsumeSucceedsExactlyOnce(t *testing.T) {
	r, _ := newTestRegistry(t)
	iss, err := r.Create("user-1", notify.MethodEmail, "a@example.com")
	require.NoError(t, err)

	rec, err := r.Consume(iss.ID, iss.Code)
	require.NoError(t, err)
	assert.Equal(t, "user-1", rec.UserID)
	assert.Equal(t, notify.MethodEmail, rec.Method)

	_, err = r.Consume(iss.ID, iss.Code)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConsumeTrimsSuppliedCode(t *testing.T) {
	r, _ := newTestRegistry(t)
	iss, err := r.Create("user-1", notify.MethodSMS, "+15551234567")
	require.NoError(t, err)

	_, err = r.Consume(iss.ID, "  "+iss.Code+"\n")
	assert.NoError(t, err)
}

func TestConsumeWrongCodeKeepsChallenge(t *testing.T) {
	r, _ := newTestRegistry(t)
	iss, err := r.Create("user-1", notify.MethodEmail, "a@example.com")
	require.NoError(t, err)

	_, err = r.Consume(iss.ID, "000000")
	assert.ErrorIs(t, err, ErrInvalidCode)

	// still alive, correct code works
	_, err = r.Consume(iss.ID, iss.Code)
	assert.NoError(t, err)
}

func TestConsumeAttemptCap(t *testing.T) {
	r, _ := newTestRegistry(t)
	iss, err := r.Create("user-1", notify.MethodEmail, "a@example.com")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err := r.Consume(iss.ID, "000000")
		assert.ErrorIs(t, err, ErrInvalidCode, "attempt %d", i+1)
	}

	// 11th failing call crosses the cap and deletes the record; the correct
	// code would not have matched either on that call
	_, err = r.Consume(iss.ID, iss.Code)
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	_, err = r.Consume(iss.ID, iss.Code)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConsumeExpiredDeletesWithoutBurningAttempt(t *testing.T) {
	r, now := newTestRegistry(t)
	iss, err := r.Create("user-1", notify.MethodEmail, "a@example.com")
	require.NoError(t, err)

	*now = now.Add(10*time.Minute + time.Second)

	_, err = r.Consume(iss.ID, iss.Code)
	assert.ErrorIs(t, err, ErrExpired)

	_, err = r.Consume(iss.ID, iss.Code)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResendCooldown(t *testing.T) {
	r, now := newTestRegistry(t)
	iss, err := r.Create("user-1", notify.MethodEmail, "a@example.com")
	require.NoError(t, err)

	_, err = r.Resend(iss.ID)
	var rl *RateLimitedError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 30, rl.RetryAfter)

	*now = now.Add(12 * time.Second)
	_, err = r.Resend(iss.ID)
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 18, rl.RetryAfter)

	*now = now.Add(18 * time.Second)
	reissued, err := r.Resend(iss.ID)
	require.NoError(t, err)
	assert.NotEqual(t, iss.Code, reissued.Code)
	assert.Equal(t, now.Add(10*time.Minute), reissued.ExpiresAt)
}

func TestResendRetryAfterRoundsUp(t *testing.T) {
	r, now := newTestRegistry(t)
	iss, err := r.Create("user-1", notify.MethodEmail, "a@example.com")
	require.NoError(t, err)

	*now = now.Add(29*time.Second + 500*time.Millisecond)
	_, err = r.Resend(iss.ID)
	var rl *RateLimitedError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 1, rl.RetryAfter)
}

func TestResendInvalidatesOldCodeAndResetsAttempts(t *testing.T) {
	r, now := newTestRegistry(t)
	iss, err := r.Create("user-1", notify.MethodEmail, "a@example.com")
	require.NoError(t, err)

	// burn a few attempts on the first code
	for i := 0; i < 9; i++ {
		_, err := r.Consume(iss.ID, "000000")
		require.ErrorIs(t, err, ErrInvalidCode)
	}

	*now = now.Add(time.Minute)
	reissued, err := r.Resend(iss.ID)
	require.NoError(t, err)
	require.NotEqual(t, iss.Code, reissued.Code)

	// the old code no longer matches
	_, err = r.Consume(iss.ID, iss.Code)
	assert.ErrorIs(t, err, ErrInvalidCode)

	// attempts were reset, so another nine failures still leave room
	for i := 0; i < 8; i++ {
		_, err := r.Consume(iss.ID, "000000")
		require.ErrorIs(t, err, ErrInvalidCode)
	}
	_, err = r.Consume(iss.ID, reissued.Code)
	assert.NoError(t, err)
}

func TestResendUnknownID(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, err := r.Resend("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiscard(t *testing.T) {
	r, _ := newTestRegistry(t)
	iss, err := r.Create("user-1", notify.MethodEmail, "a@example.com")
	require.NoError(t, err)

	r.Discard(iss.ID)
	_, err = r.Consume(iss.ID, iss.Code)
	assert.ErrorIs(t, err, ErrNotFound)

	// unknown id is a no-op
	r.Discard("nope")
}

func TestConcurrentConsumeSingleWinner(t *testing.T) {
	r := NewRegistry(10*time.Minute, 30*time.Second, 10)
	iss, err := r.Create("user-1", notify.MethodEmail, "a@example.com")
	require.NoError(t, err)

	const workers = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Consume(iss.ID, iss.Code); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	n := 0
	for range wins {
		n++
	}
	assert.Equal(t, 1, n)
}
