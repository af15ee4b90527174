package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	enabled bool
	err     error
	sent    []string
}

func (f *fakeChannel) Enabled() bool { return f.enabled }

func (f *fakeChannel) Send(_ context.Context, destination, code string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, destination+":"+code)
	return nil
}

func TestParseMethod(t *testing.T) {
	assert.Equal(t, MethodSMS, ParseMethod("sms"))
	assert.Equal(t, MethodEmail, ParseMethod("email"))
	assert.Equal(t, MethodEmail, ParseMethod(""))
	assert.Equal(t, MethodEmail, ParseMethod("carrier-pigeon"))
}

func TestValidDestination(t *testing.T) {
	assert.True(t, ValidDestination(MethodEmail, "a@example.com"))
	assert.False(t, ValidDestination(MethodEmail, "not-an-email"))
	assert.False(t, ValidDestination(MethodEmail, ""))
	assert.True(t, ValidDestination(MethodSMS, "+15551234567"))
	assert.False(t, ValidDestination(MethodSMS, "555-1234"))
	assert.False(t, ValidDestination(MethodSMS, ""))
}

func TestGatewaySend(t *testing.T) {
	ch := &fakeChannel{enabled: true}
	g := NewGateway().Register(MethodEmail, ch)

	require.NoError(t, g.Send(context.Background(), MethodEmail, "a@example.com", "123456"))
	assert.Equal(t, []string{"a@example.com:123456"}, ch.sent)
}

func TestGatewaySendInvalidDestinationBeforeDispatch(t *testing.T) {
	ch := &fakeChannel{enabled: true}
	g := NewGateway().Register(MethodEmail, ch)

	err := g.Send(context.Background(), MethodEmail, "broken", "123456")
	assert.ErrorIs(t, err, ErrInvalidDestination)
	assert.Empty(t, ch.sent, "no dispatch on invalid destination")
}

func TestGatewaySendNotConfigured(t *testing.T) {
	g := NewGateway().Register(MethodEmail, &fakeChannel{enabled: false})

	err := g.Send(context.Background(), MethodEmail, "a@example.com", "123456")
	assert.ErrorIs(t, err, ErrNotConfigured)

	// unregistered method
	err = g.Send(context.Background(), MethodSMS, "+15551234567", "123456")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGatewaySendWrapsProviderError(t *testing.T) {
	boom := errors.New("451 greylisted")
	g := NewGateway().Register(MethodEmail, &fakeChannel{enabled: true, err: boom})

	err := g.Send(context.Background(), MethodEmail, "a@example.com", "123456")
	assert.ErrorIs(t, err, ErrProvider)
	assert.NotErrorIs(t, err, boom, "raw provider errors do not escape")
}

func TestGatewayEnabledRecheckedPerSend(t *testing.T) {
	ch := &fakeChannel{enabled: true}
	g := NewGateway().Register(MethodSMS, ch)
	require.True(t, g.Enabled(MethodSMS))

	ch.enabled = false
	assert.False(t, g.Enabled(MethodSMS))
	err := g.Send(context.Background(), MethodSMS, "+15551234567", "123456")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
