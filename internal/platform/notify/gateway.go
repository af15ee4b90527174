package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Method is a code delivery channel identifier.
type Method string

const (
	MethodEmail Method = "email"
	MethodSMS   Method = "sms"
)

// ParseMethod returns the method for s, defaulting to email for anything
// absent or unrecognized.
func ParseMethod(s string) Method {
	if Method(s) == MethodSMS {
		return MethodSMS
	}
	return MethodEmail
}

var (
	ErrNotConfigured      = errors.New("delivery channel not configured")
	ErrInvalidDestination = errors.New("invalid destination")
	ErrProvider           = errors.New("provider delivery failed")
)

var validate = validator.New()

// ValidDestination reports whether destination has the right shape for the
// method: local@domain for email, E.164 for sms.
func ValidDestination(m Method, destination string) bool {
	switch m {
	case MethodSMS:
		return validate.Var(destination, "required,e164") == nil
	default:
		return validate.Var(destination, "required,email") == nil
	}
}

// Channel is one provider-backed delivery variant.
type Channel interface {
	// Enabled reports whether the channel is switched on and has the
	// settings it needs. Re-checked on every send.
	Enabled() bool
	// Send makes exactly one delivery attempt. No retries.
	Send(ctx context.Context, destination, code string) error
}

// Gateway routes code deliveries to the channel registered for a method.
type Gateway struct {
	channels map[Method]Channel
}

func NewGateway() *Gateway {
	return &Gateway{channels: make(map[Method]Channel)}
}

func (g *Gateway) Register(m Method, ch Channel) *Gateway {
	g.channels[m] = ch
	return g
}

func (g *Gateway) Enabled(m Method) bool {
	ch, ok := g.channels[m]
	return ok && ch.Enabled()
}

// Send validates the destination, then dispatches the code over the method's
// channel. Validation happens before any network call. Provider errors are
// wrapped as ErrProvider and never surface raw.
func (g *Gateway) Send(ctx context.Context, m Method, destination, code string) error {
	if !ValidDestination(m, destination) {
		return fmt.Errorf("%w: %s %s", ErrInvalidDestination, m, Mask(m, destination))
	}
	ch, ok := g.channels[m]
	if !ok || !ch.Enabled() {
		return fmt.Errorf("%w: %s", ErrNotConfigured, m)
	}
	if err := ch.Send(ctx, destination, code); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrProvider, m, err)
	}
	return nil
}
