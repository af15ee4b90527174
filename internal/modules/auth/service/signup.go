package service

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"
	"time"

	"board/internal/modules/auth/challenge"
	"board/internal/modules/auth/domain"
	"board/internal/platform/notify"
	"board/internal/platform/security"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidDestination   = errors.New("invalid destination")
	ErrChannelNotConfigured = errors.New("verification channel not configured")
	// ErrDeliveryFailed is the generic caller-facing delivery error; the
	// provider detail stays in the logs.
	ErrDeliveryFailed = errors.New("could not deliver verification code")
)

// Options are the signup-policy knobs from configuration.
type Options struct {
	// RequireVerification keeps accounts pending until the code is
	// confirmed. When false and the channel is down, signup completes
	// without a challenge.
	RequireVerification bool
	// EchoCodes leaks the raw code into results for test automation.
	EchoCodes bool
	// SessionTTL bounds the refresh session minted after verification.
	SessionTTL time.Duration
}

// Signup sequences account creation, challenge issuance and code delivery,
// rolling the account back when delivery fails.
type Signup struct {
	users    domain.UserRepo
	sessions domain.SessionRepo
	registry *challenge.Registry
	gateway  *notify.Gateway
	jwt      *security.JWTManager
	opts     Options
}

func NewSignup(
	users domain.UserRepo,
	sessions domain.SessionRepo,
	registry *challenge.Registry,
	gateway *notify.Gateway,
	jwt *security.JWTManager,
	opts Options,
) *Signup {
	if opts.SessionTTL == 0 {
		opts.SessionTTL = 30 * 24 * time.Hour
	}
	return &Signup{users: users, sessions: sessions, registry: registry, gateway: gateway, jwt: jwt, opts: opts}
}

type BeginParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
	// Method picks the delivery channel; anything unrecognized means email.
	Method string
	// Destination is the phone number for sms. Empty for email means the
	// account email.
	Destination string
}

type BeginResult struct {
	UserID            string
	ChallengeID       string
	Method            notify.Method
	MaskedDestination string
	// RequiresVerification is false only when signup completed without a
	// challenge (optional verification, channel disabled).
	RequiresVerification bool
	// DebugCode is set only when Options.EchoCodes is on.
	DebugCode string
}

// Begin creates a pending account and dispatches its verification code.
//
// Order matters: the destination is resolved and the channel checked before
// any row exists, so a misconfigured deployment never strands half-created
// accounts. The delivery call runs after the challenge is committed to the
// registry and outside its lock; a failure compensates by deleting the user
// and discarding the challenge.
func (s *Signup) Begin(ctx context.Context, p BeginParams) (*BeginResult, error) {
	method := notify.ParseMethod(p.Method)
	dest, err := resolveDestination(method, p.Email, p.Destination)
	if err != nil {
		return nil, err
	}

	channelUp := s.gateway.Enabled(method)
	if s.opts.RequireVerification && !channelUp {
		return nil, ErrChannelNotConfigured
	}

	email := strings.ToLower(strings.TrimSpace(p.Email))
	if taken, err := s.users.ExistsByEmail(email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(p.Password)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Create(domain.CreateUserParams{
		Email:        email,
		Phone:        p.phone(method, dest),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Role:         p.Role,
		PasswordHash: &hash,
	})
	if err != nil {
		return nil, err
	}

	// Verification optional and nothing to send it with: activate now.
	if !channelUp {
		if err := s.users.ConfirmEmail(u.ID); err != nil {
			return nil, err
		}
		return &BeginResult{UserID: u.ID, Method: method}, nil
	}

	iss, err := s.registry.Create(u.ID, method, dest)
	if err != nil {
		s.rollback(u.ID, "")
		return nil, err
	}

	if err := s.gateway.Send(ctx, method, dest, iss.Code); err != nil {
		log.Printf("signup: delivery to %s failed: %v", notify.Mask(method, dest), err)
		s.rollback(u.ID, iss.ID)
		return nil, ErrDeliveryFailed
	}

	res := &BeginResult{
		UserID:               u.ID,
		ChallengeID:          iss.ID,
		Method:               method,
		MaskedDestination:    notify.Mask(method, dest),
		RequiresVerification: true,
	}
	if s.opts.EchoCodes {
		res.DebugCode = iss.Code
	}
	return res, nil
}

// rollback undoes a half-finished signup. Deletion is attempted first so a
// crash in between leaves at worst an orphaned in-memory challenge. Failures
// are logged, never returned: they must not mask the delivery error.
func (s *Signup) rollback(userID, challengeID string) {
	if err := s.users.Delete(userID); err != nil {
		log.Printf("signup: rollback of user %s failed: %v", userID, err)
	}
	if challengeID != "" {
		s.registry.Discard(challengeID)
	}
}

type VerifyResult struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Verify consumes the challenge, finalizes the account and mints a session.
// Registry errors (not found, expired, too many attempts, invalid code) pass
// through for the transport layer to map.
func (s *Signup) Verify(ctx context.Context, challengeID, code string) (*VerifyResult, error) {
	rec, err := s.registry.Consume(challengeID, code)
	if err != nil {
		return nil, err
	}

	if rec.Method == notify.MethodSMS {
		err = s.users.ConfirmPhone(rec.UserID)
	} else {
		err = s.users.ConfirmEmail(rec.UserID)
	}
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(rec.UserID)
	if err != nil {
		return nil, err
	}

	rt, err := security.IssueRefresh()
	if err != nil {
		return nil, err
	}
	sess, err := s.sessions.Create(domain.Session{
		UserID:           u.ID,
		RefreshTokenHash: security.HashToken(rt),
		ExpiresAt:        time.Now().Add(s.opts.SessionTTL),
	})
	if err != nil {
		return nil, err
	}
	at, exp, err := s.jwt.IssueAccess(u.ID, string(u.Role), sess.ID)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{UserID: u.ID, AccessToken: at, RefreshToken: rt, ExpiresAt: exp}, nil
}

type ResendResult struct {
	Method            notify.Method
	MaskedDestination string
	DebugCode         string
}

// Resend rotates the code under the registry's cooldown and redelivers it.
// A delivery failure here does not destroy the challenge: the previous code
// is already invalid, but the client may retry the resend later.
func (s *Signup) Resend(ctx context.Context, challengeID string) (*ResendResult, error) {
	iss, err := s.registry.Resend(challengeID)
	if err != nil {
		return nil, err
	}
	if err := s.gateway.Send(ctx, iss.Method, iss.Destination, iss.Code); err != nil {
		log.Printf("signup: resend to %s failed: %v", notify.Mask(iss.Method, iss.Destination), err)
		return nil, ErrDeliveryFailed
	}
	res := &ResendResult{
		Method:            iss.Method,
		MaskedDestination: notify.Mask(iss.Method, iss.Destination),
	}
	if s.opts.EchoCodes {
		res.DebugCode = iss.Code
	}
	return res, nil
}

func (p BeginParams) phone(m notify.Method, dest string) *string {
	if m == notify.MethodSMS {
		return &dest
	}
	return nil
}

// resolveDestination normalizes and validates the delivery address before any
// account record exists.
func resolveDestination(m notify.Method, email, destination string) (string, error) {
	if m == notify.MethodSMS {
		dest := normalizePhone(destination)
		if !notify.ValidDestination(m, dest) {
			return "", ErrInvalidDestination
		}
		return dest, nil
	}
	dest := strings.ToLower(strings.TrimSpace(destination))
	if dest == "" {
		dest = strings.ToLower(strings.TrimSpace(email))
	}
	if _, err := mail.ParseAddress(dest); err != nil || !notify.ValidDestination(m, dest) {
		return "", ErrInvalidDestination
	}
	return dest, nil
}

// normalizePhone strips the usual formatting noise, leaving E.164 validation
// to the gateway rules.
func normalizePhone(number string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(number) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
