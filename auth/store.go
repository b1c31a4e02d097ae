package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rpupo63/portfolio-backend/errs"
)

// Purpose scopes a verification code to the flow that issued it.
type Purpose string

const (
	PurposeLogin            Purpose = "login"
	PurposeCredentialUpdate Purpose = "credential_update"
)

// State is the position of an email in the verification flow.
type State int

const (
	Idle State = iota
	CodeSent
	Authenticated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CodeSent:
		return "code_sent"
	case Authenticated:
		return "authenticated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Challenge is an outstanding verification code.
type Challenge struct {
	Purpose  Purpose
	Code     string
	IssuedAt time.Time
	// Pending is the login password awaiting re-check on verification.
	Pending string
}

const defaultStoreSize = 1024

// Store keeps at most one challenge per email. Issuing a new challenge
// replaces the previous one, whatever its purpose.
type Store struct {
	mu      sync.Mutex
	entries *lru.Cache[string, Challenge]
	ttl     time.Duration
	now     func() time.Time
	newCode func() (string, error)
}

type StoreOption func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithCodeGenerator replaces the random six digit generator.
func WithCodeGenerator(fn func() (string, error)) StoreOption {
	return func(s *Store) {
		s.newCode = fn
	}
}

// NewStore returns a store holding up to size challenges that stay valid for ttl.
func NewStore(size int, ttl time.Duration, opts ...StoreOption) (*Store, error) {
	if size <= 0 {
		size = defaultStoreSize
	}
	cache, err := lru.New[string, Challenge](size)
	if err != nil {
		return nil, err
	}
	s := &Store{
		entries: cache,
		ttl:     ttl,
		now:     time.Now,
		newCode: GenerateCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL is how long an issued code stays valid.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Issue creates a fresh challenge for email, replacing any earlier one.
func (s *Store) Issue(email string, purpose Purpose, pending string) (Challenge, error) {
	c, _, _, err := s.replace(email, purpose, pending)
	return c, err
}

// replace issues a challenge and also returns the one it displaced, if any.
func (s *Store) replace(email string, purpose Purpose, pending string) (issued, previous Challenge, hadPrevious bool, err error) {
	code, err := s.newCode()
	if err != nil {
		return Challenge{}, Challenge{}, false, fmt.Errorf("generate verification code: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(email)
	previous, hadPrevious = s.entries.Peek(k)
	issued = Challenge{
		Purpose:  purpose,
		Code:     code,
		IssuedAt: s.now(),
		Pending:  pending,
	}
	s.entries.Add(k, issued)
	return issued, previous, hadPrevious, nil
}

// withdraw undoes a replace whose code never reached the user. It is a no-op
// when issued has since been redeemed or replaced.
func (s *Store) withdraw(email string, issued, previous Challenge, hadPrevious bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(email)
	current, ok := s.entries.Peek(k)
	if !ok || current != issued {
		return
	}
	if hadPrevious {
		s.entries.Add(k, previous)
		return
	}
	s.entries.Remove(k)
}

// Redeem checks code against the live challenge for email and consumes it on
// a match, so a code is accepted at most once. Checks run in order: presence,
// expiry, match. An expired challenge is removed. A mismatch keeps the
// challenge. A challenge issued for another purpose counts as absent.
func (s *Store) Redeem(email string, purpose Purpose, code string) (Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(email)
	c, ok := s.entries.Peek(k)
	if !ok || c.Purpose != purpose {
		return Challenge{}, errs.NewNoPendingCodeError()
	}
	if s.now().Sub(c.IssuedAt) > s.ttl {
		s.entries.Remove(k)
		return Challenge{}, errs.NewCodeExpiredError()
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(code)), []byte(c.Code)) != 1 {
		return Challenge{}, errs.NewInvalidCodeError()
	}
	s.entries.Remove(k)
	return c, nil
}

// Restore puts back a redeemed challenge whose flow failed after the code
// matched. It keeps the original issue time, and a newer challenge for the
// same email wins.
func (s *Store) Restore(email string, c Challenge) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(email)
	if s.entries.Contains(k) {
		return
	}
	s.entries.Add(k, c)
}

// State reports whether email has a challenge outstanding.
func (s *Store) State(email string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries.Contains(key(email)) {
		return CodeSent
	}
	return Idle
}

// Len returns the number of stored challenges.
func (s *Store) Len() int {
	return s.entries.Len()
}

// Sweep removes challenges issued more than ttl+grace ago and returns how
// many were dropped. Challenges inside the grace window are kept so a late
// verification still reports expiry instead of a missing code.
func (s *Store) Sweep(grace time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-(s.ttl + grace))
	removed := 0
	for _, k := range s.entries.Keys() {
		c, ok := s.entries.Peek(k)
		if ok && c.IssuedAt.Before(cutoff) {
			s.entries.Remove(k)
			removed++
		}
	}
	return removed
}

var codeRange = big.NewInt(900000)

// GenerateCode returns a uniformly random code between 100000 and 999999.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeRange)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
