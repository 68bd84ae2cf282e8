package verification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	verificationerrors "go-presence/internal/verification/errors"

	"github.com/google/uuid"
)

// DefaultPairCodeTTL is how long a generated pair code stays claimable
// unless the caller configures a different window.
const DefaultPairCodeTTL = 2 * time.Minute

// PairCode is a single-use, time-boxed code one pair member displays and the
// other scans during mutual presence validation.
type PairCode struct {
	Code        string        `json:"code"`
	EmployeeID  string        `json:"employee_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	TTL         time.Duration `json:"ttl"`
}

func (p PairCode) ExpiresAt() time.Time {
	ttl := p.TTL
	if ttl <= 0 {
		ttl = DefaultPairCodeTTL
	}
	return p.GeneratedAt.Add(ttl)
}

// NewPairCode binds a fresh code to the generating employee, the generation
// instant and a random nonce. A non-positive ttl falls back to
// DefaultPairCodeTTL.
func NewPairCode(employeeID string, now time.Time, ttl time.Duration) PairCode {
	if ttl <= 0 {
		ttl = DefaultPairCodeTTL
	}
	nonce := uuid.NewString()[:8]
	return PairCode{
		Code:        fmt.Sprintf("PAIR-%s-%d-%s", employeeID, now.Unix(), nonce),
		EmployeeID:  employeeID,
		GeneratedAt: now,
		TTL:         ttl,
	}
}

// checkClaim applies the claim rules shared by every store: the generator
// cannot claim its own code and expired codes are rejected even on the
// first attempt.
func checkClaim(code PairCode, claimantEmployeeID string, now time.Time) error {
	if code.EmployeeID == claimantEmployeeID {
		return verificationerrors.ErrPairCodeSelfClaim
	}
	if now.After(code.ExpiresAt()) {
		return verificationerrors.ErrPairCodeExpired
	}
	return nil
}

// PairCodeStore shares generated codes between the two pair members' flows.
// Claim must resolve concurrent attempts to exactly one winner: a code is
// consumable at most once and only before expiry.
//
//go:generate mockgen -source=paircode.go -destination=mock/paircode_store_mock.go -package=mock
type PairCodeStore interface {
	Save(ctx context.Context, code PairCode) error
	// Claim consumes the code. The claim is bound to the exact generated
	// code value; a claim by the generating employee is rejected.
	Claim(ctx context.Context, codeValue, claimantEmployeeID string, now time.Time) (PairCode, error)
}

// MemoryPairCodeStore keeps codes in process memory. Claim-once semantics
// come from deleting under the lock.
type MemoryPairCodeStore struct {
	mu    sync.Mutex
	codes map[string]PairCode
}

func NewMemoryPairCodeStore() *MemoryPairCodeStore {
	return &MemoryPairCodeStore{codes: make(map[string]PairCode)}
}

func (s *MemoryPairCodeStore) Save(_ context.Context, code PairCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code.Code] = code
	return nil
}

func (s *MemoryPairCodeStore) Claim(_ context.Context, codeValue, claimantEmployeeID string, now time.Time) (PairCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[codeValue]
	if !ok {
		return PairCode{}, verificationerrors.ErrPairCodeNotFound
	}
	if err := checkClaim(code, claimantEmployeeID, now); err != nil {
		// a self-claim leaves the code in place for the real partner
		if errors.Is(err, verificationerrors.ErrPairCodeExpired) {
			delete(s.codes, codeValue)
		}
		return PairCode{}, err
	}

	delete(s.codes, codeValue)
	return code, nil
}

// PairValidation tracks the scanning side of a mutual validation: a claimed
// code followed by an explicit confirmation step.
type PairValidation struct {
	claimed   *PairCode
	confirmed bool
}

func (v *PairValidation) RecordClaim(code PairCode) {
	v.claimed = &code
}

// Confirm passes only after a code has been claimed.
func (v *PairValidation) Confirm() error {
	if v.claimed == nil {
		return verificationerrors.ErrPairNotClaimed
	}
	v.confirmed = true
	return nil
}

func (v *PairValidation) Confirmed() bool {
	return v.confirmed
}
