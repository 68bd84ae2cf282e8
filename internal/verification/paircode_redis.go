package verification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	verificationerrors "go-presence/internal/verification/errors"

	"github.com/redis/go-redis/v9"
)

const pairCodeKeyPrefix = "paircode:"

// RedisPairCodeStore shares pair codes across API instances. SETNX on save
// and GETDEL on claim give the claim-once guarantee: concurrent claims
// resolve to exactly one winner because only one GETDEL observes the value.
type RedisPairCodeStore struct {
	rdb *redis.Client
}

func NewRedisPairCodeStore(rdb *redis.Client) *RedisPairCodeStore {
	return &RedisPairCodeStore{rdb: rdb}
}

func (s *RedisPairCodeStore) Save(ctx context.Context, code PairCode) error {
	payload, err := json.Marshal(code)
	if err != nil {
		return err
	}
	ttl := time.Until(code.ExpiresAt())
	if ttl <= 0 {
		ttl = time.Second
	}
	_, err = s.rdb.SetNX(ctx, pairCodeKeyPrefix+code.Code, payload, ttl).Result()
	return err
}

func (s *RedisPairCodeStore) Claim(ctx context.Context, codeValue, claimantEmployeeID string, now time.Time) (PairCode, error) {
	key := pairCodeKeyPrefix + codeValue

	// ownership and expiry are checked on a plain read first so a
	// self-claim does not consume the code the real partner still needs
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		// expired keys and already-claimed keys are indistinguishable here
		return PairCode{}, verificationerrors.ErrPairCodeNotFound
	}
	if err != nil {
		return PairCode{}, err
	}

	var code PairCode
	if err := json.Unmarshal([]byte(val), &code); err != nil {
		return PairCode{}, err
	}
	if err := checkClaim(code, claimantEmployeeID, now); err != nil {
		if errors.Is(err, verificationerrors.ErrPairCodeExpired) {
			s.rdb.Del(ctx, key)
		}
		return PairCode{}, err
	}

	// GETDEL is the destructive read: concurrent claimants race here and
	// only the one that observes the value wins
	if _, err := s.rdb.GetDel(ctx, key).Result(); err != nil {
		if errors.Is(err, redis.Nil) {
			return PairCode{}, verificationerrors.ErrPairCodeNotFound
		}
		return PairCode{}, err
	}
	return code, nil
}
