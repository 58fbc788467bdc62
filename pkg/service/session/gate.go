package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/domain/model/errs"
	"github.com/secmon-lab/guardian/pkg/domain/types"
	"github.com/secmon-lab/guardian/pkg/utils/clock"
)

const (
	DefaultTTL = time.Hour
	keyPrefix  = "session:"
)

// Gate decides whether a session still owes a human verification and records
// successful verifications with a TTL.
type Gate struct {
	kv  interfaces.KVStore
	ttl time.Duration
}

func New(kv interfaces.KVStore, ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Gate{kv: kv, ttl: ttl}
}

type marker struct {
	VerifiedUntil time.Time `json:"verifiedUntil"`
}

func Key(id types.SessionID) string {
	return keyPrefix + id.String()
}

// RequiresChallenge reports true when no live marker exists for the session.
// An empty session always requires a challenge.
func (x *Gate) RequiresChallenge(ctx context.Context, id types.SessionID) (bool, error) {
	if id.Empty() {
		return true, nil
	}

	raw, err := x.kv.Get(ctx, Key(id))
	if err != nil {
		return false, goerr.Wrap(err, "failed to get session marker",
			goerr.T(errs.TagDatabase),
			goerr.TV(errs.SessionIDKey, id.String()))
	}
	if raw == nil {
		return true, nil
	}

	var m marker
	if err := json.Unmarshal(raw, &m); err != nil {
		// legacy markers may hold a bare "true"
		return false, nil
	}
	if !m.VerifiedUntil.IsZero() && !clock.Now(ctx).Before(m.VerifiedUntil) {
		return true, nil
	}

	return false, nil
}

// MarkVerified stores a marker that expires after the gate TTL.
func (x *Gate) MarkVerified(ctx context.Context, id types.SessionID) error {
	if id.Empty() {
		return goerr.New("session id is empty", goerr.T(errs.TagValidation))
	}

	raw, err := json.Marshal(marker{VerifiedUntil: clock.Now(ctx).Add(x.ttl)})
	if err != nil {
		return goerr.Wrap(err, "failed to marshal session marker")
	}

	if err := x.kv.Put(ctx, Key(id), raw, x.ttl); err != nil {
		return goerr.Wrap(err, "failed to put session marker",
			goerr.T(errs.TagDatabase),
			goerr.TV(errs.SessionIDKey, id.String()))
	}
	return nil
}

func (x *Gate) TTL() time.Duration {
	return x.ttl
}
