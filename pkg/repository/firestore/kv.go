package firestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/domain/model/errs"
	"github.com/secmon-lab/guardian/pkg/utils/clock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ interfaces.KVStore = &Firestore{}

// kvDocument is one stored value. ExpiresAt drives the Firestore TTL policy;
// deletion by the policy is lazy, so reads compare it with the clock too.
type kvDocument struct {
	Key       string     `firestore:"key"`
	Value     []byte     `firestore:"value"`
	ExpiresAt *time.Time `firestore:"expires_at,omitempty"`
	UpdatedAt time.Time  `firestore:"updated_at"`
}

// docID maps arbitrary keys onto valid document ids. Keys such as
// "session:abc/def" may contain characters Firestore rejects.
func docID(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func (r *Firestore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, r.eb.New("key is empty", goerr.T(errs.TagValidation))
	}

	doc, err := r.db.Collection(CollectionKV).Doc(docID(key)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, r.eb.Wrap(err, "failed to get kv document",
			goerr.V("key", key),
			goerr.T(errs.TagDatabase))
	}

	var v kvDocument
	if err := doc.DataTo(&v); err != nil {
		return nil, r.eb.Wrap(err, "failed to convert data to kv document",
			goerr.V("key", key),
			goerr.T(errs.TagDatabase))
	}

	if v.ExpiresAt != nil && !clock.Now(ctx).Before(*v.ExpiresAt) {
		return nil, nil
	}

	return v.Value, nil
}

func (r *Firestore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return r.eb.New("key is empty", goerr.T(errs.TagValidation))
	}

	now := clock.Now(ctx)
	v := kvDocument{
		Key:       key,
		Value:     value,
		UpdatedAt: now,
	}
	if ttl > 0 {
		expiresAt := now.Add(ttl)
		v.ExpiresAt = &expiresAt
	}

	if _, err := r.db.Collection(CollectionKV).Doc(docID(key)).Set(ctx, v); err != nil {
		return r.eb.Wrap(err, "failed to put kv document",
			goerr.V("key", key),
			goerr.T(errs.TagDatabase))
	}
	return nil
}
