package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/domain/model/errs"
)

type Firestore struct {
	db *firestore.Client
	eb *goerr.Builder
}

func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	if projectID == "" {
		return nil, goerr.New("firestore project id is required", goerr.T(errs.TagMisconfigured))
	}

	db, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	return &Firestore{
		db: db,
		eb: goerr.NewBuilder(
			goerr.TV(errs.RepositoryKey, "firestore"),
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID),
		),
	}, nil
}

func (r *Firestore) Close() error {
	return r.db.Close()
}

const (
	// CollectionKV holds every key-value document.
	CollectionKV = "kv"
	// FieldExpiresAt is the TTL policy field of CollectionKV.
	FieldExpiresAt = "expires_at"
)
