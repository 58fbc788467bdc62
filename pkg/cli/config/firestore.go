package config

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/repository"
	"github.com/secmon-lab/guardian/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Firestore struct {
	projectID  string
	databaseID string
}

func (c *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID (in-memory store is used when empty)",
			Destination: &c.projectID,
			Category:    "Firestore",
			Sources:     cli.EnvVars("GUARDIAN_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Destination: &c.databaseID,
			Category:    "Firestore",
			Sources:     cli.EnvVars("GUARDIAN_FIRESTORE_DATABASE_ID"),
			Value:       "(default)",
		},
	}
}

func (c Firestore) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("project_id", c.projectID),
		slog.String("database_id", c.databaseID),
	)
}

// Configure returns the Firestore backed KV store, or the in-memory store
// when no project is set. The returned closer is always callable.
func (c *Firestore) Configure(ctx context.Context) (interfaces.KVStore, func(), error) {
	if !c.IsConfigured() {
		logging.From(ctx).Warn("Firestore is not configured, using in-memory store. Sessions and history are lost on restart")
		return repository.NewMemory(), func() {}, nil
	}

	db, err := repository.NewFirestore(ctx, c.projectID, c.databaseID)
	if err != nil {
		return nil, func() {}, err
	}

	closer := func() {
		if err := db.Close(); err != nil {
			logging.From(ctx).Warn("failed to close firestore client", "error", err)
		}
	}
	return db, closer, nil
}

// ProjectID returns the project ID (exported for migrate command)
func (c *Firestore) ProjectID() string {
	return c.projectID
}

// DatabaseID returns the database ID (exported for migrate command)
func (c *Firestore) DatabaseID() string {
	return c.databaseID
}

// IsConfigured returns true if Firestore is configured
func (c *Firestore) IsConfigured() bool {
	return c.projectID != ""
}
