package cli

import (
	"context"
	"fmt"

	firestoreadmin "cloud.google.com/go/firestore/apiv1/admin"
	adminpb "cloud.google.com/go/firestore/apiv1/admin/adminpb"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/cli/config"
	"github.com/secmon-lab/guardian/pkg/repository/firestore"
	"github.com/secmon-lab/guardian/pkg/utils/logging"
	"github.com/secmon-lab/guardian/pkg/utils/safe"
	"github.com/urfave/cli/v3"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

func cmdMigrate() *cli.Command {
	var cfg config.Firestore
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Enable the Firestore TTL policy of the KV collection",
		Flags: append(cfg.Flags(),
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Show what would be changed without applying",
				Destination: &dryRun,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			return runMigrate(ctx, &cfg, dryRun)
		},
	}
}

func runMigrate(ctx context.Context, cfg *config.Firestore, dryRun bool) error {
	logger := logging.From(ctx)

	projectID := cfg.ProjectID()
	databaseID := cfg.DatabaseID()

	if projectID == "" {
		return goerr.New("firestore-project-id is required")
	}

	logger.Info("Starting Firestore migration",
		"project_id", projectID,
		"database_id", databaseID,
		"dry_run", dryRun,
	)

	adminClient, err := firestoreadmin.NewFirestoreAdminClient(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to create firestore admin client")
	}
	defer safe.Close(ctx, adminClient)

	name := ttlFieldName(projectID, databaseID)
	current, err := adminClient.GetField(ctx, &adminpb.GetFieldRequest{Name: name})
	if err != nil {
		return goerr.Wrap(err, "failed to get field configuration", goerr.V("field", name))
	}

	if ttlEnabled(current) {
		logger.Info("TTL policy already configured",
			"field", name,
			"state", current.GetTtlConfig().GetState().String(),
		)
		return nil
	}

	if dryRun {
		logger.Info("Dry-run mode: TTL policy would be enabled", "field", name)
		return nil
	}

	op, err := adminClient.UpdateField(ctx, ttlUpdateRequest(name))
	if err != nil {
		return goerr.Wrap(err, "failed to update field", goerr.V("field", name))
	}
	if _, err := op.Wait(ctx); err != nil {
		return goerr.Wrap(err, "failed to wait for TTL policy", goerr.V("field", name))
	}

	logger.Info("Migration completed successfully", "field", name)
	return nil
}

func ttlFieldName(projectID, databaseID string) string {
	return fmt.Sprintf("projects/%s/databases/%s/collectionGroups/%s/fields/%s",
		projectID, databaseID, firestore.CollectionKV, firestore.FieldExpiresAt)
}

func ttlEnabled(field *adminpb.Field) bool {
	if field.GetTtlConfig() == nil {
		return false
	}
	switch field.GetTtlConfig().GetState() {
	case adminpb.Field_TtlConfig_ACTIVE, adminpb.Field_TtlConfig_CREATING:
		return true
	default:
		return false
	}
}

func ttlUpdateRequest(name string) *adminpb.UpdateFieldRequest {
	return &adminpb.UpdateFieldRequest{
		Field: &adminpb.Field{
			Name:      name,
			TtlConfig: &adminpb.Field_TtlConfig{},
		},
		UpdateMask: &fieldmaskpb.FieldMask{Paths: []string{"ttl_config"}},
	}
}
