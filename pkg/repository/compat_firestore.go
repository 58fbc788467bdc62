package repository

import (
	"context"

	"github.com/secmon-lab/guardian/pkg/repository/firestore"
	"github.com/secmon-lab/guardian/pkg/repository/memory"
)

type Firestore = firestore.Firestore

// NewFirestore creates a Firestore backed KV store.
func NewFirestore(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	return firestore.New(ctx, projectID, databaseID)
}

type Memory = memory.KV

// NewMemory creates an in-process KV store.
func NewMemory() *Memory {
	return memory.New()
}
