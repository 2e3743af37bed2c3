package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/citylibrary/lending-system/internal/core/ports"
)

const collectionLoanEvents = "loan_events"

// AuditRepository persists loan events to the append-only audit collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionLoanEvents)}
}

func (r *AuditRepository) InsertLoanEvent(ctx context.Context, event ports.LoanEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"loan_id":     event.LoanID,
		"user_id":     event.UserID,
		"book_id":     event.BookID,
		"action":      string(event.Action),
		"occurred_at": event.OccurredAt.UTC(),
		"recorded_at": time.Now().UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert loan event: %w", err)
	}
	return nil
}
