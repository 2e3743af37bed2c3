package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/citylibrary/lending-system/internal/core/domain"
)

const collectionLoans = "loans"

// LoanRepository implements ports.LoanRepository on MongoDB. Active loans
// are the documents with no return_date; Close and Reopen use guarded
// updates so a lost race mutates nothing and reports false.
type LoanRepository struct {
	col *mongo.Collection
}

func NewLoanRepository(db *mongo.Database) *LoanRepository {
	return &LoanRepository{col: db.Collection(collectionLoans)}
}

func activeFilter(extra bson.M) bson.M {
	filter := bson.M{"status": domain.LoanActive, "return_date": bson.M{"$exists": false}}
	for k, v := range extra {
		filter[k] = v
	}
	return filter
}

func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, loan); err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

func (r *LoanRepository) FindByID(ctx context.Context, id string) (*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.Loan
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, fmt.Errorf("find loan: %w", err)
	}
	return &l, nil
}

func (r *LoanRepository) FindActiveByUserAndBook(ctx context.Context, userID, bookID string) (*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.Loan
	err := r.col.FindOne(ctx, activeFilter(bson.M{"user_id": userID, "book_id": bookID})).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, fmt.Errorf("find active loan: %w", err)
	}
	return &l, nil
}

func (r *LoanRepository) FindActiveByUser(ctx context.Context, userID string) ([]*domain.Loan, error) {
	return r.findActive(ctx, bson.M{"user_id": userID})
}

func (r *LoanRepository) FindActiveByBook(ctx context.Context, bookID string) ([]*domain.Loan, error) {
	return r.findActive(ctx, bson.M{"book_id": bookID})
}

func (r *LoanRepository) findActive(ctx context.Context, extra bson.M) ([]*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, activeFilter(extra))
	if err != nil {
		return nil, fmt.Errorf("find active loans: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Loan
	for cur.Next(ctx) {
		var l domain.Loan
		if err := cur.Decode(&l); err != nil {
			return nil, fmt.Errorf("decode loan: %w", err)
		}
		out = append(out, &l)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate loans: %w", err)
	}
	return out, nil
}

func (r *LoanRepository) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, activeFilter(bson.M{"user_id": userID}))
	if err != nil {
		return 0, fmt.Errorf("count active loans: %w", err)
	}
	return int(n), nil
}

// Close marks an active loan returned. The filter requires the loan to
// still be active, so double-closing matches nothing and reports false.
func (r *LoanRepository) Close(ctx context.Context, id string, returnedAt time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		activeFilter(bson.M{"_id": id}),
		bson.M{"$set": bson.M{
			"status":      string(domain.LoanReturned),
			"return_date": returnedAt.UTC(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("close loan: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

// Reopen reverts a Close during compensation; it only matches loans in the
// returned state.
func (r *LoanRepository) Reopen(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": domain.LoanReturned},
		bson.M{
			"$set":   bson.M{"status": string(domain.LoanActive)},
			"$unset": bson.M{"return_date": ""},
		},
	)
	if err != nil {
		return false, fmt.Errorf("reopen loan: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

// EnsureIndexes creates the ledger indexes used by the workflow's checks.
func (r *LoanRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "book_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
