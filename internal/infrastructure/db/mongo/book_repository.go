package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/citylibrary/lending-system/internal/core/domain"
)

const collectionBooks = "books"

// BookRepository implements ports.BookRepository on MongoDB.
type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{col: db.Collection(collectionBooks)}
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, book); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateBook
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Book
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return &b, nil
}

// FindByTitle performs a case-insensitive exact match using a collated query.
func (r *BookRepository) FindByTitle(ctx context.Context, title string) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetCollation(&options.Collation{Locale: "en", Strength: 2})
	cur, err := r.col.Find(ctx, bson.M{"title": title}, opts)
	if err != nil {
		return nil, fmt.Errorf("find books by title: %w", err)
	}
	return decodeBooks(ctx, cur)
}

func (r *BookRepository) FindAvailable(ctx context.Context) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"status": domain.BookAvailable})
	if err != nil {
		return nil, fmt.Errorf("find available books: %w", err)
	}
	return decodeBooks(ctx, cur)
}

func (r *BookRepository) FindAll(ctx context.Context) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find all books: %w", err)
	}
	return decodeBooks(ctx, cur)
}

func (r *BookRepository) SetStatus(ctx context.Context, id string, status domain.BookStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return false, fmt.Errorf("set book status: %w", err)
	}
	return res.MatchedCount == 1, nil
}

// EnsureIndexes creates the catalog indexes, including the unique edition
// tuple backing the duplicate check.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "title", Value: 1},
				{Key: "author", Value: 1},
				{Key: "publisher", Value: 1},
				{Key: "year", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetCollation(&options.Collation{Locale: "en", Strength: 2}),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeBooks(ctx context.Context, cur *mongo.Cursor) ([]*domain.Book, error) {
	defer cur.Close(ctx)
	var out []*domain.Book
	for cur.Next(ctx) {
		var b domain.Book
		if err := cur.Decode(&b); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		out = append(out, &b)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return out, nil
}
