package mongo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/exp/slog"

	"bookshelf/internal/domain/book"
)

const booksCollection = "books"

type bookDocument struct {
	DocID       string    `bson:"_id"`
	Zone        string    `bson:"zone"`
	ID          int       `bson:"id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	UpdatedBy   int       `bson:"updatedBy"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

// BookRepository stores books as documents keyed by "<zone>/<id>".
type BookRepository struct {
	client *mongo.Client
	books  *mongo.Collection
	log    *slog.Logger
	now    func() time.Time
}

func New(ctx context.Context, uri, dbName string, log *slog.Logger) (*BookRepository, error) {
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongodb client: %w", err)
	}

	if err := cli.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb server: %w", err)
	}

	repo := &BookRepository{
		client: cli,
		books:  cli.Database(dbName).Collection(booksCollection),
		log:    log.With("component", "mongo_book_repository"),
		now:    time.Now,
	}

	if err := repo.setup(ctx); err != nil {
		return nil, fmt.Errorf("failed to setup collection: %w", err)
	}

	return repo, nil
}

func (r *BookRepository) setup(ctx context.Context) error {
	_, err := r.books.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "zone", Value: 1},
			{Key: "id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *BookRepository) List(ctx context.Context, zone string) ([]book.StoredBook, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})

	cursor, err := r.books.Find(ctx, bson.M{"zone": zone}, opts)
	if err != nil {
		r.log.Error("failed to list books", "zone", zone, "error", err)
		return nil, fmt.Errorf("list books: %w", err)
	}

	var docs []bookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}

	books := make([]book.StoredBook, len(docs))
	for i, d := range docs {
		books[i] = d.toStored()
	}
	return books, nil
}

func (r *BookRepository) Upsert(ctx context.Context, zone string, userID int, books []book.Book) (int, error) {
	now := r.now().UTC()

	models := make([]mongo.WriteModel, len(books))
	for i, b := range books {
		doc := newBookDocument(zone, userID, b, now)
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.DocID}).
			SetReplacement(doc).
			SetUpsert(true)
	}

	res, err := r.books.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	if err != nil {
		r.log.Error("failed to upsert books", "zone", zone, "count", len(books), "error", err)
		return 0, fmt.Errorf("upsert books: %w", err)
	}

	return int(res.UpsertedCount + res.MatchedCount), nil
}

func (r *BookRepository) Delete(ctx context.Context, zone string, ids []int) (int, error) {
	res, err := r.books.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": docIDs(zone, ids)}})
	if err != nil {
		r.log.Error("failed to delete books", "zone", zone, "error", err)
		return 0, fmt.Errorf("delete books: %w", err)
	}
	return int(res.DeletedCount), nil
}

func (r *BookRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

func (r *BookRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func docID(zone string, id int) string {
	return zone + "/" + strconv.Itoa(id)
}

func docIDs(zone string, ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = docID(zone, id)
	}
	return out
}

func newBookDocument(zone string, userID int, b book.Book, now time.Time) bookDocument {
	return bookDocument{
		DocID:       docID(zone, b.ID),
		Zone:        zone,
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		UpdatedBy:   userID,
		UpdatedAt:   now,
	}
}

func (d bookDocument) toStored() book.StoredBook {
	return book.StoredBook{
		Book: book.Book{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
		},
		Zone:      d.Zone,
		UpdatedAt: d.UpdatedAt,
		UpdatedBy: d.UpdatedBy,
	}
}
