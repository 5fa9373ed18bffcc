package portfolio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoOpTimeout = 10 * time.Second

// mongoStore persists both collections in MongoDB. Single-document
// insert/update/delete atomicity comes from the store itself; there is no
// version check, so concurrent edits to the same record resolve
// last-write-wins.
type mongoStore struct {
	client       *mongo.Client
	blogs        *mongo.Collection
	publications *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri, verifies the connection, and
// ensures the unique slug index on the blogs collection.
func NewMongoStore(ctx context.Context, uri, dbName string) (Store, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(dbName)
	s := &mongoStore{
		client:       client,
		blogs:        db.Collection("blogs"),
		publications: db.Collection("publications"),
	}
	if _, err := s.blogs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("uniq_slug").SetUnique(true),
	}); err != nil {
		return nil, fmt.Errorf("ensure slug index: %w", err)
	}
	return s, nil
}

func (s *mongoStore) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *mongoStore) ListPosts(ctx context.Context) ([]BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.blogs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)
	var posts []BlogPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

func (s *mongoStore) GetPost(ctx context.Context, slug string) (BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()
	var p BlogPost
	err := s.blogs.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return BlogPost{}, ErrNotFound
	}
	if err != nil {
		return BlogPost{}, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

func (s *mongoStore) InsertPost(ctx context.Context, p BlogPost) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()
	if _, err := s.blogs.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (s *mongoStore) UpdatePost(ctx context.Context, slug string, p BlogPost) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()
	p.Slug = slug
	res, err := s.blogs.ReplaceOne(ctx, bson.M{"slug": slug}, p)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) DeletePost(ctx context.Context, slug string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()
	res, err := s.blogs.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) ListPublications(ctx context.Context) ([]Publication, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()
	cur, err := s.publications.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}
	defer cur.Close(ctx)
	var pubs []Publication
	if err := cur.All(ctx, &pubs); err != nil {
		return nil, fmt.Errorf("decode publications: %w", err)
	}
	// Year is a free-text string, so ordering happens here rather than in a
	// lexicographic Mongo sort.
	sortPublications(pubs)
	return pubs, nil
}

func (s *mongoStore) GetPublication(ctx context.Context, id string) (Publication, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()
	var p Publication
	err := s.publications.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Publication{}, ErrNotFound
	}
	if err != nil {
		return Publication{}, fmt.Errorf("get publication: %w", err)
	}
	return p, nil
}

func (s *mongoStore) InsertPublication(ctx context.Context, p Publication) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()
	if _, err := s.publications.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert publication: %w", err)
	}
	return nil
}

func (s *mongoStore) UpdatePublication(ctx context.Context, id string, p Publication) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()
	p.ID = id
	res, err := s.publications.ReplaceOne(ctx, bson.M{"_id": id}, p)
	if err != nil {
		return fmt.Errorf("update publication: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) DeletePublication(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()
	res, err := s.publications.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete publication: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
