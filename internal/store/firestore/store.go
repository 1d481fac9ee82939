package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"workoutlog/internal/record"
)

const DefaultCollection = "workout_records"

// Store keeps one Firestore document per record. Record IDs are document
// IDs; seq preserves insertion order.
type Store struct {
	client     *firestore.Client
	collection string
	now        func() time.Time
}

func NewStore(ctx context.Context, projectID, collection string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}
	if collection == "" {
		collection = DefaultCollection
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &Store{client: client, collection: collection, now: time.Now}, nil
}

type recordDoc struct {
	Date       string    `firestore:"date"`
	Weekday    string    `firestore:"weekday"`
	Time       string    `firestore:"time"`
	BodyWeight float64   `firestore:"body_weight"`
	Exercise   string    `firestore:"exercise"`
	Load       float64   `firestore:"load"`
	Reps       string    `firestore:"reps"`
	Memo       string    `firestore:"memo"`
	Seq        int64     `firestore:"seq"`
	CreatedAt  time.Time `firestore:"created_at"`
}

func toDoc(r record.Record, at time.Time) recordDoc {
	return recordDoc{
		Date:       r.Date,
		Weekday:    r.Weekday,
		Time:       r.Time,
		BodyWeight: r.BodyWeight,
		Exercise:   r.Exercise,
		Load:       r.Load,
		Reps:       r.Reps,
		Memo:       r.Memo,
		Seq:        at.UnixNano(),
		CreatedAt:  at,
	}
}

func fromDoc(id string, d recordDoc) record.Record {
	return record.Record{
		ID:         id,
		Date:       d.Date,
		Weekday:    d.Weekday,
		Time:       d.Time,
		BodyWeight: d.BodyWeight,
		Exercise:   d.Exercise,
		Load:       d.Load,
		Reps:       d.Reps,
		Memo:       d.Memo,
	}
}

func (s *Store) col() *firestore.CollectionRef {
	return s.client.Collection(s.collection)
}

func (s *Store) Append(ctx context.Context, r record.Record) error {
	_, err := s.col().Doc(uuid.NewString()).Create(ctx, toDoc(r, s.now()))
	if err != nil {
		return fmt.Errorf("firestore append: %w", err)
	}
	return nil
}

func (s *Store) LoadAll(ctx context.Context) ([]record.Record, error) {
	iter := s.col().OrderBy("seq", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	out := []record.Record{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore load: %w", err)
		}

		var d recordDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode recordDoc: %w", err)
		}
		out = append(out, fromDoc(snap.Ref.ID, d))
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return record.ErrNotFound
	}
	_, err := s.col().Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("firestore delete %s: %w", id, record.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("firestore delete: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
