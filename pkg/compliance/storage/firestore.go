package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"agenda-horario/retention/pkg/compliance"
)

const (
	// DefaultCollection is the collection holding LGPD compliance logs.
	DefaultCollection = "lgpd_logs"

	// DefaultTimestampField is the document field holding the event time.
	DefaultTimestampField = "data_hora"

	// FirestoreMaxBatchSize is Firestore's write limit per transaction.
	FirestoreMaxBatchSize = 500
)

// FirestoreConfig contains configuration for the Firestore store.
type FirestoreConfig struct {
	// ProjectID is the Google Cloud project. Empty means detect from the
	// environment (firestore.DetectProjectID).
	ProjectID string

	// CredentialsFile is an optional service account JSON key. Empty means
	// Application Default Credentials.
	CredentialsFile string

	// Collection is the collection holding log documents.
	// Default: "lgpd_logs"
	Collection string

	// TimestampField is the document field compared against the cutoff.
	// Default: "data_hora"
	TimestampField string
}

// DefaultFirestoreConfig returns the default Firestore configuration.
func DefaultFirestoreConfig() *FirestoreConfig {
	return &FirestoreConfig{
		ProjectID:      firestore.DetectProjectID,
		Collection:     DefaultCollection,
		TimestampField: DefaultTimestampField,
	}
}

// applyDefaults fills empty fields with their defaults.
func (c *FirestoreConfig) applyDefaults() {
	if c.ProjectID == "" {
		c.ProjectID = firestore.DetectProjectID
	}
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.TimestampField == "" {
		c.TimestampField = DefaultTimestampField
	}
}

// FirestoreStore implements the Store interface on Cloud Firestore.
// The FIRESTORE_EMULATOR_HOST environment variable is honoured by the client.
type FirestoreStore struct {
	client *firestore.Client
	config *FirestoreConfig
	logger *slog.Logger
}

// NewFirestoreStore creates a Firestore client for the configured project.
// The client is owned by the returned store and released by Close.
func NewFirestoreStore(ctx context.Context, config *FirestoreConfig) (*FirestoreStore, error) {
	if config == nil {
		config = DefaultFirestoreConfig()
	}
	config.applyDefaults()

	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, config.ProjectID, opts...)
	if err != nil {
		return nil, compliance.NewStoreUnavailableError("firestore", "open", err)
	}

	logger := slog.Default().With("component", "compliance.storage.firestore")
	logger.Info("Firestore store initialized",
		"project_id", config.ProjectID,
		"collection", config.Collection,
		"timestamp_field", config.TimestampField,
	)

	return &FirestoreStore{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

func (s *FirestoreStore) collection() *firestore.CollectionRef {
	return s.client.Collection(s.config.Collection)
}

// Insert creates a document; Firestore assigns the ID when record.ID is empty.
func (s *FirestoreStore) Insert(ctx context.Context, record *compliance.LogRecord) (string, error) {
	data := make(map[string]interface{}, len(record.Fields)+1)
	for k, v := range record.Fields {
		data[k] = v
	}
	data[s.config.TimestampField] = record.Timestamp

	var ref *firestore.DocumentRef
	if record.ID == "" {
		ref = s.collection().NewDoc()
	} else {
		ref = s.collection().Doc(record.ID)
	}

	if _, err := ref.Create(ctx, data); err != nil {
		return "", compliance.NewStoreUnavailableError("firestore", "insert", err)
	}

	return ref.ID, nil
}

// QueryBefore returns every document whose timestamp field is strictly before
// cutoff. Only the timestamp field is read back; Fields is left nil.
func (s *FirestoreStore) QueryBefore(ctx context.Context, cutoff time.Time) ([]*compliance.LogRecord, error) {
	q := s.collection().
		Select(s.config.TimestampField).
		Where(s.config.TimestampField, "<", cutoff)

	iter := q.Documents(ctx)
	defer iter.Stop()

	records := []*compliance.LogRecord{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, compliance.NewStoreUnavailableError("firestore", "query", err)
		}

		record := &compliance.LogRecord{ID: doc.Ref.ID}
		if v, err := doc.DataAt(s.config.TimestampField); err == nil {
			if ts, ok := v.(time.Time); ok {
				record.Timestamp = ts
			}
		}
		records = append(records, record)
	}

	return records, nil
}

// DeleteBatch deletes every id inside a single Firestore transaction.
// Deleting a missing document is not an error.
func (s *FirestoreStore) DeleteBatch(ctx context.Context, ids []string) error {
	if len(ids) > FirestoreMaxBatchSize {
		return compliance.NewStoreUnavailableError("firestore", "delete_batch", compliance.ErrBatchLimitExceeded)
	}

	coll := s.collection()
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, id := range ids {
			if err := tx.Delete(coll.Doc(id)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return compliance.NewStoreUnavailableError("firestore", "delete_batch", err)
	}

	return nil
}

// Count runs a server-side count aggregation over the collection.
func (s *FirestoreStore) Count(ctx context.Context) (int64, error) {
	results, err := s.collection().NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, compliance.NewStoreUnavailableError("firestore", "count", err)
	}

	switch v := results["all"].(type) {
	case *firestorepb.Value:
		return v.GetIntegerValue(), nil
	case int64:
		return v, nil
	default:
		return 0, compliance.NewStoreUnavailableError("firestore", "count",
			fmt.Errorf("unexpected aggregation result type %T", v))
	}
}

// MaxBatchSize returns Firestore's per-transaction write limit.
func (s *FirestoreStore) MaxBatchSize() int {
	return FirestoreMaxBatchSize
}

// Ping reads at most one document to verify the collection is reachable.
func (s *FirestoreStore) Ping(ctx context.Context) error {
	iter := s.collection().Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return compliance.NewStoreUnavailableError("firestore", "ping", err)
	}
	return nil
}

// Close releases the Firestore client.
func (s *FirestoreStore) Close() error {
	if err := s.client.Close(); err != nil {
		return compliance.NewStoreUnavailableError("firestore", "close", err)
	}

	s.logger.Info("Firestore store closed")
	return nil
}
