// Package store implements the "mailbox store" external collaborator
// of spec.md §1: open/close a message, expose its read-only flag and
// backend kind, and stream raw/decrypted bodies to and from a
// MongoDB+GridFS backend. Grounded on the teacher's
// imap_core/indexer.EmailIndexer, which already wires
// go.mongodb.org/mongo-driver and mongo/gridfs for exactly this kind
// of "message document + attachment blob" storage.
package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corvidmail/attachbrowser/internal/logging"
)

// Backend names the transport a mailbox is served over, mirrored from
// the original's pop/imap/nntp distinctions that gate DELETE (spec.md
// §4.8: "Can't delete attachment from POP server.").
type Backend int

const (
	BackendLocal Backend = iota
	BackendIMAP
	BackendPOP
	BackendNNTP
)

// messageDocument is the subset of the teacher's EmailDocument this
// store needs: the raw RFC822 bytes live in GridFS, keyed by RawFileID.
type messageDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	MessageID  string             `bson:"messageId"`
	RawFileID  primitive.ObjectID `bson:"rawFileId"`
	ReadOnly   bool               `bson:"readOnly"`
	Backend    Backend            `bson:"backend"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

// Store is the mailbox store collaborator.
type Store struct {
	db     *mongo.Database
	bucket *gridfs.Bucket
	logger logging.Logger
}

// New dials no network itself; db is an already-connected database
// handle, matching the teacher's NewEmailIndexer signature.
func New(db *mongo.Database, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewDefault()
	}
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("attachments"))
	if err != nil {
		return nil, fmt.Errorf("create gridfs bucket: %w", err)
	}
	return &Store{db: db, bucket: bucket, logger: logger}, nil
}

// OpenedMessage is the handle SessionController.view_attachments works
// against: the raw RFC822 bytes plus the store-level facts the
// operation table needs (read-only, backend kind).
type OpenedMessage struct {
	MessageID string
	Raw       []byte
	ReadOnly  bool
	Backend   Backend

	store *Store
	docID primitive.ObjectID
}

// Open fetches messageID's document and streams its raw body out of
// GridFS, mirroring EmailIndexer's read path.
func (s *Store) Open(ctx context.Context, messageID string) (*OpenedMessage, error) {
	var doc messageDocument
	err := s.db.Collection("messages").FindOne(ctx, bson.M{"messageId": messageID}).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("find message %s: %w", messageID, err)
	}

	var buf []byte
	downloadStream, err := s.bucket.OpenDownloadStream(doc.RawFileID)
	if err != nil {
		return nil, fmt.Errorf("open raw stream for %s: %w", messageID, err)
	}
	defer downloadStream.Close()
	buf, err = io.ReadAll(downloadStream)
	if err != nil {
		return nil, fmt.Errorf("read raw stream for %s: %w", messageID, err)
	}

	s.logger.Debug("opened message", "messageId", messageID, "bytes", len(buf))
	return &OpenedMessage{
		MessageID: messageID,
		Raw:       buf,
		ReadOnly:  doc.ReadOnly,
		Backend:   doc.Backend,
		store:     s,
		docID:     doc.ID,
	}, nil
}

// Close releases nothing server-side (the connection is long-lived)
// but gives SessionController a symmetric close-the-message call per
// spec.md §4.8 step 6.
func (m *OpenedMessage) Close(ctx context.Context) error {
	return nil
}

// MarkChanged sets the header-changed flag this store tracks alongside
// attach_del, so a later sync pass knows the message's deletions need
// to be reconciled (spec.md §4.8 step 6: "mark the header changed").
func (m *OpenedMessage) MarkChanged(ctx context.Context, attachDel bool) error {
	_, err := m.store.db.Collection("messages").UpdateByID(ctx, m.docID, bson.M{
		"$set": bson.M{"attachDel": attachDel, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("mark message %s changed: %w", m.MessageID, err)
	}
	return nil
}

// PutBlob uploads content as a new GridFS object, used by filter/save
// flows that need to persist a replaced attachment body.
func (s *Store) PutBlob(ctx context.Context, name string, content []byte) (primitive.ObjectID, error) {
	id, err := s.bucket.UploadFromStream(name, bytes.NewReader(content))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("upload blob %s: %w", name, err)
	}
	return id, nil
}
