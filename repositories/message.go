//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/base64"
	"fmt"
	"hive-signal/codec"
	"hive-signal/domain"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	messagePrefix      = "msg:"
	messageSequenceKey = "seq:msg"
	sequenceBandwidth  = 100
)

type IMessageRepository interface {
	Create(draft domain.MessageDraft) (domain.Message, error)
	ListByOwner(ownerID string) ([]domain.Message, error)
}

type MessageRepository struct {
	db       *badger.DB
	log      *slog.Logger
	sequence *badger.Sequence
	now      func() time.Time
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) (*MessageRepository, error) {
	seq, err := db.GetSequence([]byte(messageSequenceKey), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("message sequence: %w", err)
	}
	return &MessageRepository{db: db, log: log, sequence: seq, now: time.Now}, nil
}

// Close returns the unused part of the leased sequence range to Badger.
func (m *MessageRepository) Close() error {
	return m.sequence.Release()
}

// DiskMessage is the stored shape of a Message.
type DiskMessage struct {
	ID          string    `cbor:"id"`
	OwnerID     string    `cbor:"owner_id"`
	PhoneNumber string    `cbor:"phone_number"`
	Content     string    `cbor:"content"`
	CreatedAt   time.Time `cbor:"created_at"`
}

// Create assigns the id and creation time, then persists the message under
// "msg:{owner}:{created_at_padded}:{seq_padded}".
// The owner is base64url encoded so no owner prefix can swallow another one,
// and the insertion sequence breaks ties between identical timestamps.
func (m *MessageRepository) Create(draft domain.MessageDraft) (domain.Message, error) {
	seq, err := m.sequence.Next()
	if err != nil {
		return domain.Message{}, fmt.Errorf("next message sequence: %w", err)
	}
	message := domain.Message{
		ID:          uuid.New(),
		OwnerID:     draft.OwnerID,
		PhoneNumber: draft.PhoneNumber,
		Content:     draft.Content,
		CreatedAt:   m.now().UTC(),
	}
	bytes, err := codec.Marshal(fromMessage(message))
	if err != nil {
		return domain.Message{}, fmt.Errorf("marshal failed: %w", err)
	}
	key := fmt.Sprintf("%s%019d:%020d", ownerPrefix(message.OwnerID), message.CreatedAt.UnixNano(), seq)
	if err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	}); err != nil {
		return domain.Message{}, err
	}
	m.log.Debug("Message stored", "id", message.ID, "key", key)
	return message, nil
}

// ListByOwner returns every message of the owner, newest first.
// An owner without messages yields an empty, non-nil slice.
func (m *MessageRepository) ListByOwner(ownerID string) ([]domain.Message, error) {
	diskMessages := make([]DiskMessage, 0)
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(ownerPrefix(ownerID))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts at the greatest key below the seek key
		seekKey := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var dm DiskMessage
				if err := codec.Unmarshal(val, &dm); err != nil {
					return err
				}
				diskMessages = append(diskMessages, dm)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(diskMessages))
	for _, dm := range diskMessages {
		message, err := toMessage(dm)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func ownerPrefix(ownerID string) string {
	return messagePrefix + base64.RawURLEncoding.EncodeToString([]byte(ownerID)) + ":"
}

func fromMessage(message domain.Message) DiskMessage {
	return DiskMessage{
		ID:          message.ID.String(),
		OwnerID:     message.OwnerID,
		PhoneNumber: message.PhoneNumber,
		Content:     message.Content,
		CreatedAt:   message.CreatedAt,
	}
}

func toMessage(dm DiskMessage) (domain.Message, error) {
	parsedID, err := uuid.Parse(dm.ID)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:          parsedID,
		OwnerID:     dm.OwnerID,
		PhoneNumber: dm.PhoneNumber,
		Content:     dm.Content,
		CreatedAt:   dm.CreatedAt.UTC(),
	}, nil
}

// DecodeMessage is used by the store inspector to render raw values.
func DecodeMessage(val []byte) (domain.Message, error) {
	var dm DiskMessage
	if err := codec.Unmarshal(val, &dm); err != nil {
		return domain.Message{}, err
	}
	return toMessage(dm)
}

// OwnerFromKey recovers the owner id embedded in a message key.
func OwnerFromKey(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, messagePrefix)
	if !ok {
		return "", false
	}
	encoded, _, _ := strings.Cut(rest, ":")
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", false
	}
	return string(raw), true
}
