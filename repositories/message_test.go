package repositories

import (
	"hive-signal/domain"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestMessageRepository(t *testing.T, db *badger.DB) *MessageRepository {
	t.Helper()
	repository, err := NewMessageRepository(db, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repository.Close() })
	return repository
}

func Test_Create_Assigns_ID_And_Timestamp(t *testing.T) {
	req := require.New(t)
	repository := newTestMessageRepository(t, openTestDB(t))
	at := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	repository.now = func() time.Time { return at }

	message, err := repository.Create(domain.MessageDraft{
		OwnerID:     "sess-abc",
		PhoneNumber: "+15551234567",
		Content:     "hello",
	})
	req.NoError(err)
	req.NotEqual(uuid.Nil, message.ID)
	req.Equal(at, message.CreatedAt)
	req.Equal("sess-abc", message.OwnerID)

	fetched, err := repository.ListByOwner("sess-abc")
	req.NoError(err)
	req.Equal([]domain.Message{message}, fetched)
}

func Test_ListByOwner_Newest_First(t *testing.T) {
	req := require.New(t)
	repository := newTestMessageRepository(t, openTestDB(t))
	at := time.Now().UTC()
	var created []domain.Message
	for i, content := range []string{"first", "second", "third"} {
		stamp := at.Add(time.Duration(i) * time.Minute)
		repository.now = func() time.Time { return stamp }
		message, err := repository.Create(domain.MessageDraft{OwnerID: "owner", PhoneNumber: "5551234", Content: content})
		req.NoError(err)
		created = append(created, message)
	}

	fetched, err := repository.ListByOwner("owner")
	req.NoError(err)
	req.Len(fetched, 3)
	req.Equal(created[2], fetched[0])
	req.Equal(created[1], fetched[1])
	req.Equal(created[0], fetched[2])
}

func Test_ListByOwner_Ties_Keep_Insertion_Order(t *testing.T) {
	req := require.New(t)
	repository := newTestMessageRepository(t, openTestDB(t))
	at := time.Now().UTC()
	repository.now = func() time.Time { return at }

	first, err := repository.Create(domain.MessageDraft{OwnerID: "owner", PhoneNumber: "5551234", Content: "a"})
	req.NoError(err)
	second, err := repository.Create(domain.MessageDraft{OwnerID: "owner", PhoneNumber: "5551234", Content: "b"})
	req.NoError(err)

	fetched, err := repository.ListByOwner("owner")
	req.NoError(err)
	req.Equal([]domain.Message{second, first}, fetched)
}

func Test_ListByOwner_Unknown_Owner_Is_Empty(t *testing.T) {
	req := require.New(t)
	repository := newTestMessageRepository(t, openTestDB(t))

	fetched, err := repository.ListByOwner("nobody")
	req.NoError(err)
	req.NotNil(fetched)
	req.Empty(fetched)
}

func Test_ListByOwner_Owners_Are_Disjoint(t *testing.T) {
	req := require.New(t)
	repository := newTestMessageRepository(t, openTestDB(t))

	// "a" is a raw prefix of "a:b"; the encoded key prefix must not leak across
	_, err := repository.Create(domain.MessageDraft{OwnerID: "a", PhoneNumber: "5551234", Content: "for a"})
	req.NoError(err)
	_, err = repository.Create(domain.MessageDraft{OwnerID: "a:b", PhoneNumber: "5551234", Content: "for a:b"})
	req.NoError(err)

	forA, err := repository.ListByOwner("a")
	req.NoError(err)
	req.Len(forA, 1)
	req.Equal("for a", forA[0].Content)

	forAB, err := repository.ListByOwner("a:b")
	req.NoError(err)
	req.Len(forAB, 1)
	req.Equal("for a:b", forAB[0].Content)
}

func Test_Messages_Survive_Reopen(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	repository, err := NewMessageRepository(db, slog.Default())
	req.NoError(err)
	message, err := repository.Create(domain.MessageDraft{OwnerID: "owner", PhoneNumber: "5551234", Content: "durable"})
	req.NoError(err)
	req.NoError(repository.Close())
	req.NoError(db.Close())

	db, err = badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()
	repository, err = NewMessageRepository(db, slog.Default())
	req.NoError(err)
	defer repository.Close()

	fetched, err := repository.ListByOwner("owner")
	req.NoError(err)
	req.Equal([]domain.Message{message}, fetched)
}

func Test_OwnerFromKey(t *testing.T) {
	req := require.New(t)
	key := ownerPrefix("sess:42") + "0000000000000000001:00000000000000000001"

	owner, ok := OwnerFromKey(key)
	req.True(ok)
	req.Equal("sess:42", owner)

	_, ok = OwnerFromKey("user:id:1")
	req.False(ok)
}
