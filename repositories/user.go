//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"fmt"
	"hive-signal/codec"
	"hive-signal/domain"
	"hive-signal/errors"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	userByIDPrefix   = "user:id:"
	userByNamePrefix = "user:name:"
)

type IUserRepository interface {
	CreateUser(username, hashedPassword string) (domain.Account, error)
	GetUserByUsername(username string) (domain.Account, error)
	GetUserByID(id string) (domain.Account, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// User is the stored shape of an Account.
type User struct {
	ID           string    `cbor:"id"`
	Username     string    `cbor:"username"`
	PasswordHash string    `cbor:"password_hash"`
	CreatedAt    time.Time `cbor:"created_at"`
}

// CreateUser persists the account record under its id and reserves the
// lowercased username in the same transaction.
func (u UserRepository) CreateUser(username, hashedPassword string) (domain.Account, error) {
	user := User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}
	data, err := codec.Marshal(user)
	if err != nil {
		return domain.Account{}, fmt.Errorf("marshal failed: %w", err)
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		nameKey := usernameKey(username)
		if _, err := txn.Get(nameKey); err == nil {
			return errors.ErrUserAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set(nameKey, []byte(user.ID)); err != nil {
			return err
		}
		return txn.Set([]byte(userByIDPrefix+user.ID), data)
	})
	if err != nil {
		return domain.Account{}, err
	}
	return toAccount(user), nil
}

// GetUserByUsername matches the username without regard to case.
func (u UserRepository) GetUserByUsername(username string) (domain.Account, error) {
	var user User
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(usernameKey(username))
		if err != nil {
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return readUser(txn, string(id), &user)
	})
	if err != nil {
		return domain.Account{}, notFound(err)
	}
	return toAccount(user), nil
}

func (u UserRepository) GetUserByID(id string) (domain.Account, error) {
	var user User
	err := u.db.View(func(txn *badger.Txn) error {
		return readUser(txn, id, &user)
	})
	if err != nil {
		return domain.Account{}, notFound(err)
	}
	return toAccount(user), nil
}

func readUser(txn *badger.Txn, id string, user *User) error {
	item, err := txn.Get([]byte(userByIDPrefix + id))
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return codec.Unmarshal(val, user)
	})
}

func usernameKey(username string) []byte {
	return []byte(userByNamePrefix + strings.ToLower(username))
}

func notFound(err error) error {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrUserNotFound
	}
	return err
}

func toAccount(user User) domain.Account {
	return domain.Account{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.UTC(),
	}
}
