package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	inErrors "github.com/lumiere-atelier/storefront/internal/errors"
	"github.com/lumiere-atelier/storefront/internal/session"
)

type Account struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	CreatedAt time.Time `bson:"createdAt"`
}

type AccountRepository interface {
	session.AccountSource

	Insert(c context.Context, account Account) (Account, error)
	FindByEmail(c context.Context, email string) (Account, error)
	FindByID(c context.Context, id string) (Account, error)
}

type mongoAccountRepository struct {
	collection *mongo.Collection
}

func NewMongoAccountRepository(db *mongo.Database) AccountRepository {
	return &mongoAccountRepository{collection: db.Collection("accounts")}
}

func (m *mongoAccountRepository) Insert(c context.Context, account Account) (Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	_, err := m.collection.InsertOne(c, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Account{}, inErrors.ErrEmailInUse
		}
		return Account{}, fmt.Errorf("failed inserting account with error=%w", err)
	}
	return account, nil
}

func (m *mongoAccountRepository) FindByEmail(c context.Context, email string) (Account, error) {
	account := Account{}
	err := m.collection.FindOne(c, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Account{}, inErrors.ErrAccountNotFound
		}
		return Account{}, fmt.Errorf("failed finding account by email with error=%w", err)
	}
	return account, nil
}

func (m *mongoAccountRepository) FindByID(c context.Context, id string) (Account, error) {
	account := Account{}
	err := m.collection.FindOne(c, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Account{}, inErrors.ErrAccountNotFound
		}
		return Account{}, fmt.Errorf("failed finding account by id with error=%w", err)
	}
	return account, nil
}

// FindSessionAccount is the lookup the session resolver uses when verifying a
// presented account token.
func (m *mongoAccountRepository) FindSessionAccount(
	c context.Context,
	id string,
) (session.Account, error) {
	account, err := m.FindByID(c, id)
	if err != nil {
		return session.Account{}, err
	}
	return session.Account{ID: account.ID, Name: account.Name, Email: account.Email}, nil
}

func EnsureIndexes(c context.Context, db *mongo.Database) error {
	_, err := db.Collection("accounts").Indexes().CreateOne(c, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed creating account indexes with error=%w", err)
	}
	return nil
}
