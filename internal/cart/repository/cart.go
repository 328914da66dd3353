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

// Owner is the cart key: exactly one of AccountID or GuestID is set.
type Owner struct {
	AccountID string
	GuestID   string
}

func AccountOwner(id string) Owner {
	return Owner{AccountID: id}
}

func GuestOwner(id string) Owner {
	return Owner{GuestID: id}
}

func OwnerFor(identity session.Identity) Owner {
	if identity.IsAccount() {
		return AccountOwner(identity.Account.ID)
	}
	return GuestOwner(identity.GuestID)
}

func (o Owner) Valid() bool {
	return (o.AccountID != "") != (o.GuestID != "")
}

func (o Owner) filter() bson.M {
	if o.AccountID != "" {
		return bson.M{"accountId": o.AccountID}
	}
	return bson.M{"sessionId": o.GuestID}
}

type LineItem struct {
	ProductID string  `bson:"productId"`
	Name      string  `bson:"name"`
	Price     float64 `bson:"price"`
	Image     string  `bson:"image,omitempty"`
	Category  string  `bson:"category,omitempty"`
	Quantity  int32   `bson:"quantity"`
}

type Cart struct {
	ID        string     `bson:"_id"`
	AccountID string     `bson:"accountId,omitempty"`
	GuestID   string     `bson:"sessionId,omitempty"`
	Items     []LineItem `bson:"items"`
	UpdatedAt time.Time  `bson:"updatedAt"`
}

type CartRepository interface {
	FindByOwner(c context.Context, owner Owner) (Cart, error)
	ReplaceItems(c context.Context, owner Owner, items []LineItem) (Cart, error)
	Delete(c context.Context, owner Owner) error
}

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{collection: db.Collection("carts")}
}

func (m *mongoCartRepository) FindByOwner(c context.Context, owner Owner) (Cart, error) {
	if !owner.Valid() {
		return Cart{}, errors.New("cart owner must be exactly one of account or guest")
	}

	cart := Cart{}
	err := m.collection.FindOne(c, owner.filter()).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Cart{}, inErrors.ErrCartNotFound
		}
		return Cart{}, fmt.Errorf("failed finding cart with error=%w", err)
	}
	return cart, nil
}

// ReplaceItems is the atomicity primitive for full-replace sync: the unique
// owner-key index plus upsert keeps at most one cart per identity even under
// rapid repeated calls.
func (m *mongoCartRepository) ReplaceItems(
	c context.Context,
	owner Owner,
	items []LineItem,
) (Cart, error) {
	if !owner.Valid() {
		return Cart{}, errors.New("cart owner must be exactly one of account or guest")
	}
	if items == nil {
		items = []LineItem{}
	}

	update := bson.M{
		"$set":         bson.M{"items": items, "updatedAt": time.Now()},
		"$setOnInsert": bson.M{"_id": uuid.NewString()},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	cart := Cart{}
	err := m.collection.FindOneAndUpdate(c, owner.filter(), update, opts).Decode(&cart)
	if err != nil {
		return Cart{}, fmt.Errorf("failed upserting cart with error=%w", err)
	}
	return cart, nil
}

func (m *mongoCartRepository) Delete(c context.Context, owner Owner) error {
	if !owner.Valid() {
		return errors.New("cart owner must be exactly one of account or guest")
	}

	_, err := m.collection.DeleteOne(c, owner.filter())
	if err != nil {
		return fmt.Errorf("failed deleting cart with error=%w", err)
	}
	return nil
}

// EnsureIndexes creates the unique partial owner-key indexes; it runs at
// startup, taking the place of SQL migrations.
func EnsureIndexes(c context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "accountId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"accountId": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"sessionId": bson.M{"$exists": true}}),
		},
	}

	_, err := db.Collection("carts").Indexes().CreateMany(c, indexes)
	if err != nil {
		return fmt.Errorf("failed creating cart indexes with error=%w", err)
	}
	return nil
}
