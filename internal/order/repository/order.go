package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	cartRepository "github.com/lumiere-atelier/storefront/internal/cart/repository"
)

const PaymentStatusCompleted = "completed"

type PaymentDetails struct {
	Method        string `bson:"method,omitempty"`
	TransactionID string `bson:"transactionId,omitempty"`
}

type CustomerDetails struct {
	FirstName  string `bson:"firstName,omitempty"`
	LastName   string `bson:"lastName,omitempty"`
	Email      string `bson:"email"`
	Address    string `bson:"address,omitempty"`
	City       string `bson:"city,omitempty"`
	Country    string `bson:"country,omitempty"`
	PostalCode string `bson:"postalCode,omitempty"`
}

// Order is an immutable purchase record. PaymentStatus is written once at
// creation and never updated.
type Order struct {
	ID              string                    `bson:"_id"`
	AccountID       string                    `bson:"accountId,omitempty"`
	GuestID         string                    `bson:"sessionId,omitempty"`
	Email           string                    `bson:"email"`
	Items           []cartRepository.LineItem `bson:"items"`
	TotalAmount     float64                   `bson:"totalAmount"`
	PaymentDetails  PaymentDetails            `bson:"paymentDetails"`
	CustomerDetails CustomerDetails           `bson:"customerDetails"`
	PaymentStatus   string                    `bson:"paymentStatus"`
	CreatedAt       time.Time                 `bson:"createdAt"`
}

type OrderRepository interface {
	Insert(c context.Context, order Order) (Order, error)
	FindByAccount(c context.Context, accountID string) ([]Order, error)
}

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{collection: db.Collection("orders")}
}

func (m *mongoOrderRepository) Insert(c context.Context, order Order) (Order, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	_, err := m.collection.InsertOne(c, order)
	if err != nil {
		return Order{}, fmt.Errorf("failed inserting order with error=%w", err)
	}
	return order, nil
}

func (m *mongoOrderRepository) FindByAccount(
	c context.Context,
	accountID string,
) ([]Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := m.collection.Find(c, bson.M{"accountId": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed finding orders with error=%w", err)
	}
	defer cursor.Close(c)

	orders := []Order{}
	if err := cursor.All(c, &orders); err != nil {
		return nil, fmt.Errorf("failed decoding orders with error=%w", err)
	}
	return orders, nil
}

func EnsureIndexes(c context.Context, db *mongo.Database) error {
	_, err := db.Collection("orders").Indexes().CreateOne(c, mongo.IndexModel{
		Keys: bson.D{{Key: "accountId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed creating order indexes with error=%w", err)
	}
	return nil
}
