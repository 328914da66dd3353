package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Product is a catalog piece. CatalogID is the stable human-facing number the
// storefront displays and carts reference; Price stays in display form, cart
// sync resolves it to a number.
type Product struct {
	ID          string `bson:"_id"`
	CatalogID   int32  `bson:"id"`
	Name        string `bson:"name"`
	Category    string `bson:"category"`
	Material    string `bson:"material"`
	Stone       string `bson:"stone"`
	Occasion    string `bson:"occasion"`
	Price       string `bson:"price"`
	Image       string `bson:"img"`
	Description string `bson:"description"`
}

type ProductRepository interface {
	FindAll(c context.Context) ([]Product, error)
	Count(c context.Context) (int64, error)
	InsertMany(c context.Context, products []Product) error
}

type mongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{collection: db.Collection("products")}
}

func (m *mongoProductRepository) FindAll(c context.Context) ([]Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := m.collection.Find(c, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed finding products with error=%w", err)
	}
	defer cursor.Close(c)

	products := []Product{}
	if err := cursor.All(c, &products); err != nil {
		return nil, fmt.Errorf("failed decoding products with error=%w", err)
	}
	return products, nil
}

func (m *mongoProductRepository) Count(c context.Context) (int64, error) {
	count, err := m.collection.CountDocuments(c, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed counting products with error=%w", err)
	}
	return count, nil
}

func (m *mongoProductRepository) InsertMany(c context.Context, products []Product) error {
	docs := make([]interface{}, 0, len(products))
	for _, product := range products {
		if product.ID == "" {
			product.ID = uuid.NewString()
		}
		docs = append(docs, product)
	}

	_, err := m.collection.InsertMany(c, docs)
	if err != nil {
		return fmt.Errorf("failed inserting products with error=%w", err)
	}
	return nil
}
