package mongo

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Listing order
	{
		CollectionName: BooksCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "seq", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_book_seq_unique"),
		},
	},
	{
		CollectionName: BooksCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
	},
	{
		CollectionName: BooksCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "featured", Value: 1},
				{Key: "seq", Value: 1},
			},
			Options: options.Index().SetName("idx_featured"),
		},
	},
	{
		CollectionName: BooksCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "price", Value: 1}},
			Options: options.Index().SetName("idx_price"),
		},
	},
	{
		CollectionName: BooksCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "author", Value: "text"},
			},
			Options: options.Index().
				SetName("idx_book_text_search").
				SetWeights(bson.D{
					{Key: "title", Value: 10},
					{Key: "author", Value: 5},
				}),
		},
	},
	{
		CollectionName: CategoriesCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_category_name_unique"),
		},
	},
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	log.Println("Starting index creation...")

	for _, idxConfig := range requiredIndexes {
		indexName, err := db.Collection(idxConfig.CollectionName).Indexes().CreateOne(ctx, idxConfig.IndexModel)
		if err != nil {
			log.Printf("Error creating index on collection %s: %v", idxConfig.CollectionName, err)
			return err
		}

		log.Printf("✓ Created index '%s' on collection '%s'", indexName, idxConfig.CollectionName)
	}

	log.Println("All indexes created successfully!")
	return nil
}
