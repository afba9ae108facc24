package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	productsCollection = "products"
	cartCollection     = "cartitems"
)

// MongoRepo is the document-store backend. It stores the same records as
// GormRepo with application-generated string ids.
type MongoRepo struct {
	DB *mongo.Database
}

type productDoc struct {
	ID          string               `bson:"_id"`
	Name        string               `bson:"name"`
	Price       primitive.Decimal128 `bson:"price"`
	Description string               `bson:"description"`
	Image       string               `bson:"image"`
	Category    string               `bson:"category,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

type cartItemDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	ProductID string    `bson:"product"`
	Quantity  int       `bson:"quantity"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toProductDoc(p models.Product) (productDoc, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return productDoc{}, fmt.Errorf("price %s: %w", p.Price, err)
	}
	return productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Price:       price,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (d productDoc) model() (models.Product, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return models.Product{}, fmt.Errorf("product %s price: %w", d.ID, err)
	}
	return models.Product{
		ID:          d.ID,
		Name:        d.Name,
		Price:       price,
		Description: d.Description,
		Image:       d.Image,
		Category:    d.Category,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

func toCartItemDoc(c models.CartItem) cartItemDoc {
	return cartItemDoc(c)
}

func (d cartItemDoc) model() models.CartItem {
	return models.CartItem(d)
}

func (r *MongoRepo) products() *mongo.Collection { return r.DB.Collection(productsCollection) }
func (r *MongoRepo) cart() *mongo.Collection     { return r.DB.Collection(cartCollection) }

// EnsureIndexes creates the (userId, product) lookup index. It is not unique.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.cart().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "product", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create cart index: %w", err)
	}
	return nil
}

func (r *MongoRepo) Ping(ctx context.Context) error {
	return r.DB.Client().Ping(ctx, readpref.Primary())
}

func (r *MongoRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	return r.findProducts(ctx, bson.D{})
}

func (r *MongoRepo) CountProducts(ctx context.Context) (int64, error) {
	return r.products().CountDocuments(ctx, bson.D{})
}

func (r *MongoRepo) CreateProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(products))
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = uuid.NewString()
		}
		products[i].CreatedAt, products[i].UpdatedAt = now, now
		doc, err := toProductDoc(products[i])
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	_, err := r.products().InsertMany(ctx, docs)
	return err
}

func (r *MongoRepo) GetProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.findProducts(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MongoRepo) findProducts(ctx context.Context, filter any) ([]models.Product, error) {
	cur, err := r.products().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		p, err := d.model()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *MongoRepo) ListItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.cart().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	var docs []cartItemDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]models.CartItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.model())
	}
	return items, nil
}

func (r *MongoRepo) FindItemByProduct(ctx context.Context, userID, productID string) (*models.CartItem, error) {
	return r.findItem(ctx, bson.M{"userId": userID, "product": productID})
}

func (r *MongoRepo) GetItem(ctx context.Context, userID, id string) (*models.CartItem, error) {
	return r.findItem(ctx, bson.M{"_id": id, "userId": userID})
}

func (r *MongoRepo) findItem(ctx context.Context, filter bson.M) (*models.CartItem, error) {
	var doc cartItemDoc
	if err := r.cart().FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item := doc.model()
	return &item, nil
}

func (r *MongoRepo) CreateItem(ctx context.Context, item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.CreatedAt, item.UpdatedAt = now, now
	_, err := r.cart().InsertOne(ctx, toCartItemDoc(*item))
	return err
}

func (r *MongoRepo) SaveItem(ctx context.Context, item *models.CartItem) error {
	item.UpdatedAt = time.Now().UTC()
	res, err := r.cart().UpdateOne(ctx,
		bson.M{"_id": item.ID, "userId": item.UserID},
		bson.M{"$set": bson.M{"quantity": item.Quantity, "updatedAt": item.UpdatedAt}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) DeleteItem(ctx context.Context, userID, id string) error {
	res, err := r.cart().DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) DeleteAllItems(ctx context.Context, userID string) (int64, error) {
	res, err := r.cart().DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
