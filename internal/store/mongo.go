package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restobot/internal/models"
)

// Mongo implements Store on top of the users and orders collections.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

const opTimeout = 5 * time.Second

func (m *Mongo) FindUserByChatID(ctx context.Context, chatID int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var user models.User
	err := m.db.Collection("users").FindOne(ctx, bson.M{"chatId": chatID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (m *Mongo) SaveUser(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"firstName":     user.FirstName,
		"lastName":      user.LastName,
		"username":      user.Username,
		"phone":         user.Phone,
		"addresses":     user.Addresses,
		"totalOrders":   user.TotalOrders,
		"totalSpent":    user.TotalSpent,
		"avgOrderValue": user.AvgOrderValue,
		"loyaltyPoints": user.LoyaltyPoints,
		"isVip":         user.IsVip,
		"vipSince":      user.VipSince,
		"lastOrderAt":   user.LastOrderAt,
		"updatedAt":     user.UpdatedAt,
	}, "$setOnInsert": bson.M{
		"chatId":    user.ChatID,
		"createdAt": user.CreatedAt,
	}}

	_, err := m.db.Collection("users").UpdateOne(
		ctx,
		bson.M{"chatId": user.ChatID},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

func (m *Mongo) InsertOrder(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := m.db.Collection("orders").InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateOrderNumber
	}
	return err
}

func (m *Mongo) OrdersByChatID(ctx context.Context, chatID int64, limit int64) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := m.db.Collection("orders").Find(ctx, bson.M{"chatId": chatID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (m *Mongo) FindOrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order models.Order
	err := m.db.Collection("orders").FindOne(ctx, bson.M{"orderNumber": number}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
