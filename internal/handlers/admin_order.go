package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restobot/internal/models"
)

func GetAdminOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			if !models.KnownStatus(status) {
				respondWithError(c, http.StatusBadRequest, route, "unknown status")
				return
			}
			filter["status"] = status
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("orders").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("orders").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0, limit)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":  orders,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// UpdateOrderStatus advances an order's status. Transitions are monotonic,
// history is append-only, and terminal orders cannot move again.
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/orders/:number/status"
		defer handlePanic(c, route)

		number := strings.ToUpper(strings.TrimSpace(c.Param("number")))
		if number == "" {
			respondWithError(c, http.StatusBadRequest, route, "invalid order number")
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if !models.KnownStatus(req.Status) {
			respondWithError(c, http.StatusBadRequest, route, "unknown status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, bson.M{"orderNumber": number}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !models.CanAdvanceStatus(order.Status, req.Status) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "invalid status transition",
				"from":  order.Status,
				"to":    req.Status,
			})
			return
		}

		now := time.Now()
		update := bson.M{
			"$set": bson.M{
				"status":    req.Status,
				"updatedAt": now,
			},
			"$push": bson.M{
				"statusHistory": models.StatusEntry{
					Status:    req.Status,
					Timestamp: now,
					Note:      strings.TrimSpace(req.Note),
				},
			},
		}
		if req.Status == models.StatusDelivered {
			update["$set"].(bson.M)["actualDelivery"] = now
		}

		_, err = db.Collection("orders").UpdateOne(ctx, bson.M{"orderNumber": number}, update)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orderNumber": number,
			"status":      req.Status,
		})
	}
}

// GetDailyStats aggregates the current day's non-cancelled orders.
func GetDailyStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/stats/daily"
		defer handlePanic(c, route)

		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		pipeline := mongo.Pipeline{
			{{Key: "$match", Value: bson.M{
				"createdAt": bson.M{"$gte": startOfDay, "$lt": endOfDay},
				"status":    bson.M{"$ne": models.StatusCancelled},
			}}},
			{{Key: "$group", Value: bson.M{
				"_id":           nil,
				"totalOrders":   bson.M{"$sum": 1},
				"totalRevenue":  bson.M{"$sum": "$totalAmount"},
				"avgOrderValue": bson.M{"$avg": "$totalAmount"},
				"deliveredOrders": bson.M{"$sum": bson.M{
					"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.StatusDelivered}}, 1, 0},
				}},
			}}},
		}

		cursor, err := db.Collection("orders").Aggregate(ctx, pipeline)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var results []bson.M
		if err := cursor.All(ctx, &results); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if len(results) == 0 {
			c.JSON(http.StatusOK, gin.H{
				"totalOrders":     0,
				"totalRevenue":    0,
				"avgOrderValue":   0,
				"deliveredOrders": 0,
			})
			return
		}

		delete(results[0], "_id")
		c.JSON(http.StatusOK, results[0])
	}
}

func GetAdminUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/users/:chatId"
		defer handlePanic(c, route)

		chatID, err := parseChatID(c.Param("chatId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid chat id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"chatId": chatID}).Decode(&user); err != nil {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
