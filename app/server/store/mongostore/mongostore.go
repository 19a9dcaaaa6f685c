// Package mongostore persists users and announcements in MongoDB. Record ids
// are ObjectID hex strings.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionUsers         = "users"
	CollectionAnnouncements = "announcements"
)

// EnsureIndexes 创建用户名唯一索引以及列表排序索引，重复执行没有副作用
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	if _, err := db.Collection(CollectionAnnouncements).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
	}); err != nil {
		return fmt.Errorf("create announcements index: %w", err)
	}

	return nil
}

// now 与 MongoDB 的毫秒精度保持一致，保证返回值与读回的值相同
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
