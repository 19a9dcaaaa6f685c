package inits

import (
	"announcement-board/app/server/store/mongostore"
	"context"
	"fmt"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const defaultMongoDatabase = "announcement"

// MongoDatabaseName 从连接字符串的路径部分读取数据库名
func MongoDatabaseName(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("invalid mongodb connection string: %w", err)
	}

	if cs.Database == "" {
		return defaultMongoDatabase, nil
	}

	return cs.Database, nil
}

func Mongo(ctx context.Context, uri string) (*mongo.Client, *mongo.Database, error) {
	dbName, err := MongoDatabaseName(uri)
	if err != nil {
		return nil, nil, err
	}

	// 打开连接
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	// 创建索引
	db := client.Database(dbName)
	if err = mongostore.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to prepare mongodb: %w", err)
	}

	return client, db, nil
}
