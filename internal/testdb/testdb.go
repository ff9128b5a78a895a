// Package testdb 为测试提供基于 sqlite 内存库的 gorm 连接和种子数据
package testdb

import (
	"fmt"
	"testing"
	"time"

	"Forum/models"
	"Forum/pkg/database"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New 每个测试一个独立的内存库，已完成迁移
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func Category(t testing.TB, db *gorm.DB, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

func User(t testing.TB, db *gorm.DB, name string, role int) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: uuid.NewString() + "@forum.test", Role: role}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func Topic(t testing.TB, db *gorm.DB, categoryID, creatorID uint64, title string, createdAt time.Time) *models.Topic {
	t.Helper()
	topic := &models.Topic{
		CategoryID: categoryID,
		Title:      title,
		CreatedBy:  creatorID,
		CreatedAt:  createdAt,
		Active:     true,
	}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("seed topic: %v", err)
	}
	return topic
}

func Comment(t testing.TB, db *gorm.DB, topicID, userID uint64, text string, createdAt time.Time) *models.Comment {
	t.Helper()
	c := &models.Comment{
		TopicID:   topicID,
		UserID:    userID,
		Text:      &text,
		CreatedAt: createdAt,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return c
}
