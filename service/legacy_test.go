package service

import (
	"context"
	"testing"
	"time"

	"Forum/internal/testdb"
	"Forum/models"
)

func TestLegacyImport_NoTable(t *testing.T) {
	e := newEnv(t)
	n, err := e.legacy.Import(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("want 0, nil; got %d, %v", n, err)
	}
}

func TestLegacyImport_CopiesOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cat := testdb.Category(t, e.db, "Geral")
	user := testdb.User(t, e.db, "Ana", 3)
	topic := testdb.Topic(t, e.db, cat.ID, user.ID, "Antigo", fixedNow)

	if err := e.db.AutoMigrate(&models.LegacyComment{}); err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	rows := []*models.LegacyComment{
		{TopicID: topic.ID, UserID: user.ID, Comment: strPtr("primeiro"), Likes: 2, CreatedAt: fixedNow.Add(-2 * time.Hour)},
		{TopicID: topic.ID, UserID: user.ID, Comment: strPtr(""), CreatedAt: fixedNow.Add(-time.Hour)},
		{TopicID: topic.ID, UserID: user.ID, Comment: strPtr("segundo"), Dislikes: -3, CreatedAt: fixedNow},
	}
	if err := e.db.Create(&rows).Error; err != nil {
		t.Fatalf("seed legacy rows: %v", err)
	}

	n, err := e.legacy.Import(ctx)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d, want 2", n)
	}

	var comments []models.Comment
	e.db.Order("data_criacao ASC").Find(&comments)
	if len(comments) != 2 || *comments[0].Text != "primeiro" || comments[0].Likes != 2 || comments[1].Dislikes != 0 {
		t.Fatalf("unexpected comments %+v", comments)
	}

	n, err = e.legacy.Import(ctx)
	if err != nil || n != 0 {
		t.Fatalf("second run must skip everything, got %d, %v", n, err)
	}
}

func TestLegacyImport_LookupErrorAborts(t *testing.T) {
	e := newEnv(t)
	if err := e.db.AutoMigrate(&models.LegacyComment{}); err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	row := &models.LegacyComment{TopicID: 1, UserID: 1, Comment: strPtr("perdido"), CreatedAt: fixedNow}
	if err := e.db.Create(row).Error; err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}
	if err := e.db.Migrator().DropTable(&models.Comment{}); err != nil {
		t.Fatalf("drop comments: %v", err)
	}

	n, err := e.legacy.Import(context.Background())
	if err == nil {
		t.Fatal("a failed duplicate lookup must abort the import")
	}
	if n != 0 {
		t.Fatalf("imported %d, want 0", n)
	}
}
