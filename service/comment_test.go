package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"testing"
	"time"

	"Forum/internal/testdb"
	"Forum/models"
	"Forum/pkg/response"
	"Forum/pkg/socket"
	"Forum/types"
)

type commentFixture struct {
	*env
	topic *models.Topic
	user  *models.User
}

func newCommentFixture(t *testing.T) *commentFixture {
	e := newEnv(t)
	cat := testdb.Category(t, e.db, "Programação")
	user := testdb.User(t, e.db, "Ana", 3)
	topic := testdb.Topic(t, e.db, cat.ID, user.ID, "Dúvidas Gerais", time.Now())
	return &commentFixture{env: e, topic: topic, user: user}
}

func (f *commentFixture) commentCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	f.db.Model(&models.Comment{}).Where("id_topico = ?", f.topic.ID).Count(&n)
	return n
}

func pdfUpload(t *testing.T) *types.UploadFile {
	t.Helper()
	return &types.UploadFile{
		Name:     "enunciado.pdf",
		MimeType: "application/pdf",
		Size:     1024,
		TempPath: writeTemp(t, []byte("%PDF-1.4")),
	}
}

func TestCreateComment_TextOnly(t *testing.T) {
	f := newCommentFixture(t)

	item, err := f.comments.Create(context.Background(), f.topic.ID, f.user.ID, "  <b>Olá</b> a todos ", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Text == nil || *item.Text != "Olá a todos" {
		t.Fatalf("text = %v", item.Text)
	}
	if item.Likes != 0 || item.Dislikes != 0 || item.Reports != 0 {
		t.Fatalf("counters must start at zero: %+v", item)
	}
	if item.AttachmentURL != nil || item.AttachmentKind != nil {
		t.Fatal("no attachment expected")
	}
	if item.User == nil || item.User.Name != "Ana" {
		t.Fatalf("author summary = %+v", item.User)
	}

	ev := f.broadcaster.Last(t)
	if ev.Room != socket.TopicRoom(f.topic.ID) || ev.Event != types.EventNewComment {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.Payload.(*types.CommentItem).ID != item.ID {
		t.Fatal("broadcast payload is not the created comment")
	}
}

func TestCreateComment_RequiresTextOrAttachment(t *testing.T) {
	f := newCommentFixture(t)
	for _, text := range []string{"", "   ", "<p></p>", "&lt;img src=x onerror=alert(1)&gt;"} {
		_, err := f.comments.Create(context.Background(), f.topic.ID, f.user.ID, text, nil)
		if !errors.Is(err, ErrCommentEmpty) {
			t.Fatalf("text %q: want ErrCommentEmpty, got %v", text, err)
		}
	}
	if n := f.commentCount(t); n != 0 {
		t.Fatalf("comments = %d, want 0", n)
	}
	if len(f.broadcaster.Events()) != 0 {
		t.Fatal("no event expected")
	}
}

func TestCreateComment_EncodedMarkupIsNotRevived(t *testing.T) {
	f := newCommentFixture(t)

	item, err := f.comments.Create(context.Background(), f.topic.ID, f.user.ID, "&lt;img src=x onerror=alert(1)&gt;veja isto", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var stored models.Comment
	if err := f.db.First(&stored, item.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.Text == nil || *stored.Text != "veja isto" {
		t.Fatalf("stored texto = %v", stored.Text)
	}
}

func TestCreateComment_WithAttachment(t *testing.T) {
	f := newCommentFixture(t)

	item, err := f.comments.Create(context.Background(), f.topic.ID, f.user.ID, "", pdfUpload(t))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	wantURL := fmt.Sprintf("uploads/chat/programacao/duvidas_gerais/%d_%d.pdf", fixedNow.UnixMilli(), f.user.ID)
	if item.AttachmentURL == nil || *item.AttachmentURL != wantURL {
		t.Fatalf("url = %v, want %s", item.AttachmentURL, wantURL)
	}
	if *item.AttachmentName != "enunciado.pdf" || *item.AttachmentKind != models.AttachmentFile {
		t.Fatalf("attachment = %s / %s", *item.AttachmentName, *item.AttachmentKind)
	}
	if item.Text != nil {
		t.Fatal("text must stay null")
	}
}

func TestCreateComment_StorageFailureLeavesNoRow(t *testing.T) {
	f := newCommentFixture(t)
	f.storage.moveErr = errDiskFull

	_, err := f.comments.Create(context.Background(), f.topic.ID, f.user.ID, "com anexo", pdfUpload(t))
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("want ErrStorage, got %v", err)
	}
	var be *response.BizError
	if !errors.As(err, &be) || be.Code != http.StatusInternalServerError {
		t.Fatalf("storage errors are 500, got %v", err)
	}
	if n := f.commentCount(t); n != 0 {
		t.Fatalf("comments = %d, want 0", n)
	}
	if len(f.broadcaster.Events()) != 0 {
		t.Fatal("no event expected")
	}
}

func TestCreateComment_DatabaseFailureRemovesFile(t *testing.T) {
	f := newCommentFixture(t)
	if err := f.db.Migrator().DropTable(&models.Comment{}); err != nil {
		t.Fatalf("drop: %v", err)
	}

	_, err := f.comments.Create(context.Background(), f.topic.ID, f.user.ID, "", pdfUpload(t))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(f.storage.moved) != 1 || len(f.storage.removed) != 1 {
		t.Fatalf("moved %v removed %v", f.storage.moved, f.storage.removed)
	}
}

func TestCreateComment_RejectsBadAttachment(t *testing.T) {
	f := newCommentFixture(t)
	file := pdfUpload(t)
	file.MimeType = "application/x-msdownload"

	_, err := f.comments.Create(context.Background(), f.topic.ID, f.user.ID, "x", file)
	if !errors.Is(err, ErrAttachmentType) {
		t.Fatalf("want ErrAttachmentType, got %v", err)
	}
	if len(f.storage.moved) != 0 {
		t.Fatal("rejected file must not be moved")
	}
}

func TestCreateComment_TopicNotFound(t *testing.T) {
	f := newCommentFixture(t)
	_, err := f.comments.Create(context.Background(), 999, f.user.ID, "oi", nil)
	if !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("want ErrTopicNotFound, got %v", err)
	}
}

func TestListComments(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		testdb.Comment(t, f.db, f.topic.ID, f.user.ID, fmt.Sprint(i), base.Add(time.Duration(i)*time.Second))
	}

	page, err := f.comments.List(ctx, f.topic.ID, 3, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Count != 25 || page.TotalPages != 3 || page.Page != 3 || len(page.Items) != 5 {
		t.Fatalf("page = %+v", page)
	}
	if *page.Items[0].Text != "20" {
		t.Fatalf("first item on page 3 = %s", *page.Items[0].Text)
	}

	page, err = f.comments.List(ctx, f.topic.ID, 0, 0)
	if err != nil || page.Page != 1 || page.Limit != 10 || *page.Items[0].Text != "0" {
		t.Fatalf("defaults not applied: %+v %v", page, err)
	}

	page, err = f.comments.List(ctx, f.topic.ID, math.MaxInt, 10)
	if err != nil {
		t.Fatalf("huge page: %v", err)
	}
	if len(page.Items) != 0 || page.Page > math.MaxInt/10 || page.TotalPages != 3 {
		t.Fatalf("huge page must be empty and clamped: page=%d items=%d", page.Page, len(page.Items))
	}

	if _, err := f.comments.List(ctx, 999, 1, 10); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("want ErrTopicNotFound, got %v", err)
	}
}
