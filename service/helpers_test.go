package service

import (
	"context"
	"errors"
	"path"
	"sync"
	"testing"
	"time"

	"Forum/config"
	"Forum/dao"
	"Forum/dao/cache"
	"Forum/internal/testdb"
	"Forum/pkg/socket"

	"gorm.io/gorm"
)

type recordedEvent struct {
	Room    string
	Event   string
	Payload any
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *fakeBroadcaster) ToRoom(room, event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{Room: room, Event: event, Payload: payload})
}

func (b *fakeBroadcaster) ToAll(event string, payload any) {
	b.ToRoom(socket.Broadcast, event, payload)
}

func (b *fakeBroadcaster) Events() []recordedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]recordedEvent(nil), b.events...)
}

func (b *fakeBroadcaster) Last(t *testing.T) recordedEvent {
	t.Helper()
	events := b.Events()
	if len(events) == 0 {
		t.Fatal("no event broadcast")
	}
	return events[len(events)-1]
}

type fakeStorage struct {
	mu      sync.Mutex
	moveErr error
	moved   []string
	removed []string
}

func (s *fakeStorage) Move(_ context.Context, _, key, _ string) (string, error) {
	if s.moveErr != nil {
		return "", s.moveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moved = append(s.moved, key)
	return path.Join(UploadURLPrefix, key), nil
}

func (s *fakeStorage) Remove(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, url)
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	payloads []any
}

func (n *fakeNotifier) PublishReport(_ context.Context, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payloads = append(n.payloads, payload)
}

var errDiskFull = errors.New("disk full")

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type env struct {
	db          *gorm.DB
	broadcaster *fakeBroadcaster
	storage     *fakeStorage
	notifier    *fakeNotifier
	attachments *AttachmentService
	topics      *TopicService
	comments    *CommentService
	moderation  *ModerationService
	reports     *ReportService
	legacy      *LegacyImportService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testdb.New(t)

	e := &env{
		db:          db,
		broadcaster: &fakeBroadcaster{},
		storage:     &fakeStorage{},
		notifier:    &fakeNotifier{},
	}
	e.attachments = NewAttachmentService(&config.Upload{MaxSize: 10 << 20}, e.storage)
	e.attachments.now = func() time.Time { return fixedNow }

	sanitizer := NewSanitizer()
	topicDAO := dao.NewTopic(db)
	commentDAO := dao.NewComment(db)

	e.topics = &TopicService{
		TopicDAO:    topicDAO,
		CategoryDAO: dao.NewCategory(db),
		UserDAO:     dao.NewUser(db),
		CommentDAO:  commentDAO,
		TopicCache:  cache.NewTopicStorage(nil),
		Attachments: e.attachments,
		Broadcaster: e.broadcaster,
		Sanitizer:   sanitizer,
	}
	e.comments = &CommentService{
		TopicDAO:    topicDAO,
		CommentDAO:  commentDAO,
		Attachments: e.attachments,
		Broadcaster: e.broadcaster,
		Sanitizer:   sanitizer,
	}
	e.moderation = &ModerationService{
		Config:      &config.Moderation{},
		CommentDAO:  commentDAO,
		RatingDAO:   dao.NewCommentRating(db),
		ReportDAO:   dao.NewCommentReport(db),
		Broadcaster: e.broadcaster,
		Notifier:    e.notifier,
		Sanitizer:   sanitizer,
	}
	e.reports = &ReportService{
		CommentDAO:  commentDAO,
		ReportDAO:   e.moderation.ReportDAO,
		Broadcaster: e.broadcaster,
		Sanitizer:   sanitizer,
	}
	e.legacy = &LegacyImportService{
		LegacyDAO:  dao.NewLegacyComment(db),
		CommentDAO: commentDAO,
	}
	return e
}
