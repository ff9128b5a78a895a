package service

import (
	"Forum/dao"
	"Forum/models"
	"Forum/pkg/log"
	"Forum/pkg/response"
	"Forum/pkg/socket"
	"Forum/types"
	"context"
	"time"

	"go.uber.org/zap"
)

var _ ICommentService = (*CommentService)(nil)

type ICommentService interface {
	List(ctx context.Context, topicID uint64, page, limit int) (*types.CommentPage, error)
	Create(ctx context.Context, topicID, authorID uint64, text string, file *types.UploadFile) (*types.CommentItem, error)
}

type CommentService struct {
	TopicDAO    *dao.Topic
	CommentDAO  *dao.Comment
	Attachments *AttachmentService
	Broadcaster Broadcaster
	Sanitizer   *Sanitizer
}

func (s *CommentService) List(ctx context.Context, topicID uint64, page, limit int) (*types.CommentPage, error) {
	if limit < 1 {
		limit = types.DefaultLimit
	}
	page = types.ClampPage(page, limit)

	exist, err := s.TopicDAO.IsExist(ctx, "id_topico = ?", topicID)
	if err != nil {
		return nil, response.Fail(err, "Erro ao buscar comentários")
	}
	if !exist {
		return nil, ErrTopicNotFound
	}

	comments, count, err := s.CommentDAO.ListByTopic(ctx, topicID, (page-1)*limit, limit)
	if err != nil {
		return nil, response.Fail(err, "Erro ao buscar comentários")
	}

	items := make([]*types.CommentItem, 0, len(comments))
	for _, c := range comments {
		items = append(items, toCommentItem(c))
	}
	return &types.CommentPage{
		Items:      items,
		Count:      count,
		Page:       page,
		Limit:      limit,
		TotalPages: response.TotalPages(count, limit),
	}, nil
}

// Create 附件移动成功后才写库，写库失败会删除已移动的附件
func (s *CommentService) Create(ctx context.Context, topicID, authorID uint64, text string, file *types.UploadFile) (*types.CommentItem, error) {
	topic, err := s.TopicDAO.GetWithCategory(ctx, topicID)
	if err != nil {
		return nil, notFound(err, ErrTopicNotFound, "Erro ao criar comentário")
	}

	text = s.Sanitizer.Text(text)
	if text == "" && file == nil {
		return nil, ErrCommentEmpty
	}

	comment := &models.Comment{
		TopicID:   topicID,
		UserID:    authorID,
		CreatedAt: time.Now(),
	}
	if text != "" {
		comment.Text = &text
	}

	if file != nil {
		stored, err := s.Attachments.Store(ctx, topic, authorID, file)
		if err != nil {
			return nil, err
		}
		comment.AttachmentURL = &stored.URL
		comment.AttachmentName = &stored.Name
		comment.AttachmentKind = &stored.Kind
	}

	if err := s.CommentDAO.Create(ctx, comment); err != nil {
		if comment.AttachmentURL != nil {
			s.Attachments.Remove(ctx, *comment.AttachmentURL)
		}
		return nil, response.Fail(err, "Erro ao criar comentário")
	}

	item := toCommentItem(comment)
	if full, err := s.CommentDAO.GetWithUser(ctx, comment.ID); err == nil {
		item = toCommentItem(full)
	} else {
		log.L.Warn("reload comment error", zap.Uint64("comment_id", comment.ID), zap.Error(err))
	}

	s.Broadcaster.ToRoom(socket.TopicRoom(topicID), types.EventNewComment, item)
	return item, nil
}
