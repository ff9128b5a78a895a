package service

import (
	"Forum/dao"
	"Forum/dao/cache"
	"Forum/models"
	"Forum/pkg/log"
	"Forum/pkg/response"
	"Forum/pkg/socket"
	"Forum/types"
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

var _ ITopicService = (*TopicService)(nil)

// Actor 发起操作的用户
type Actor struct {
	UserID uint64
	Role   int
}

// CanManage 创建者本人或管理员；版主只能管理自己创建的话题
func (a Actor) CanManage(topic *models.Topic) bool {
	return topic.CreatedBy == a.UserID || a.Role == models.RoleAdmin
}

type ITopicService interface {
	List(ctx context.Context) ([]*types.TopicItem, error)
	ListPlain(ctx context.Context) ([]*types.TopicItem, error)
	Get(ctx context.Context, topicID uint64) (*types.TopicItem, error)
	ListByCategory(ctx context.Context, categoryID uint64) ([]*types.TopicItem, error)
	Create(ctx context.Context, req *types.CreateTopicRequest, creatorID uint64) (*types.TopicItem, error)
	Update(ctx context.Context, topicID uint64, req *types.UpdateTopicRequest, actor Actor) (*types.TopicItem, error)
	Delete(ctx context.Context, topicID uint64, actor Actor) error
}

type TopicService struct {
	TopicDAO    *dao.Topic
	CategoryDAO *dao.Category
	UserDAO     *dao.User
	CommentDAO  *dao.Comment
	TopicCache  *cache.TopicStorage
	Attachments *AttachmentService
	Broadcaster Broadcaster
	Sanitizer   *Sanitizer
}

func (s *TopicService) List(ctx context.Context) ([]*types.TopicItem, error) {
	topics, err := s.TopicDAO.List(ctx)
	if err != nil {
		return nil, response.Fail(err, "Erro ao buscar tópicos")
	}
	return toTopicItems(topics), nil
}

func (s *TopicService) ListPlain(ctx context.Context) ([]*types.TopicItem, error) {
	topics, err := s.TopicDAO.ListPlain(ctx)
	if err != nil {
		return nil, response.Fail(err, "Erro ao buscar tópicos")
	}
	return toTopicItems(topics), nil
}

func (s *TopicService) Get(ctx context.Context, topicID uint64) (*types.TopicItem, error) {
	if item := s.TopicCache.Get(ctx, topicID); item != nil {
		return item, nil
	}

	topic, err := s.TopicDAO.GetDetail(ctx, topicID)
	if err != nil {
		return nil, notFound(err, ErrTopicNotFound, "Erro ao buscar tópico")
	}

	item := toTopicItem(topic)
	s.TopicCache.Set(ctx, item)
	return item, nil
}

func (s *TopicService) ListByCategory(ctx context.Context, categoryID uint64) ([]*types.TopicItem, error) {
	exist, err := s.CategoryDAO.IsExist(ctx, "id_categoria = ?", categoryID)
	if err != nil {
		return nil, response.Fail(err, "Erro ao buscar tópicos da categoria")
	}
	if !exist {
		return nil, ErrCategoryNotFound
	}

	topics, err := s.TopicDAO.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, response.Fail(err, "Erro ao buscar tópicos da categoria")
	}
	return toTopicItems(topics), nil
}

func (s *TopicService) Create(ctx context.Context, req *types.CreateTopicRequest, creatorID uint64) (*types.TopicItem, error) {
	title := s.Sanitizer.Text(req.Title)
	if req.CategoryID == 0 || title == "" {
		return nil, ErrTopicRequired
	}

	if _, err := s.CategoryDAO.FindById(ctx, req.CategoryID); err != nil {
		return nil, notFound(err, ErrCategoryNotFound, "Erro ao criar tópico")
	}
	if _, err := s.UserDAO.FindById(ctx, creatorID); err != nil {
		return nil, notFound(err, ErrUserNotFound, "Erro ao criar tópico")
	}

	topic := &models.Topic{
		CategoryID:  req.CategoryID,
		AreaID:      req.AreaID,
		Title:       title,
		Description: s.Sanitizer.Optional(req.Description),
		CreatedBy:   creatorID,
		CreatedAt:   time.Now(),
		Active:      true,
	}
	if err := s.TopicDAO.Create(ctx, topic); err != nil {
		return nil, response.Fail(err, "Erro ao criar tópico")
	}

	s.Broadcaster.ToAll(types.EventTopicCreated, &types.TopicCreatedEvent{
		TopicID:    topic.ID,
		Title:      topic.Title,
		CategoryID: topic.CategoryID,
	})

	detail, err := s.TopicDAO.GetDetail(ctx, topic.ID)
	if err != nil {
		log.L.Warn("reload topic error", zap.Uint64("topic_id", topic.ID), zap.Error(err))
		return toTopicItem(topic), nil
	}
	return toTopicItem(detail), nil
}

func (s *TopicService) Update(ctx context.Context, topicID uint64, req *types.UpdateTopicRequest, actor Actor) (*types.TopicItem, error) {
	topic, err := s.TopicDAO.FindById(ctx, topicID)
	if err != nil {
		return nil, notFound(err, ErrTopicNotFound, "Erro ao atualizar tópico")
	}
	if !actor.CanManage(topic) {
		return nil, ErrTopicUpdateForbidden
	}

	fields := make(map[string]any)
	if title := s.Sanitizer.Optional(req.Title); title != nil {
		fields["titulo"] = *title
		topic.Title = *title
	}
	if desc := s.Sanitizer.Optional(req.Description); desc != nil {
		fields["descricao"] = *desc
		topic.Description = desc
	}
	if err := s.TopicDAO.Update(ctx, topicID, fields); err != nil {
		return nil, response.Fail(err, "Erro ao atualizar tópico")
	}
	s.TopicCache.Del(ctx, topicID)

	s.Broadcaster.ToRoom(socket.TopicRoom(topicID), types.EventTopicUpdated, &types.TopicUpdatedEvent{
		TopicID:     topic.ID,
		Title:       topic.Title,
		Description: topic.Description,
	})

	return toTopicItem(topic), nil
}

// Delete 先提交数据库删除再清理附件，删除失败不会留下指向空文件的评论
func (s *TopicService) Delete(ctx context.Context, topicID uint64, actor Actor) error {
	topic, err := s.TopicDAO.FindById(ctx, topicID)
	if err != nil {
		return notFound(err, ErrTopicNotFound, "Erro ao excluir tópico")
	}
	if !actor.CanManage(topic) {
		return ErrTopicDeleteForbidden
	}

	urls, err := s.CommentDAO.AttachmentURLs(ctx, topicID)
	if err != nil {
		return response.Fail(err, "Erro ao excluir tópico")
	}
	if err := s.TopicDAO.DeleteCascade(ctx, topicID); err != nil {
		return response.Fail(err, "Erro ao excluir tópico")
	}
	s.TopicCache.Del(ctx, topicID)

	for _, url := range urls {
		s.Attachments.Remove(ctx, strings.TrimSpace(url))
	}

	s.Broadcaster.ToAll(types.EventTopicDeleted, &types.TopicDeletedEvent{TopicID: topicID})
	return nil
}
