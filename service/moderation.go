package service

import (
	"Forum/config"
	"Forum/dao"
	"Forum/models"
	"Forum/pkg/response"
	"Forum/pkg/socket"
	"Forum/types"
	"context"
	"time"

	"gorm.io/gorm"
)

var _ IModerationService = (*ModerationService)(nil)

type IModerationService interface {
	Rate(ctx context.Context, topicID, commentID, userID uint64, kind string) (*types.RatingResult, error)
	Report(ctx context.Context, topicID, commentID, userID uint64, reason *string) (*types.ReportResult, error)
}

type ModerationService struct {
	Config      *config.Moderation
	CommentDAO  *dao.Comment
	RatingDAO   *dao.CommentRating
	ReportDAO   *dao.CommentReport
	Broadcaster Broadcaster
	Notifier    ReportNotifier
	Sanitizer   *Sanitizer
}

func (s *ModerationService) uniqueRatings() bool {
	return s.Config != nil && s.Config.UniqueRatings
}

// Rate 计数在事务内原子更新，返回更新后的 likes/dislikes
func (s *ModerationService) Rate(ctx context.Context, topicID, commentID, userID uint64, kind string) (*types.RatingResult, error) {
	column, ok := models.CounterColumn(kind)
	if !ok {
		return nil, ErrInvalidRating
	}

	if _, err := s.CommentDAO.FindInTopic(ctx, topicID, commentID); err != nil {
		return nil, notFound(err, ErrCommentNotFound, "Erro ao avaliar comentário")
	}

	var counters *dao.CommentCounters
	err := s.CommentDAO.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		if s.uniqueRatings() {
			err = s.applyUniqueRating(tx, commentID, userID, kind)
		} else {
			err = s.CommentDAO.IncrCounter(tx, commentID, column, 1)
		}
		if err != nil {
			return err
		}
		counters, err = s.CommentDAO.Counters(tx, commentID)
		return err
	})
	if err != nil {
		return nil, response.Fail(err, "Erro ao avaliar comentário")
	}

	s.Broadcaster.ToRoom(socket.TopicRoom(topicID), types.EventCommentRated, &types.CommentRatedEvent{
		CommentID: commentID,
		Likes:     counters.Likes,
		Dislikes:  counters.Dislikes,
	})

	return &types.RatingResult{Likes: counters.Likes, Dislikes: counters.Dislikes}, nil
}

// applyUniqueRating 同类型再次评价即取消，不同类型则切换
func (s *ModerationService) applyUniqueRating(tx *gorm.DB, commentID, userID uint64, kind string) error {
	existing, err := s.RatingDAO.FindForUpdate(tx, commentID, userID)
	if err != nil {
		return err
	}
	column, _ := models.CounterColumn(kind)

	switch {
	case existing == nil:
		if err := s.RatingDAO.Create(tx, &models.CommentRating{
			CommentID: commentID,
			UserID:    userID,
			Kind:      kind,
			CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		return s.CommentDAO.IncrCounter(tx, commentID, column, 1)

	case existing.Kind == kind:
		if err := s.RatingDAO.Delete(tx, existing.ID); err != nil {
			return err
		}
		return s.CommentDAO.IncrCounter(tx, commentID, column, -1)

	default:
		previous, _ := models.CounterColumn(existing.Kind)
		if err := s.RatingDAO.UpdateKind(tx, existing.ID, kind); err != nil {
			return err
		}
		if previous != "" {
			if err := s.CommentDAO.IncrCounter(tx, commentID, previous, -1); err != nil {
				return err
			}
		}
		return s.CommentDAO.IncrCounter(tx, commentID, column, 1)
	}
}

// Report 记录举报并累加计数，通知 admin_channel
func (s *ModerationService) Report(ctx context.Context, topicID, commentID, userID uint64, reason *string) (*types.ReportResult, error) {
	if _, err := s.CommentDAO.FindInTopic(ctx, topicID, commentID); err != nil {
		return nil, notFound(err, ErrCommentNotFound, "Erro ao denunciar comentário")
	}
	reason = s.Sanitizer.Optional(reason)

	var counters *dao.CommentCounters
	err := s.CommentDAO.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.ReportDAO.Create(tx, &models.CommentReport{
			CommentID: commentID,
			TopicID:   topicID,
			UserID:    userID,
			Reason:    reason,
			CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		if err := s.CommentDAO.IncrCounter(tx, commentID, "denuncias", 1); err != nil {
			return err
		}
		var err error
		counters, err = s.CommentDAO.Counters(tx, commentID)
		return err
	})
	if err != nil {
		return nil, response.Fail(err, "Erro ao denunciar comentário")
	}

	event := types.CommentReportedEvent{
		CommentID: commentID,
		TopicID:   topicID,
		Reports:   counters.Reports,
		Reason:    reason,
	}
	s.Broadcaster.ToRoom(socket.AdminRoom, types.EventCommentReported, &event)

	if s.Notifier != nil {
		alert := event
		alert.ReporterID = userID
		s.Notifier.PublishReport(context.WithoutCancel(ctx), &alert)
	}

	return &types.ReportResult{Reports: counters.Reports}, nil
}
