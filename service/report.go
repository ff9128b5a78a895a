package service

import (
	"Forum/dao"
	"Forum/models"
	"Forum/pkg/response"
	"Forum/pkg/socket"
	"Forum/types"
	"context"
	"time"

	"gorm.io/gorm"
)

var _ IReportService = (*ReportService)(nil)

type IReportService interface {
	List(ctx context.Context, page, limit int, resolved *bool) (*types.ReportPage, error)
	Resolve(ctx context.Context, reportID, adminID uint64, action string) (*types.ReportItem, error)
	HideComment(ctx context.Context, commentID, adminID uint64) (*types.HideCommentResult, error)
}

// ReportService 管理员处理评论举报
type ReportService struct {
	CommentDAO  *dao.Comment
	ReportDAO   *dao.CommentReport
	Broadcaster Broadcaster
	Sanitizer   *Sanitizer
}

func (s *ReportService) List(ctx context.Context, page, limit int, resolved *bool) (*types.ReportPage, error) {
	if limit < 1 {
		limit = types.DefaultLimit
	}
	page = types.ClampPage(page, limit)

	reports, count, err := s.ReportDAO.List(ctx, resolved, (page-1)*limit, limit)
	if err != nil {
		return nil, response.Fail(err, "Erro ao buscar denúncias de comentários")
	}

	items := make([]*types.ReportItem, 0, len(reports))
	for _, r := range reports {
		items = append(items, toReportItem(r))
	}
	return &types.ReportPage{Items: items, Count: count, Page: page, Limit: limit}, nil
}

// Resolve 已解决的举报不能再次处理
func (s *ReportService) Resolve(ctx context.Context, reportID, adminID uint64, action string) (*types.ReportItem, error) {
	action = s.Sanitizer.Text(action)
	if action == "" {
		return nil, ErrReportActionRequired
	}

	report, err := s.ReportDAO.FindById(ctx, reportID)
	if err != nil {
		return nil, notFound(err, ErrReportNotFound, "Erro ao resolver denúncia de comentário")
	}
	if report.Resolved {
		return nil, ErrReportResolved
	}

	now := time.Now()
	ok, err := s.ReportDAO.Resolve(ctx, reportID, adminID, action, now)
	if err != nil {
		return nil, response.Fail(err, "Erro ao resolver denúncia de comentário")
	}
	if !ok {
		// 并发处理时另一请求已先完成
		return nil, ErrReportResolved
	}

	report.Resolved = true
	report.Action = &action
	report.ResolvedAt = &now
	report.ResolvedBy = &adminID
	return toReportItem(report), nil
}

// HideComment 隐藏评论并解决其全部未处理举报，同时通知话题房间
func (s *ReportService) HideComment(ctx context.Context, commentID, adminID uint64) (*types.HideCommentResult, error) {
	if commentID == 0 {
		return nil, ErrCommentIDRequired
	}
	comment, err := s.CommentDAO.FindById(ctx, commentID)
	if err != nil {
		return nil, notFound(err, ErrCommentNotFound, "Erro ao ocultar comentário")
	}

	var resolved int64
	err = s.CommentDAO.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.CommentDAO.Hide(tx, commentID); err != nil {
			return err
		}
		n, err := s.ReportDAO.ResolveByComment(tx, commentID, adminID, models.ActionHidden, time.Now())
		resolved = n
		return err
	})
	if err != nil {
		return nil, response.Fail(err, "Erro ao ocultar comentário")
	}

	s.Broadcaster.ToRoom(socket.TopicRoom(comment.TopicID), types.EventCommentHidden, &types.CommentHiddenEvent{
		CommentID: commentID,
		TopicID:   comment.TopicID,
	})
	return &types.HideCommentResult{CommentID: commentID, Resolved: resolved}, nil
}

// 举报人或评论已删除时给出占位信息
var (
	removedReporter = &types.UserSummary{Name: "Utilizador removido", Email: "N/A"}
	unknownAuthor   = &types.UserSummary{Name: "Utilizador desconhecido"}
	removedComment  = "Comentário removido ou indisponível"
)

func toReportItem(r *models.CommentReport) *types.ReportItem {
	item := &types.ReportItem{
		ID:         r.ID,
		CommentID:  r.CommentID,
		TopicID:    r.TopicID,
		UserID:     r.UserID,
		Reason:     r.Reason,
		CreatedAt:  r.CreatedAt,
		Resolved:   r.Resolved,
		Action:     r.Action,
		ResolvedAt: r.ResolvedAt,
		ResolvedBy: r.ResolvedBy,
		Reporter:   toUserSummary(r.Reporter),
	}
	if item.Reporter == nil {
		item.Reporter = removedReporter
	}

	if c := r.Comment; c != nil {
		item.Comment = &types.ReportedComment{
			ID:            c.ID,
			TopicID:       c.TopicID,
			Text:          c.Text,
			AttachmentURL: c.AttachmentURL,
			Reports:       c.Reports,
			Hidden:        c.Hidden,
			CreatedAt:     c.CreatedAt,
			User:          toUserSummary(c.User),
		}
		if item.Comment.User == nil {
			item.Comment.User = unknownAuthor
		}
	} else {
		text := removedComment
		item.Comment = &types.ReportedComment{
			ID:        r.CommentID,
			TopicID:   r.TopicID,
			Text:      &text,
			CreatedAt: r.CreatedAt,
			User:      unknownAuthor,
		}
	}
	return item
}
