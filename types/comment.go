package types

import (
	"math"
	"strconv"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// CommentUri /topicos-categoria/:id/comentarios/:id_comentario
type CommentUri struct {
	TopicID   uint64 `uri:"id" binding:"required,min=1"`
	CommentID uint64 `uri:"id_comentario" binding:"required,min=1"`
}

// PageQuery 非法值回退到默认值
type PageQuery struct {
	Page  string `form:"page"`
	Limit string `form:"limit"`
}

func (q PageQuery) Values() (page, limit int) {
	page = parsePositive(q.Page, DefaultPage)
	limit = parsePositive(q.Limit, DefaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return ClampPage(page, limit), limit
}

// ClampPage 保证 (page-1)*limit 不溢出
func ClampPage(page, limit int) int {
	if page < 1 {
		return DefaultPage
	}
	if limit > 0 && page > math.MaxInt/limit {
		return math.MaxInt / limit
	}
	return page
}

func parsePositive(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}

type RateCommentRequest struct {
	Kind string `json:"tipo" form:"tipo"`
}

type ReportCommentRequest struct {
	Reason *string `json:"motivo" form:"motivo"`
}

type CommentItem struct {
	ID             uint64       `json:"id_comentario"`
	TopicID        uint64       `json:"id_topico"`
	UserID         uint64       `json:"id_utilizador"`
	Text           *string      `json:"texto"`
	AttachmentURL  *string      `json:"anexo_url"`
	AttachmentName *string      `json:"anexo_nome"`
	AttachmentKind *string      `json:"tipo_anexo"`
	Likes          int64        `json:"likes"`
	Dislikes       int64        `json:"dislikes"`
	Reports        int64        `json:"denuncias"`
	CreatedAt      time.Time    `json:"data_criacao"`
	User           *UserSummary `json:"utilizador"`
}

type CommentPage struct {
	Items      []*CommentItem
	Count      int64
	Page       int
	Limit      int
	TotalPages int64
}

type RatingResult struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

type ReportResult struct {
	Reports int64 `json:"denuncias"`
}
