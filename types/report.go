package types

import "time"

const (
	ReportStatusPending  = "pendentes"
	ReportStatusResolved = "resolvidas"
)

// ReportQuery estado 为空时返回全部
type ReportQuery struct {
	PageQuery
	Status string `form:"estado"`
}

// Resolved 将 estado 映射为过滤条件
func (q ReportQuery) Resolved() *bool {
	var v bool
	switch q.Status {
	case ReportStatusPending:
		v = false
	case ReportStatusResolved:
		v = true
	default:
		return nil
	}
	return &v
}

type ReportUri struct {
	ID uint64 `uri:"id" binding:"required,min=1"`
}

type ResolveReportRequest struct {
	Action string `json:"acao_tomada" form:"acao_tomada"`
}

type HideCommentRequest struct {
	CommentID uint64 `json:"id" form:"id"`
}

type ReportedComment struct {
	ID            uint64       `json:"id_comentario"`
	TopicID       uint64       `json:"id_topico"`
	Text          *string      `json:"texto"`
	AttachmentURL *string      `json:"anexo_url"`
	Reports       int64        `json:"denuncias"`
	Hidden        bool         `json:"oculto"`
	CreatedAt     time.Time    `json:"data_criacao"`
	User          *UserSummary `json:"utilizador"`
}

type ReportItem struct {
	ID         uint64           `json:"id_denuncia"`
	CommentID  uint64           `json:"id_comentario"`
	TopicID    uint64           `json:"id_topico"`
	UserID     uint64           `json:"id_utilizador"`
	Reason     *string          `json:"motivo"`
	CreatedAt  time.Time        `json:"data_denuncia"`
	Resolved   bool             `json:"resolvida"`
	Action     *string          `json:"acao_tomada"`
	ResolvedAt *time.Time       `json:"data_resolucao"`
	ResolvedBy *uint64          `json:"resolvida_por"`
	Reporter   *UserSummary     `json:"denunciante"`
	Comment    *ReportedComment `json:"comentario"`
}

type ReportPage struct {
	Items []*ReportItem
	Count int64
	Page  int
	Limit int
}

type HideCommentResult struct {
	CommentID uint64 `json:"id_comentario"`
	Resolved  int64  `json:"denuncias_resolvidas"`
}

type CommentHiddenEvent struct {
	CommentID uint64 `json:"id_comentario"`
	TopicID   uint64 `json:"id_topico"`
}
