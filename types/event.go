package types

const (
	EventNewComment      = "novoComentario"
	EventCommentRated    = "comentarioAvaliado"
	EventCommentReported = "comentarioDenunciado"
	EventCommentHidden   = "comentarioOcultado"
	EventTopicCreated    = "novoTopico"
	EventTopicUpdated    = "topicoAtualizado"
	EventTopicDeleted    = "topicoExcluido"

	// 客户端上行事件
	EventJoinTopic  = "joinTopic"
	EventLeaveTopic = "leaveTopic"
)

type CommentRatedEvent struct {
	CommentID uint64 `json:"id_comentario"`
	Likes     int64  `json:"likes"`
	Dislikes  int64  `json:"dislikes"`
}

type CommentReportedEvent struct {
	CommentID uint64  `json:"id_comentario"`
	TopicID   uint64  `json:"id_topico"`
	Reports   int64   `json:"denuncias"`
	Reason    *string `json:"motivo"`
	// 举报人，仅在告警消息中携带
	ReporterID uint64 `json:"id_utilizador,omitempty"`
}

type TopicCreatedEvent struct {
	TopicID    uint64 `json:"id_topico"`
	Title      string `json:"titulo"`
	CategoryID uint64 `json:"id_categoria"`
}

type TopicUpdatedEvent struct {
	TopicID     uint64  `json:"id_topico"`
	Title       string  `json:"titulo"`
	Description *string `json:"descricao"`
}

type TopicDeletedEvent struct {
	TopicID uint64 `json:"id_topico"`
}
