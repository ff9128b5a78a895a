package service

import (
	"Forum/pkg/response"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var (
	ErrTopicNotFound    = response.NewError(http.StatusNotFound, "Tópico não encontrado")
	ErrCommentNotFound  = response.NewError(http.StatusNotFound, "Comentário não encontrado")
	ErrCategoryNotFound = response.NewError(http.StatusNotFound, "Categoria não encontrada")
	ErrUserNotFound     = response.NewError(http.StatusNotFound, "Utilizador não encontrado")
	ErrReportNotFound   = response.NewError(http.StatusNotFound, "Denúncia não encontrada")

	ErrCommentEmpty  = response.NewError(http.StatusBadRequest, "É necessário fornecer texto ou anexo para o comentário")
	ErrInvalidRating = response.NewError(http.StatusBadRequest, `Tipo de avaliação inválido. Use "like" ou "dislike"`)
	ErrTopicRequired = response.NewError(http.StatusBadRequest, "Categoria e título do tópico são obrigatórios")

	ErrReportResolved       = response.NewError(http.StatusBadRequest, "Esta denúncia já foi resolvida")
	ErrReportActionRequired = response.NewError(http.StatusBadRequest, "A ação tomada é obrigatória")
	ErrCommentIDRequired    = response.NewError(http.StatusBadRequest, "ID do comentário é obrigatório")

	ErrTopicUpdateForbidden = response.NewError(http.StatusForbidden, "Você não tem permissão para atualizar este tópico")
	ErrTopicDeleteForbidden = response.NewError(http.StatusForbidden, "Você não tem permissão para excluir este tópico")

	ErrAttachmentTooLarge = response.NewError(http.StatusBadRequest, "Arquivo muito grande. O tamanho máximo permitido é 10MB.")
	ErrAttachmentType     = response.NewError(http.StatusBadRequest, "Tipo de arquivo não permitido. Apenas imagens, documentos, vídeos e áudios são aceitos.")
	ErrAttachmentInvalid  = response.NewError(http.StatusBadRequest, "Erro ao processar o ficheiro anexado")
	ErrStorage            = response.NewError(http.StatusInternalServerError, "Erro ao guardar o ficheiro anexado")
)

// notFound 将 gorm.ErrRecordNotFound 映射为业务错误，其余错误包装为 500
func notFound(err error, nf *response.BizError, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nf
	}
	return response.Fail(err, msg)
}
