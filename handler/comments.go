package handler

import (
	"Forum/config"
	"Forum/middleware"
	"Forum/models"
	"Forum/pkg/context"
	"Forum/pkg/response"
	"Forum/service"
	"Forum/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommentsHandler struct {
	Config            *config.Config
	CommentService    service.ICommentService
	ModerationService service.IModerationService
}

func (ch *CommentsHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(ch.Config.Jwt)

	comments := r.Group("/topicos-categoria/:id/comentarios", authorize)
	comments.GET("", context.Wrap(ch.List))
	comments.POST("", context.Wrap(ch.Create))
	comments.POST("/:id_comentario/avaliar", context.Wrap(ch.Rate))
	comments.POST("/:id_comentario/denunciar", context.Wrap(ch.Report))
}

// List 按创建时间升序分页
func (ch *CommentsHandler) List(c *gin.Context) error {
	var uri types.TopicUri
	if err := c.ShouldBindUri(&uri); err != nil {
		return service.ErrTopicNotFound
	}
	var query types.PageQuery
	_ = c.ShouldBindQuery(&query)
	page, limit := query.Values()

	result, err := ch.CommentService.List(c.Request.Context(), uri.ID, page, limit)
	if err != nil {
		return err
	}
	response.Page(c, result.Count, result.Page, result.Limit, result.Items)
	return nil
}

// Create multipart: texto + file (可选)
func (ch *CommentsHandler) Create(c *gin.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var uri types.TopicUri
	if err := c.ShouldBindUri(&uri); err != nil {
		return service.ErrTopicNotFound
	}

	file, cleanup, err := receiveUpload(c, "file")
	if err != nil {
		return err
	}
	defer cleanup()

	item, err := ch.CommentService.Create(c.Request.Context(), uri.ID, a.UserID, c.PostForm("texto"), file)
	if err != nil {
		return err
	}
	response.Created(c, "Comentário criado com sucesso", item)
	return nil
}

func (ch *CommentsHandler) Rate(c *gin.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var uri types.CommentUri
	if err := c.ShouldBindUri(&uri); err != nil {
		return service.ErrCommentNotFound
	}
	var req types.RateCommentRequest
	// 请求体缺失时 tipo 为空，由服务层返回 400
	_ = c.ShouldBind(&req)

	result, err := ch.ModerationService.Rate(c.Request.Context(), uri.TopicID, uri.CommentID, a.UserID, req.Kind)
	if err != nil {
		return err
	}
	msg := "Comentário curtido com sucesso"
	if req.Kind == models.RatingDislike {
		msg = "Comentário descurtido com sucesso"
	}
	response.SuccessMessage(c, msg, result)
	return nil
}

func (ch *CommentsHandler) Report(c *gin.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var uri types.CommentUri
	if err := c.ShouldBindUri(&uri); err != nil {
		return service.ErrCommentNotFound
	}
	var req types.ReportCommentRequest
	_ = c.ShouldBind(&req)

	result, err := ch.ModerationService.Report(c.Request.Context(), uri.TopicID, uri.CommentID, a.UserID, req.Reason)
	if err != nil {
		return err
	}
	response.SuccessMessage(c, "Comentário denunciado com sucesso", result)
	return nil
}

var errUploadFailed = response.NewError(http.StatusBadRequest, "Erro ao receber o ficheiro anexado")
