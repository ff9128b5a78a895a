package handler

import (
	"Forum/config"
	"Forum/middleware"
	"Forum/models"
	"Forum/pkg/context"
	"Forum/pkg/response"
	"Forum/service"
	"Forum/types"

	"github.com/gin-gonic/gin"
)

// ReportHandler 评论举报的管理端接口，仅管理员可用
type ReportHandler struct {
	Config        *config.Config
	ReportService service.IReportService
}

func (rh *ReportHandler) RegisterRouter(r gin.IRouter) {
	admin := []gin.HandlerFunc{middleware.Auth(rh.Config.Jwt), middleware.Authorize(models.RoleAdmin)}

	reports := r.Group("/denuncias/forum-comentario", admin...)
	reports.GET("", context.Wrap(rh.List))
	reports.POST("/:id/resolver", context.Wrap(rh.Resolve))

	comments := r.Group("/forum-comentario", admin...)
	comments.POST("/ocultar", context.Wrap(rh.Hide))
}

// List ?estado=pendentes|resolvidas&page=&limit=
func (rh *ReportHandler) List(c *gin.Context) error {
	var query types.ReportQuery
	_ = c.ShouldBindQuery(&query)
	page, limit := query.Values()

	result, err := rh.ReportService.List(c.Request.Context(), page, limit, query.Resolved())
	if err != nil {
		return err
	}
	response.Page(c, result.Count, result.Page, result.Limit, result.Items)
	return nil
}

func (rh *ReportHandler) Resolve(c *gin.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var uri types.ReportUri
	if err := c.ShouldBindUri(&uri); err != nil {
		return service.ErrReportNotFound
	}
	var req types.ResolveReportRequest
	_ = c.ShouldBind(&req)

	item, err := rh.ReportService.Resolve(c.Request.Context(), uri.ID, a.UserID, req.Action)
	if err != nil {
		return err
	}
	response.SuccessMessage(c, "Denúncia resolvida com sucesso", item)
	return nil
}

func (rh *ReportHandler) Hide(c *gin.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req types.HideCommentRequest
	_ = c.ShouldBind(&req)

	result, err := rh.ReportService.HideComment(c.Request.Context(), req.CommentID, a.UserID)
	if err != nil {
		return err
	}
	response.SuccessMessage(c, "Comentário ocultado com sucesso", result)
	return nil
}
