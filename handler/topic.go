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

type TopicHandler struct {
	Config       *config.Config
	TopicService service.ITopicService
}

func (th *TopicHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(th.Config.Jwt)
	// 创建、修改、删除话题仅限管理员和版主
	managers := middleware.Authorize(models.RoleAdmin, models.RoleManager)

	topics := r.Group("/topicos-categoria", authorize)
	topics.GET("", context.Wrap(th.List))
	topics.POST("", managers, context.Wrap(th.Create))
	topics.GET("/categoria/:id", context.Wrap(th.ListByCategory))
	topics.GET("/:id", context.Wrap(th.Get))
	topics.PUT("/:id", managers, context.Wrap(th.Update))
	topics.DELETE("/:id", managers, context.Wrap(th.Delete))

	// 简化接口，不带分类和创建者
	plain := r.Group("/topicos", authorize)
	plain.GET("", context.Wrap(th.ListPlain))
	plain.POST("", managers, context.Wrap(th.Create))
}

// actor 当前登录用户
func actor(c *gin.Context) (service.Actor, error) {
	uid, err := context.GetUserID(c)
	if err != nil {
		return service.Actor{}, response.NewError(http.StatusUnauthorized, "Utilizador não autenticado")
	}
	return service.Actor{UserID: uid, Role: context.GetRole(c)}, nil
}

func (th *TopicHandler) List(c *gin.Context) error {
	items, err := th.TopicService.List(c.Request.Context())
	if err != nil {
		return err
	}
	response.List(c, items)
	return nil
}

func (th *TopicHandler) ListPlain(c *gin.Context) error {
	items, err := th.TopicService.ListPlain(c.Request.Context())
	if err != nil {
		return err
	}
	response.List(c, items)
	return nil
}

func (th *TopicHandler) Get(c *gin.Context) error {
	var uri types.TopicUri
	if err := c.ShouldBindUri(&uri); err != nil {
		return service.ErrTopicNotFound
	}
	item, err := th.TopicService.Get(c.Request.Context(), uri.ID)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

func (th *TopicHandler) ListByCategory(c *gin.Context) error {
	var uri types.CategoryUri
	if err := c.ShouldBindUri(&uri); err != nil {
		return service.ErrCategoryNotFound
	}
	items, err := th.TopicService.ListByCategory(c.Request.Context(), uri.ID)
	if err != nil {
		return err
	}
	response.List(c, items)
	return nil
}

func (th *TopicHandler) Create(c *gin.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req types.CreateTopicRequest
	if err := c.ShouldBind(&req); err != nil {
		return service.ErrTopicRequired
	}
	item, err := th.TopicService.Create(c.Request.Context(), &req, a.UserID)
	if err != nil {
		return err
	}
	response.Created(c, "Tópico criado com sucesso", item)
	return nil
}

func (th *TopicHandler) Update(c *gin.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var uri types.TopicUri
	if err := c.ShouldBindUri(&uri); err != nil {
		return service.ErrTopicNotFound
	}
	var req types.UpdateTopicRequest
	if err := c.ShouldBind(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "Dados inválidos")
	}
	item, err := th.TopicService.Update(c.Request.Context(), uri.ID, &req, a)
	if err != nil {
		return err
	}
	response.SuccessMessage(c, "Tópico atualizado com sucesso", item)
	return nil
}

func (th *TopicHandler) Delete(c *gin.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var uri types.TopicUri
	if err := c.ShouldBindUri(&uri); err != nil {
		return service.ErrTopicNotFound
	}
	if err := th.TopicService.Delete(c.Request.Context(), uri.ID, a); err != nil {
		return err
	}
	response.SuccessMessage(c, "Tópico excluído com sucesso", nil)
	return nil
}
