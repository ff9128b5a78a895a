package response

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应信封
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ListResponse 列表响应
type ListResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}

// PageResponse 分页响应
type PageResponse struct {
	Success     bool  `json:"success"`
	Count       int64 `json:"count"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Data        any   `json:"data"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func SuccessMessage(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Message: msg, Data: data})
}

func Created(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: msg, Data: data})
}

func List[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, ListResponse{Success: true, Count: len(items), Data: items})
}

func Page(c *gin.Context, count int64, page, limit int, data any) {
	c.JSON(http.StatusOK, PageResponse{
		Success:     true,
		Count:       count,
		TotalPages:  TotalPages(count, limit),
		CurrentPage: page,
		Data:        data,
	})
}

// TotalPages ceil(count/limit)
func TotalPages(count int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(count) / float64(limit)))
}
