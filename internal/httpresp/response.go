package httpresp

import "github.com/gin-gonic/gin"

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type PageResponse[T any] struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	Data     []T   `json:"data"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func Page[T any](c *gin.Context, page, pageSize int, total int64, data []T) {
	c.JSON(200, PageResponse[T]{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Data:     data,
	})
}
