package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// --------------------------------------------------
// Helpers de querystring compartilhados pelos handlers
// --------------------------------------------------

func pageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// parsePeriod aceita RFC3339 ou data simples (YYYY-MM-DD) em ini/fim.
func parsePeriod(c *gin.Context, loc *time.Location) (time.Time, time.Time, bool) {
	parse := func(s string) (time.Time, error) {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		return time.ParseInLocation("2006-01-02", s, loc)
	}

	ini, err := parse(c.Query("ini"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	fim, err := parse(c.Query("fim"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return ini, fim, true
}
