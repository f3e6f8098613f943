package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam 读取路径中的数字 id，非法或为 0 时返回 false。
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
