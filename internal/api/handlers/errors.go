package handlers

import (
	"strings"

	"github.com/containerd/errdefs/pkg/errhttp"
	"github.com/gin-gonic/gin"
	"github.com/linskybing/accel-platform/pkg/response"
)

// respondError maps an error kind to its HTTP status.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(errhttp.ToHTTP(err), response.ErrorResponse{Error: err.Error()})
}

// queryList collects a repeated or comma separated query parameter.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
