package router

import (
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/lccfund/backend/internal/models"
)

// URLMiddleware sets the API base URL on the context so that responses can
// contain absolute links.
func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.DBContextURL), url.String())
		c.Next()
	}
}
