package httpapi

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed web/index.html
var htmlIndex []byte

//go:embed web/client.js
var jsClient []byte

func setupWebRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", htmlIndex)
	})
	router.GET("/client.js", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/javascript; charset=utf-8", jsClient)
	})
}
