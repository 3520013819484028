package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// StartServer initializes the REST API on the given port. Blocks.
func StartServer(port int) error {
	r := gin.Default()
	SetupRoutes(r)
	return r.Run(fmt.Sprintf(":%d", port))
}
