package server

import (
	"time"

	"github.com/topshef/hedera-nft-auction-demo/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing and a generated
// request id, echoed back in the X-Request-Id header.
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	requestID := utils.GenerateID()
	c.Writer.Header().Set("X-Request-Id", requestID)

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"request_id": requestID,
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
	})
}
