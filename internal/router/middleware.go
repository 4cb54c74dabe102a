package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookshelf.dev/storefront/pkg/cart"
	"bookshelf.dev/storefront/pkg/global"
)

const AllowHeader = "GET, POST, OPTIONS"

// AllowOptions advertises the allowed methods and answers any OPTIONS request that nothing
// else handled (CORS preflights are answered by the cors middleware) with 200.
func AllowOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}

		c.Header("Allow", AllowHeader)
		c.Next()

		if !c.Writer.Written() {
			c.AbortWithStatus(http.StatusOK)
		}
	}
}

const (
	cartKey      = "cart"
	sessionIDKey = "sessionId"
)

// CartSessionMiddleware validates the :sessionId path parameter and opens its cart.
func CartSessionMiddleware(sessions cart.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")
		if _, err := uuid.Parse(sessionID); err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid session ID", []global.ValidationError{
				{Field: "sessionId", Message: "Session ID must be a UUID", Code: "invalid_format"},
			}))
			c.Abort()
			return
		}

		store, err := sessions.Open(c.Request.Context(), sessionID)
		if errors.Is(err, cart.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Cart session not found", []global.ValidationError{
				{Field: "sessionId", Message: "No cart session exists with this ID", Code: "not_found"},
			}))
			c.Abort()
			return
		}
		if err != nil {
			log.Printf("Error opening cart session %s: %v", sessionID, err)
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to open cart session", nil))
			c.Abort()
			return
		}

		c.Set(sessionIDKey, sessionID)
		c.Set(cartKey, cart.NewEngine(store))
		c.Next()
	}
}
