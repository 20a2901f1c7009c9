package pkg

import (
	"net/http"

	"dronedesk/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ParseAndValidate(c *gin.Context, dto interface{}) error {
	if err := c.ShouldBindJSON(dto); err != nil {
		return err
	}
	return validate.Struct(dto)
}

// GetUserID extracts the authenticated user id set by the auth middleware.
// Writes a 401 and returns false when missing.
func GetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return 0, false
	}
	return id, true
}

// ActorFromContext builds the acting identity from whatever the auth
// middleware put in the context. In dev mode the middleware is bypassed and
// the zero Actor comes back; route protection itself stays with the
// middleware.
func ActorFromContext(c *gin.Context) models.Actor {
	var actor models.Actor
	if v, exists := c.Get("userID"); exists {
		actor.UserID, _ = v.(uint)
	}
	if email, exists := c.Get("userEmail"); exists {
		actor.Email, _ = email.(string)
	}
	if role, exists := c.Get("userRole"); exists {
		if r, isString := role.(string); isString {
			actor.Role = models.AppRole(r)
		}
	}
	return actor
}
