package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/proman-app/proman/internal/api/constants"
	"github.com/proman-app/proman/internal/models"
	"github.com/proman-app/proman/internal/utils"

	"github.com/gin-gonic/gin"
)

// currentUser returns the authenticated user placed in the context by the
// auth middleware. Handlers behind RequireAuth may assume it is present.
func currentUser(c *gin.Context) *models.User {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// parseDate converts a 2006-01-02 form value into a time pointer. Binding
// has already validated the format; an empty value means unset.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// parseID reads a numeric path parameter. On failure it writes a 400
// response and returns false.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.HandleBadRequest(c, fmt.Errorf("invalid %s parameter", name))
		return 0, false
	}
	return uint(id), true
}
