package handlers

import (
	"net/http"

	"github.com/proman-app/proman/internal/api/dto/common"
	"github.com/proman-app/proman/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *gin.Context) {
	// Test DB connection
	sqlDB, err := h.db.DB()
	if err != nil {
		utils.HandleInternalError(c, err, "Database configuration error")
		return
	}

	if err := sqlDB.Ping(); err != nil {
		utils.HandleInternalError(c, err, "Database connection error")
		return
	}

	c.JSON(http.StatusOK, common.NewMessageResponse("Health check OK"))
}
