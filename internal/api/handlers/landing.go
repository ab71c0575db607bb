package handlers

import (
	"errors"

	landingdto "github.com/proman-app/proman/internal/api/dto/v1/landing"
	"github.com/proman-app/proman/internal/models"
	"github.com/proman-app/proman/internal/repository"
	"github.com/proman-app/proman/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LandingHandler serves the landing-page CMS: public reads plus
// admin-gated writes.
type LandingHandler struct {
	landing repository.LandingRepository
}

// NewLandingHandler creates a new LandingHandler instance
func NewLandingHandler(landing repository.LandingRepository) *LandingHandler {
	return &LandingHandler{landing: landing}
}

// List returns every content block, grouped by section in display order.
func (h *LandingHandler) List(c *gin.Context) {
	blocks, err := h.landing.List(c.Request.Context())
	if err != nil {
		utils.HandleInternalError(c, err, "Failed to load landing content")
		return
	}

	grouped := make(map[string][]models.LandingContent)
	for _, block := range blocks {
		grouped[block.Section] = append(grouped[block.Section], block)
	}
	utils.HandleSuccess(c, grouped)
}

// GetSection returns one section's content blocks.
func (h *LandingHandler) GetSection(c *gin.Context) {
	section := c.Param("section")
	blocks, err := h.landing.ListBySection(c.Request.Context(), section)
	if err != nil {
		utils.HandleInternalError(c, err, "Failed to load landing content")
		return
	}
	utils.HandleSuccess(c, blocks)
}

// Create adds a content block.
func (h *LandingHandler) Create(c *gin.Context) {
	var req landingdto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	block := &models.LandingContent{
		Section:    req.Section,
		Title:      req.Title,
		Content:    req.Content,
		Image:      req.Image,
		ButtonText: req.ButtonText,
		ButtonLink: req.ButtonLink,
		OrderNum:   req.OrderNum,
		UpdatedBy:  currentUser(c).ID,
	}
	if err := h.landing.Create(c.Request.Context(), block); err != nil {
		utils.HandleInternalError(c, err, "Failed to create landing content")
		return
	}
	utils.HandleCreated(c, block)
}

// Update edits a content block.
func (h *LandingHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req landingdto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	block, err := h.landing.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.HandleDenied(c)
			return
		}
		utils.HandleInternalError(c, err, "Failed to load landing content")
		return
	}

	block.Section = req.Section
	block.Title = req.Title
	block.Content = req.Content
	block.Image = req.Image
	block.ButtonText = req.ButtonText
	block.ButtonLink = req.ButtonLink
	block.OrderNum = req.OrderNum
	block.UpdatedBy = currentUser(c).ID

	if err := h.landing.Update(c.Request.Context(), block); err != nil {
		utils.HandleInternalError(c, err, "Failed to update landing content")
		return
	}
	utils.HandleSuccess(c, block)
}

// Delete removes a content block.
func (h *LandingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.landing.Delete(c.Request.Context(), id); err != nil {
		utils.HandleInternalError(c, err, "Failed to delete landing content")
		return
	}
	utils.HandleMessage(c, "Content deleted")
}
