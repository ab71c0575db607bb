package models

import (
	"gorm.io/gorm"
)

// LandingContent holds one block of the public landing page, grouped by section
// and ordered within it.
type LandingContent struct {
	gorm.Model
	Section    string `gorm:"index;not null" json:"section"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Image      string `json:"image"`
	ButtonText string `json:"button_text"`
	ButtonLink string `json:"button_link"`
	OrderNum   int    `json:"order_num"`
	UpdatedBy  uint   `json:"updated_by"`
}
