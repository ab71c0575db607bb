package landing

// ContentRequest is the payload for creating or editing a landing block
type ContentRequest struct {
	Section    string `json:"section" binding:"required"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Image      string `json:"image"`
	ButtonText string `json:"button_text"`
	ButtonLink string `json:"button_link"`
	OrderNum   int    `json:"order_num"`
}
