package dto

// PostReviewRequest HTTP发表评论请求
type PostReviewRequest struct {
	BookID  uint   `json:"book_id" binding:"required" example:"1"`
	Comment string `json:"comment" binding:"max=1000" example:"经典之作"`
	Rating  int    `json:"rating" binding:"min=0,max=5" example:"5"`
}

// RespondReviewRequest HTTP管理员回复评论请求
type RespondReviewRequest struct {
	Response string `json:"response" binding:"required,max=500" example:"感谢您的评价"`
}

// ReviewResponse HTTP评论响应
type ReviewResponse struct {
	ID           uint   `json:"id" example:"1"`
	BookID       uint   `json:"book_id" example:"1"`
	CustomerID   uint   `json:"customer_id" example:"1"`
	Comment      string `json:"comment" example:"经典之作"`
	Rating       int    `json:"rating" example:"5"`
	Likes        int    `json:"likes" example:"10"`
	Dislikes     int    `json:"dislikes" example:"0"`
	Response     string `json:"response,omitempty"`
	ResponseDate string `json:"response_date,omitempty"`
	CreatedAt    string `json:"created_at" example:"2026-08-29 10:30:00"`
}
