package dto

// AuthorRequest HTTP作者写入请求(新增与更新共用,更新时空字段不修改)
type AuthorRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Frank Herbert"`
	Gender      string `json:"gender" binding:"omitempty,max=10"`
	Age         int    `json:"age" binding:"omitempty,min=1,max=150"`
	Country     string `json:"country" binding:"omitempty,max=100"`
	City        string `json:"city" binding:"omitempty,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=20"`
	Email       string `json:"email" binding:"omitempty,email"`
	Website     string `json:"website" binding:"omitempty,url,max=255"`
	ImagePath   string `json:"image_path" binding:"omitempty,max=500"`
}

// AuthorResponse HTTP作者响应
type AuthorResponse struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" example:"Frank Herbert"`
	Gender      string `json:"gender"`
	Age         int    `json:"age"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Description string `json:"description"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	ImagePath   string `json:"image_path"`
}

// CategoryRequest HTTP分类写入请求
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"Science Fiction"`
}

// CategoryResponse HTTP分类响应
type CategoryResponse struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Science Fiction"`
}
