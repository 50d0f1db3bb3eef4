package dto

// PublishBookRequest HTTP上架请求
type PublishBookRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"Dune"`
	AuthorID    uint   `json:"author_id" binding:"required" example:"1"`
	CategoryID  uint   `json:"category_id" binding:"required" example:"1"`
	ISBN        string `json:"isbn" binding:"required,max=20" example:"9780441013593"`
	Description string `json:"description" binding:"max=5000"`
	Price       int64  `json:"price" binding:"required,min=1,max=1000000" example:"2000"` // 价格(分),20.00元
	Stock       int    `json:"stock" binding:"min=0" example:"5"`
	Publisher   string `json:"publisher" binding:"max=100" example:"Ace"`
	Language    string `json:"language" binding:"max=50" example:"English"`
	Pages       int    `json:"pages" binding:"omitempty,min=1" example:"412"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID            uint    `json:"id" example:"1"`
	Title         string  `json:"title" example:"Dune"`
	AuthorID      uint    `json:"author_id" example:"1"`
	CategoryID    uint    `json:"category_id" example:"1"`
	ISBN          string  `json:"isbn" example:"9780441013593"`
	Description   string  `json:"description"`
	Price         int64   `json:"price" example:"2000"`
	PriceYuan     string  `json:"price_yuan" example:"20.00"` // 价格(元),方便前端显示
	Stock         int     `json:"stock" example:"5"`
	Publisher     string  `json:"publisher" example:"Ace"`
	Language      string  `json:"language" example:"English"`
	Pages         int     `json:"pages" example:"412"`
	Rating        float64 `json:"rating" example:"4.5"`
	PublishedDate string  `json:"published_date" example:"1965-08-01"`
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Keyword    string `form:"keyword" binding:"omitempty,max=100"`
	CategoryID uint   `form:"category_id" binding:"omitempty"`
	AuthorID   uint   `form:"author_id" binding:"omitempty"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc created_at_desc"`
}

// UpdateBookRequest HTTP图书信息更新请求
// 空字段不修改
type UpdateBookRequest struct {
	Description string `json:"description" binding:"omitempty,max=5000"`
	Publisher   string `json:"publisher" binding:"omitempty,max=100"`
	Language    string `json:"language" binding:"omitempty,max=50"`
}

// UpdatePriceRequest HTTP改价请求
type UpdatePriceRequest struct {
	Price int64 `json:"price" binding:"required,min=1,max=1000000" example:"2500"` // 新价格(分)
}

// RestockRequest HTTP补货请求
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=100000" example:"10"`
}
