package dto

// PurchaseRequest HTTP购书请求
// 购买行按书名定位图书(不区分大小写),一次请求可购买多本书
type PurchaseRequest struct {
	Lines           []PurchaseLine `json:"lines" binding:"required,min=1,max=50,dive"`
	PaymentMethod   string         `json:"payment_method" binding:"required,max=50" example:"CreditCard"`
	ShippingAddress string         `json:"shipping_address" binding:"required,max=500" example:"北京市海淀区中关村大街1号"`
	BillingAddress  string         `json:"billing_address" binding:"required,max=500" example:"北京市海淀区中关村大街1号"`
	DeliveryDate    string         `json:"delivery_date" binding:"required" example:"2026-09-05"` // 格式:2006-01-02
}

// PurchaseLine HTTP购买行
type PurchaseLine struct {
	BookTitle string `json:"book_title" binding:"required,max=200" example:"Dune"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=999" example:"3"`
}

// PurchaseResponse HTTP购书确认响应
type PurchaseResponse struct {
	Reference string `json:"reference" example:"9f3c1a52-7b0e-4f4f-9a3e-1c2d3e4f5a6b"`
	OrderNo   string `json:"order_no" example:"ORD1756444800a1b2c3d4e5f6"`
	Lines     int    `json:"lines" example:"1"`
	Total     int64  `json:"total" example:"6000"`      // 总金额(分)
	TotalYuan string `json:"total_yuan" example:"60.00"` // 总金额(元)
	Balance   int64  `json:"balance" example:"4000"`     // 扣款后余额(分)
	CreatedAt string `json:"created_at" example:"2026-08-29 10:30:00"`
}

// OrderRecordResponse HTTP订单记录响应
type OrderRecordResponse struct {
	ID              uint   `json:"id" example:"1"`
	OrderNo         string `json:"order_no" example:"ORD1756444800a1b2c3d4e5f6"`
	BookID          uint   `json:"book_id" example:"1"`
	OrderDate       string `json:"order_date" example:"2026-08-29 10:30:00"`
	Quantity        int    `json:"quantity" example:"3"`
	TotalPrice      int64  `json:"total_price" example:"6000"`
	TotalPriceYuan  string `json:"total_price_yuan" example:"60.00"`
	Status          string `json:"status" example:"Completed"`
	PaymentMethod   string `json:"payment_method" example:"CreditCard"`
	ShippingAddress string `json:"shipping_address" example:"北京市海淀区中关村大街1号"`
	BillingAddress  string `json:"billing_address" example:"北京市海淀区中关村大街1号"`
	DeliveryDate    string `json:"delivery_date" example:"2026-09-05"`
}
