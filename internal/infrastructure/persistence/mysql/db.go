package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bedoax/bookstore/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&CustomerModel{},
		&AdminModel{},
		&AuthorModel{},
		&CategoryModel{},
		&BookModel{},
		&ReviewModel{},
		&OrderRecordModel{},
	)
}

// CustomerModel GORM客户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/account/customer.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
// 4. Balance为int64分，配合带条件的UPDATE保证不为负
type CustomerModel struct {
	ID          uint           `gorm:"primaryKey"`
	Username    string         `gorm:"uniqueIndex;size:50;not null;comment:用户名"`
	Password    string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name        string         `gorm:"size:100;not null;comment:姓名"`
	PhoneNumber string         `gorm:"size:20;comment:电话"`
	Email       string         `gorm:"size:255;comment:邮箱"`
	Balance     int64          `gorm:"not null;default:0;comment:余额(分)"`
	Gender      string         `gorm:"size:10;comment:性别"`
	Age         int            `gorm:"comment:年龄"`
	Country     string         `gorm:"size:100;comment:国家"`
	City        string         `gorm:"size:100;comment:城市"`
	Street      string         `gorm:"size:200;comment:街道"`
	Description string         `gorm:"size:500;comment:备注"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (CustomerModel) TableName() string {
	return "customers"
}

// AdminModel GORM管理员模型
// 与客户共享人员字段,无余额等扩展字段
type AdminModel struct {
	ID          uint           `gorm:"primaryKey"`
	Username    string         `gorm:"uniqueIndex;size:50;not null;comment:用户名"`
	Password    string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name        string         `gorm:"size:100;not null;comment:姓名"`
	PhoneNumber string         `gorm:"size:20;comment:电话"`
	Email       string         `gorm:"size:255;comment:邮箱"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (AdminModel) TableName() string {
	return "admins"
}

// AuthorModel GORM作者模型
type AuthorModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"index;size:100;not null;comment:姓名"`
	Gender      string         `gorm:"size:10;comment:性别"`
	Age         int            `gorm:"comment:年龄"`
	Country     string         `gorm:"size:100;comment:国家"`
	City        string         `gorm:"size:100;comment:城市"`
	Description string         `gorm:"size:500;comment:简介"`
	PhoneNumber string         `gorm:"size:20;comment:电话"`
	Email       string         `gorm:"size:255;comment:邮箱"`
	Website     string         `gorm:"size:255;comment:个人网站"`
	ImagePath   string         `gorm:"size:500;comment:头像路径"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// CategoryModel GORM分类模型
type CategoryModel struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"uniqueIndex;size:100;not null;comment:分类名"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. Title有唯一索引:购书按书名查找,书名是业务唯一键
// 3. AuthorID/CategoryID关联作者表/分类表
type BookModel struct {
	ID            uint           `gorm:"primaryKey"`
	Title         string         `gorm:"uniqueIndex;size:200;not null;comment:书名"`
	AuthorID      uint           `gorm:"index;not null;comment:作者ID"`
	CategoryID    uint           `gorm:"index;not null;comment:分类ID"`
	ISBN          string         `gorm:"index;size:20;not null;comment:ISBN号"`
	Description   string         `gorm:"type:text;comment:图书描述"`
	Price         int64          `gorm:"index:idx_list;not null;comment:价格(分)"` // 排序索引
	Stock         int            `gorm:"default:0;comment:库存数量"`
	PublishedDate time.Time      `gorm:"comment:出版日期"`
	Publisher     string         `gorm:"size:100;comment:出版社"`
	Language      string         `gorm:"size:50;comment:语言"`
	Pages         int            `gorm:"comment:页数"`
	Rating        float64        `gorm:"comment:综合评分"`
	ImagePath     string         `gorm:"size:500;comment:封面图片路径"`
	CreatedAt     time.Time      `gorm:"index:idx_list;comment:创建时间"` // 排序索引
	UpdatedAt     time.Time      `gorm:"comment:更新时间"`
	DeletedAt     gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// ReviewModel GORM评论模型
type ReviewModel struct {
	ID           uint           `gorm:"primaryKey"`
	BookID       uint           `gorm:"index;not null;comment:图书ID"`
	CustomerID   uint           `gorm:"index;not null;comment:客户ID"`
	Comment      string         `gorm:"size:1000;comment:评论内容"`
	Rating       int            `gorm:"type:tinyint;not null;comment:评分(0-5)"`
	Likes        int            `gorm:"default:0;comment:点赞数"`
	Dislikes     int            `gorm:"default:0;comment:点踩数"`
	Response     string         `gorm:"size:500;comment:管理员回复"`
	ResponseDate *time.Time     `gorm:"comment:回复时间"`
	CreatedAt    time.Time      `gorm:"comment:创建时间"`
	UpdatedAt    time.Time      `gorm:"comment:更新时间"`
	DeletedAt    gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}

// OrderRecordModel GORM订单台账模型
// 设计说明:
// 1. 每个成功购买的行一条记录,合并了订单头与明细(无更新路径,不拆表)
// 2. OrderNo有索引(同一次购书的多行共享一个订单号)
// 3. TotalPrice记录下单时的金额快照(分)
type OrderRecordModel struct {
	ID              uint      `gorm:"primaryKey"`
	OrderNo         string    `gorm:"index;size:32;not null;comment:订单号"`
	CustomerID      uint      `gorm:"index;not null;comment:买家客户ID"`
	BookID          uint      `gorm:"index;not null;comment:图书ID"`
	OrderDate       time.Time `gorm:"index;comment:下单时间"`
	Quantity        int       `gorm:"not null;comment:购买数量"`
	TotalPrice      int64     `gorm:"not null;comment:行金额(分)"`
	Status          string    `gorm:"size:20;not null;comment:订单状态"`
	PaymentMethod   string    `gorm:"size:50;comment:支付方式"`
	ShippingAddress string    `gorm:"size:500;comment:收货地址"`
	BillingAddress  string    `gorm:"size:500;comment:账单地址"`
	DeliveryDate    time.Time `gorm:"comment:送达日期"`
	CreatedAt       time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (OrderRecordModel) TableName() string {
	return "order_records"
}
