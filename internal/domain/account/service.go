package account

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/bedoax/bookstore/pkg/errors"
)

// Service 账户领域服务
// 设计说明:
// 1. Service包含不属于单个实体的业务逻辑(如密码加密、验证)
// 2. Service依赖Repository接口,不依赖具体实现(依赖倒置)
// 3. Service不处理HTTP请求,只处理业务逻辑
type Service interface {
	// RegisterCustomer 客户注册
	RegisterCustomer(ctx context.Context, username, password, name, email string) (*Customer, error)

	// LoginCustomer 客户登录
	LoginCustomer(ctx context.Context, username, password string) (*Customer, error)

	// LoginAdmin 管理员登录
	LoginAdmin(ctx context.Context, username, password string) (*Admin, error)

	// EnsureAdmin 确保管理员账号存在(服务启动时引导)
	EnsureAdmin(ctx context.Context, username, password, name string) error

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	customerRepo CustomerRepository
	adminRepo    AdminRepository
}

// NewService 创建账户服务
func NewService(customerRepo CustomerRepository, adminRepo AdminRepository) Service {
	return &service{
		customerRepo: customerRepo,
		adminRepo:    adminRepo,
	}
}

// RegisterCustomer 客户注册
// 业务规则:
// 1. 用户名格式校验(3-50位,字母数字下划线)
// 2. 密码强度校验(8-20位,包含字母和数字)
// 3. 密码bcrypt加密(cost=12)
// 4. 用户名唯一性由数据库UNIQUE索引保证
func (s *service) RegisterCustomer(ctx context.Context, username, password, name, email string) (*Customer, error) {
	// 1. 用户名格式校验
	if !isValidUsername(username) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "用户名格式不正确(3-50位字母数字下划线)")
	}

	// 2. 邮箱格式校验(邮箱可选)
	if email != "" && !isValidEmail(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}

	// 3. 密码强度校验
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	// 4. 密码加密
	// 学习要点:
	// - bcrypt自动加盐,每次加密结果都不同(即使密码相同)
	// - cost=12是推荐值,平衡安全性与性能
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	// 5. 创建客户实体
	customer := NewCustomer(username, string(hashedPassword), name, email)

	// 6. 持久化到数据库
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return customer, nil
}

// LoginCustomer 客户登录
func (s *service) LoginCustomer(ctx context.Context, username, password string) (*Customer, error) {
	customer, err := s.customerRepo.FindByUsername(ctx, username)
	if err != nil {
		// 统一返回"用户名或密码错误",不暴露用户是否存在
		if err == ErrCustomerNotFound {
			return nil, ErrInvalidPassword
		}
		return nil, err
	}

	if err := s.ValidatePassword(customer.Password, password); err != nil {
		return nil, err
	}

	return customer, nil
}

// LoginAdmin 管理员登录
func (s *service) LoginAdmin(ctx context.Context, username, password string) (*Admin, error) {
	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == ErrAdminNotFound {
			return nil, ErrInvalidPassword
		}
		return nil, err
	}

	if err := s.ValidatePassword(admin.Password, password); err != nil {
		return nil, err
	}

	return admin, nil
}

// EnsureAdmin 确保管理员账号存在
// 服务启动时调用:配置的管理员不存在则创建,已存在则不动(不覆盖密码)
// 密码走与注册相同的强度校验,弱密码直接让启动失败
func (s *service) EnsureAdmin(ctx context.Context, username, password, name string) error {
	if username == "" {
		// 未配置引导管理员,跳过
		return nil
	}

	if _, err := s.adminRepo.FindByUsername(ctx, username); err == nil {
		return nil
	} else if err != ErrAdminNotFound {
		return err
	}

	if !isValidUsername(username) {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "管理员用户名格式不正确(3-50位字母数字下划线)")
	}
	if err := validatePasswordStrength(password); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return apperrors.Wrap(err, "密码加密失败")
	}

	admin := NewAdmin(username, string(hashedPassword), name, "")
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		// 并发启动多个实例时可能撞唯一索引,视为已存在
		if err == ErrUsernameDuplicate {
			return nil
		}
		return err
	}
	return nil
}

// ValidatePassword 验证密码
// 说明:登录时使用,验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

// isValidUsername 用户名格式校验
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^[a-zA-Z0-9_]{3,50}$`, username)
	return matched
}

// isValidEmail 邮箱格式校验
// 简单的正则校验,生产环境可使用更严格的RFC 5322标准
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// validatePasswordStrength 密码强度校验
// 规则:8-20位,必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasLetter || !hasDigit {
		return apperrors.ErrWeakPassword
	}

	return nil
}
