package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNo 生成订单号
// 订单号设计原则:
// 1. 全局唯一(避免冲突)
// 2. 时间有序(便于分库分表)
// 3. 不可预测(防止恶意遍历)
//
// 格式:ORD + 时间戳(秒) + UUID前12位十六进制
// 示例:ORD1699248000a1b2c3d4e5f6
func GenerateOrderNo() string {
	timestamp := time.Now().Unix()
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("ORD%d%s", timestamp, suffix)
}
