package mysql

import "strings"

// isDuplicateError 判断是否为唯一索引冲突错误
// MySQL错误码1062: Duplicate entry
// 用于将数据库层的唯一约束冲突翻译为领域错误(用户名重复、书名重复等)
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "Error 1062")
}
