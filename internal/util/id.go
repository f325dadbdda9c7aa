package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateID 生成 <prefix>_<毫秒时间戳>_<随机后缀> 形式的标识符
func GenerateID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}

// RankingID derives a course's ranking identifier deterministically.
func RankingID(courseID string) string {
	return courseID + "_ranking"
}

// GenerateRandomString 返回定长随机十六进制串，用于对象存储文件名
func GenerateRandomString(n int) string {
	s := strings.ReplaceAll(uuid.New().String(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
