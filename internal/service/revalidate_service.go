package service

import (
	"context"
	"time"

	"course_forge_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	revalidateChannel = "revalidate"
	pageCachePrefix   = "page_cache:"
)

// RevalidateService emits cache-invalidation signals for page paths after
// mutating operations: the cached page entry is dropped and the path is
// published for any listening renderer. Fire and forget — failures are
// logged, never surfaced to the caller.
type RevalidateService struct {
	Redis *redis.Client
}

func NewRevalidateService(rdb *redis.Client) *RevalidateService {
	return &RevalidateService{Redis: rdb}
}

// CourseList 课程列表页
func (s *RevalidateService) CourseList() {
	s.paths("/courses")
}

// CoursePages 某课程相关的全部页面
func (s *RevalidateService) CoursePages(courseID string) {
	s.paths("/courses", "/courses/"+courseID, "/my-courses/"+courseID)
}

func (s *RevalidateService) paths(paths ...string) {
	if s == nil || s.Redis == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for _, path := range paths {
		if err := s.Redis.Del(ctx, pageCachePrefix+path).Err(); err != nil {
			logger.Log.Warn("revalidate: drop page cache failed",
				zap.String("path", path), zap.Error(err))
		}
		if err := s.Redis.Publish(ctx, revalidateChannel, path).Err(); err != nil {
			logger.Log.Warn("revalidate: publish failed",
				zap.String("path", path), zap.Error(err))
		}
	}
}
