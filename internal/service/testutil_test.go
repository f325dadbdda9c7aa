package service

import (
	"testing"

	"course_forge_backend/internal/model"
	"course_forge_backend/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// 内存库绑定单连接，避免连接池拿到空库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseRanking{},
		&model.Module{},
		&model.Vote{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func newCourseService(t *testing.T, db *gorm.DB) *CourseService {
	t.Helper()
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		NewRevalidateService(nil),
		db,
	)
}

func newModuleService(t *testing.T, db *gorm.DB) *ModuleService {
	t.Helper()
	return NewModuleService(
		repository.NewModuleRepository(db),
		repository.NewCourseRepository(db),
		NewRevalidateService(nil),
		db,
	)
}

func newRankingService(t *testing.T, db *gorm.DB) *RankingService {
	t.Helper()
	return NewRankingService(
		repository.NewRankingRepository(db),
		repository.NewVoteRepository(db),
		NewRevalidateService(nil),
		db,
	)
}
