// 手动补齐缺失的课程排名记录
//
// 正常流程中课程与排名在同一事务内创建，不会缺失。此脚本用于修复
// 历史数据或外部导入的课程缺少配对排名记录的情况。
//
// 用法: go run scripts/backfill_rankings.go

package main

import (
	"log"

	"course_forge_backend/internal/config"
	"course_forge_backend/internal/model"
	"course_forge_backend/internal/util"
	"course_forge_backend/pkg/database"
	"course_forge_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var courses []model.Course
	if err := db.
		Joins("LEFT JOIN course_rankings ON course_rankings.course_id = courses.id").
		Where("course_rankings.id IS NULL").
		Find(&courses).Error; err != nil {
		log.Fatalf("查询缺失排名的课程失败: %v", err)
	}

	log.Printf("发现 %d 门课程缺少排名记录", len(courses))

	for _, course := range courses {
		ranking := model.CourseRanking{
			StringIDBase: model.StringIDBase{ID: util.RankingID(course.ID)},
			CourseID:     course.ID,
			CreatorID:    course.CreatorID,
		}
		if err := db.Create(&ranking).Error; err != nil {
			log.Printf("课程 %s 补齐失败: %v", course.ID, err)
			continue
		}
		log.Printf("课程 %s 排名记录已补齐", course.ID)
	}

	log.Println("完成！")
}
