package service

import (
	"testing"

	"course_forge_backend/internal/model"
	"course_forge_backend/internal/repository"
	"course_forge_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestCreateCourseCreatesPairedRanking(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)

	course, err := svc.CreateCourse(1, CreateCourseRequest{
		Name:       "Intro to Solidity",
		Categories: []string{"Web3"},
		Difficulty: "Beginner",
	})
	require.NoError(t, err)
	assert.True(t, course.IsOriginal)
	assert.True(t, course.IsPublic)
	assert.Empty(t, course.ForkedFrom)

	var ranking model.CourseRanking
	require.NoError(t, db.First(&ranking, "course_id = ?", course.ID).Error)
	assert.Equal(t, course.ID+"_ranking", ranking.ID)
	assert.Equal(t, uint(1), ranking.CreatorID)
	assert.Zero(t, ranking.Upvotes)
	assert.Zero(t, ranking.Downvotes)
	assert.Zero(t, ranking.Score)
}

func TestCreateCourseRejectsUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)

	_, err := svc.CreateCourse(1, CreateCourseRequest{
		Name:       "Bad",
		Categories: []string{"Cooking"},
		Difficulty: "Beginner",
	})
	assert.ErrorIs(t, err, util.ErrInvalidCategory)
}

func TestCreateCoursePersistsPrivateFlag(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)

	course, err := svc.CreateCourse(1, CreateCourseRequest{
		Name:       "Drafts Only",
		IsPublic:   boolPtr(false),
		Categories: []string{"Web3"},
		Difficulty: "Beginner",
	})
	require.NoError(t, err)

	// 落库后的行也必须是私有，而不只是返回值
	var raw model.Course
	require.NoError(t, db.First(&raw, "id = ?", course.ID).Error)
	assert.False(t, raw.IsPublic)

	var n int64
	require.NoError(t, db.Model(&model.Course{}).Where("is_public = ?", true).Count(&n).Error)
	assert.Zero(t, n)
}

func TestForkCoursePersistsForkFlags(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)

	original, err := svc.CreateCourse(1, CreateCourseRequest{
		Name:       "Source",
		Categories: []string{"Web3"},
		Difficulty: "Beginner",
	})
	require.NoError(t, err)

	fork, err := svc.ForkCourse(2, original.ID, "")
	require.NoError(t, err)

	var raw model.Course
	require.NoError(t, db.First(&raw, "id = ?", fork.ID).Error)
	assert.False(t, raw.IsOriginal)
	assert.Equal(t, original.ID, raw.ForkedFrom)
}

func TestUpdateCoursePatchesOnlyProvidedFields(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)

	course, err := svc.CreateCourse(1, CreateCourseRequest{
		Name:        "Go Basics",
		Description: "original description",
		Categories:  []string{"Full Stack Development"},
		Difficulty:  "Beginner",
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateCourse(1, course.ID, UpdateCourseRequest{
		Name:     "Go Fundamentals",
		IsPublic: boolPtr(false),
	}))

	got, err := svc.GetCourse(course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Fundamentals", got.Name)
	assert.Equal(t, "original description", got.Description)
	assert.False(t, got.IsPublic)
}

func TestUpdateCourseDeniedForNonOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)

	course, err := svc.CreateCourse(1, CreateCourseRequest{
		Name:       "Mine",
		Categories: []string{"Designs"},
		Difficulty: "Advanced",
	})
	require.NoError(t, err)

	err = svc.UpdateCourse(2, course.ID, UpdateCourseRequest{Name: "Stolen"})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestDeleteCourseCascades(t *testing.T) {
	db := newTestDB(t)
	courseSvc := newCourseService(t, db)
	moduleSvc := newModuleService(t, db)
	rankingSvc := newRankingService(t, db)

	course, err := courseSvc.CreateCourse(1, CreateCourseRequest{
		Name:       "Doomed",
		Categories: []string{"AI/ML"},
		Difficulty: "Intermediate",
	})
	require.NoError(t, err)

	_, err = moduleSvc.CreateModule(1, CreateModuleRequest{
		CourseID: course.ID,
		Name:     "Only Module",
	})
	require.NoError(t, err)

	_, err = rankingSvc.Vote(7, course.ID, true)
	require.NoError(t, err)

	require.NoError(t, courseSvc.DeleteCourse(1, course.ID))

	for _, count := range []struct {
		name  string
		model interface{}
	}{
		{"courses", &model.Course{}},
		{"modules", &model.Module{}},
		{"rankings", &model.CourseRanking{}},
		{"votes", &model.Vote{}},
	} {
		var n int64
		require.NoError(t, db.Model(count.model).Count(&n).Error)
		assert.Zerof(t, n, "leftover rows in %s", count.name)
	}
}

func TestDeleteCourseNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)

	err := svc.DeleteCourse(1, "course_123_missing")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestGetCoursesFiltersAndSorts(t *testing.T) {
	db := newTestDB(t)
	courseSvc := newCourseService(t, db)
	rankingSvc := newRankingService(t, db)

	low, err := courseSvc.CreateCourse(1, CreateCourseRequest{
		CourseID:   "course_1_low",
		Name:       "Marketing 101",
		Categories: []string{"Marketing"},
		Difficulty: "Beginner",
	})
	require.NoError(t, err)

	high, err := courseSvc.CreateCourse(1, CreateCourseRequest{
		CourseID:   "course_2_high",
		Name:       "Marketing Pro",
		Categories: []string{"Marketing"},
		Difficulty: "Advanced",
	})
	require.NoError(t, err)

	_, err = courseSvc.CreateCourse(2, CreateCourseRequest{
		CourseID:   "course_3_private",
		Name:       "Hidden",
		IsPublic:   boolPtr(false),
		Categories: []string{"Marketing"},
		Difficulty: "Beginner",
	})
	require.NoError(t, err)

	for userID := uint(10); userID < 13; userID++ {
		_, err = rankingSvc.Vote(userID, high.ID, true)
		require.NoError(t, err)
	}

	// 私有课程不出现在列表里
	courses, total, err := courseSvc.GetCourses(repository.CourseFilter{Category: "Marketing"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, courses, 2)

	// 按评分排序时高分在前
	courses, _, err = courseSvc.GetCourses(repository.CourseFilter{SortBy: repository.SortByScore})
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, high.ID, courses[0].ID)
	assert.Equal(t, low.ID, courses[1].ID)

	// 难度过滤
	courses, _, err = courseSvc.GetCourses(repository.CourseFilter{Difficulty: "Advanced"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, high.ID, courses[0].ID)

	// 关键词检索
	_, total, err = courseSvc.GetCourses(repository.CourseFilter{Search: "Pro"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestForkCourse(t *testing.T) {
	db := newTestDB(t)
	courseSvc := newCourseService(t, db)
	moduleSvc := newModuleService(t, db)
	rankingSvc := newRankingService(t, db)

	original, err := courseSvc.CreateCourse(1, CreateCourseRequest{
		Name:        "DeFi Deep Dive",
		Description: "all about AMMs",
		IsPublic:    boolPtr(false),
		Categories:  []string{"Web3"},
		Difficulty:  "Advanced",
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = moduleSvc.CreateModule(1, CreateModuleRequest{
			CourseID: original.ID,
			Name:     "Part",
			Content:  "body",
			Media:    []string{"https://cdn.example.com/a.png"},
		})
		require.NoError(t, err)
	}
	_, err = rankingSvc.Vote(5, original.ID, true)
	require.NoError(t, err)

	fork, err := courseSvc.ForkCourse(2, original.ID, "")
	require.NoError(t, err)

	assert.Equal(t, "DeFi Deep Dive (Forked)", fork.Name)
	assert.Equal(t, "all about AMMs", fork.Description)
	assert.Equal(t, uint(2), fork.CreatorID)
	assert.True(t, fork.IsPublic, "forks are always public")
	assert.False(t, fork.IsOriginal)
	assert.Equal(t, original.ID, fork.ForkedFrom)

	// 复刻得到全新的零值排名，不继承原课程票数
	var ranking model.CourseRanking
	require.NoError(t, db.First(&ranking, "course_id = ?", fork.ID).Error)
	assert.Zero(t, ranking.Upvotes)
	assert.Zero(t, ranking.Score)

	modules, err := moduleSvc.GetModulesByCourseID(fork.ID)
	require.NoError(t, err)
	require.Len(t, modules, 2)
	for i, m := range modules {
		assert.Equal(t, i+1, m.Index)
		assert.Equal(t, "body", m.Content)
		assert.Equal(t, []string{"https://cdn.example.com/a.png"}, []string(m.Media))
	}

	// 原课程不受影响
	got, err := courseSvc.GetCourse(original.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublic)
	assert.True(t, got.IsOriginal)
}

func TestForkCourseHonorsRequestedID(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)

	original, err := svc.CreateCourse(1, CreateCourseRequest{
		Name:       "Base",
		Categories: []string{"Web3"},
		Difficulty: "Beginner",
	})
	require.NoError(t, err)

	fork, err := svc.ForkCourse(2, original.ID, "course_42_custom")
	require.NoError(t, err)
	assert.Equal(t, "course_42_custom", fork.ID)

	var ranking model.CourseRanking
	require.NoError(t, db.First(&ranking, "course_id = ?", fork.ID).Error)
	assert.Equal(t, "course_42_custom_ranking", ranking.ID)
}

func TestCreatorStats(t *testing.T) {
	db := newTestDB(t)
	courseSvc := newCourseService(t, db)
	rankingSvc := newRankingService(t, db)

	a, err := courseSvc.CreateCourse(1, CreateCourseRequest{
		Name:       "A",
		Categories: []string{"Web3"},
		Difficulty: "Beginner",
	})
	require.NoError(t, err)

	_, err = courseSvc.CreateCourse(1, CreateCourseRequest{
		Name:       "B",
		IsPublic:   boolPtr(false),
		Categories: []string{"Web3"},
		Difficulty: "Beginner",
	})
	require.NoError(t, err)

	_, err = courseSvc.ForkCourse(1, a.ID, "")
	require.NoError(t, err)

	_, err = rankingSvc.Vote(10, a.ID, true)
	require.NoError(t, err)
	_, err = rankingSvc.Vote(11, a.ID, true)
	require.NoError(t, err)
	_, err = rankingSvc.Vote(12, a.ID, false)
	require.NoError(t, err)

	stats, err := courseSvc.GetUserCourseStats(1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalCourses)
	assert.EqualValues(t, 2, stats.OriginalCourses)
	assert.EqualValues(t, 1, stats.ForkedCourses)
	assert.EqualValues(t, 2, stats.PublicCourses)
	assert.EqualValues(t, 1, stats.PrivateCourses)
	assert.EqualValues(t, 2, stats.TotalUpvotes)
	assert.EqualValues(t, 1, stats.TotalDownvotes)
}

func TestCreatorStatsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)

	stats, err := svc.GetUserCourseStats(99)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCourses)
	assert.Zero(t, stats.TotalUpvotes)
	assert.Zero(t, stats.AverageScore)
}
