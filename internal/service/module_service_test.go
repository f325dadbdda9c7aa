package service

import (
	"encoding/json"
	"testing"

	"course_forge_backend/internal/editor"
	"course_forge_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCourse(t *testing.T, svc *CourseService, creatorID uint) string {
	t.Helper()
	course, err := svc.CreateCourse(creatorID, CreateCourseRequest{
		Name:       "Container Course",
		Categories: []string{"Full Stack Development"},
		Difficulty: "Beginner",
	})
	require.NoError(t, err)
	return course.ID
}

func TestCreateModuleAppendsToEnd(t *testing.T) {
	db := newTestDB(t)
	courseSvc := newCourseService(t, db)
	moduleSvc := newModuleService(t, db)
	courseID := createTestCourse(t, courseSvc, 1)

	first, err := moduleSvc.CreateModule(1, CreateModuleRequest{
		CourseID: courseID,
		Name:     "One",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Index)

	second, err := moduleSvc.CreateModule(1, CreateModuleRequest{
		CourseID: courseID,
		Name:     "Two",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Index)
}

func TestCreateModuleSerializesSections(t *testing.T) {
	db := newTestDB(t)
	courseSvc := newCourseService(t, db)
	moduleSvc := newModuleService(t, db)
	courseID := createTestCourse(t, courseSvc, 1)

	sections := json.RawMessage(`[
		{"kind": "heading", "content": "Intro", "level": 2},
		{"kind": "paragraph", "content": "Welcome aboard."}
	]`)

	module, err := moduleSvc.CreateModule(1, CreateModuleRequest{
		CourseID: courseID,
		Name:     "Structured",
		Content:  "ignored when sections are present",
		Sections: sections,
	})
	require.NoError(t, err)

	assert.Equal(t, "## Intro\n\nWelcome aboard.", module.Content)

	// 结构化段落原样落库，且每段都分配了 id
	parsed, err := editor.ParseSections(json.RawMessage(module.Sections))
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	for _, s := range parsed {
		assert.NotEmpty(t, s.ID)
	}
}

func TestCreateModuleRejectsUnknownSectionKind(t *testing.T) {
	db := newTestDB(t)
	courseSvc := newCourseService(t, db)
	moduleSvc := newModuleService(t, db)
	courseID := createTestCourse(t, courseSvc, 1)

	_, err := moduleSvc.CreateModule(1, CreateModuleRequest{
		CourseID: courseID,
		Name:     "Broken",
		Sections: json.RawMessage(`[{"kind": "carousel"}]`),
	})
	assert.ErrorIs(t, err, util.ErrInvalidSections)
}

func TestCreateModuleRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	courseSvc := newCourseService(t, db)
	moduleSvc := newModuleService(t, db)
	courseID := createTestCourse(t, courseSvc, 1)

	_, err := moduleSvc.CreateModule(2, CreateModuleRequest{
		CourseID: courseID,
		Name:     "Intruder",
	})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestUpdateModule(t *testing.T) {
	db := newTestDB(t)
	courseSvc := newCourseService(t, db)
	moduleSvc := newModuleService(t, db)
	courseID := createTestCourse(t, courseSvc, 1)

	module, err := moduleSvc.CreateModule(1, CreateModuleRequest{
		CourseID: courseID,
		Name:     "Draft",
		Content:  "first pass",
	})
	require.NoError(t, err)

	updated, err := moduleSvc.UpdateModule(1, module.ID, UpdateModuleRequest{
		Name:    "Final",
		Content: "second pass",
		Media:   []string{"https://cdn.example.com/clip.mp4"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Name)
	assert.Equal(t, "second pass", updated.Content)
	assert.Equal(t, []string{"https://cdn.example.com/clip.mp4"}, []string(updated.Media))
}

func TestDeleteModule(t *testing.T) {
	db := newTestDB(t)
	courseSvc := newCourseService(t, db)
	moduleSvc := newModuleService(t, db)
	courseID := createTestCourse(t, courseSvc, 1)

	module, err := moduleSvc.CreateModule(1, CreateModuleRequest{
		CourseID: courseID,
		Name:     "Gone",
	})
	require.NoError(t, err)

	require.NoError(t, moduleSvc.DeleteModule(1, module.ID))

	_, err = moduleSvc.GetModule(module.ID)
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestReorderModules(t *testing.T) {
	db := newTestDB(t)
	courseSvc := newCourseService(t, db)
	moduleSvc := newModuleService(t, db)
	courseID := createTestCourse(t, courseSvc, 1)

	var ids []string
	for _, name := range []string{"A", "B", "C"} {
		m, err := moduleSvc.CreateModule(1, CreateModuleRequest{
			CourseID: courseID,
			Name:     name,
		})
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}

	require.NoError(t, moduleSvc.ReorderModules(1, courseID, []ModuleOrder{
		{ModuleID: ids[0], Index: 3},
		{ModuleID: ids[1], Index: 1},
		{ModuleID: ids[2], Index: 2},
	}))

	modules, err := moduleSvc.GetModulesByCourseID(courseID)
	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.Equal(t, "B", modules[0].Name)
	assert.Equal(t, "C", modules[1].Name)
	assert.Equal(t, "A", modules[2].Name)
}

func TestReorderModulesRejectsForeignModule(t *testing.T) {
	db := newTestDB(t)
	courseSvc := newCourseService(t, db)
	moduleSvc := newModuleService(t, db)
	courseID := createTestCourse(t, courseSvc, 1)

	other, err := courseSvc.CreateCourse(1, CreateCourseRequest{
		Name:       "Other",
		Categories: []string{"Web3"},
		Difficulty: "Beginner",
	})
	require.NoError(t, err)

	foreign, err := moduleSvc.CreateModule(1, CreateModuleRequest{
		CourseID: other.ID,
		Name:     "Elsewhere",
	})
	require.NoError(t, err)

	mine, err := moduleSvc.CreateModule(1, CreateModuleRequest{
		CourseID: courseID,
		Name:     "Mine",
	})
	require.NoError(t, err)

	err = moduleSvc.ReorderModules(1, courseID, []ModuleOrder{
		{ModuleID: mine.ID, Index: 2},
		{ModuleID: foreign.ID, Index: 1},
	})
	assert.ErrorIs(t, err, util.ErrModuleNotInCourse)

	// 整批回滚，己方模块的排序位不变
	got, err := moduleSvc.GetModule(mine.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Index)
}

func TestDuplicateModule(t *testing.T) {
	db := newTestDB(t)
	courseSvc := newCourseService(t, db)
	moduleSvc := newModuleService(t, db)
	courseID := createTestCourse(t, courseSvc, 1)

	original, err := moduleSvc.CreateModule(1, CreateModuleRequest{
		CourseID: courseID,
		Name:     "Source",
		Content:  "copy me",
		Media:    []string{"https://cdn.example.com/x.png"},
	})
	require.NoError(t, err)

	_, err = moduleSvc.CreateModule(1, CreateModuleRequest{
		CourseID: courseID,
		Name:     "Filler",
	})
	require.NoError(t, err)

	copied, err := moduleSvc.DuplicateModule(1, original.ID)
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, copied.ID)
	assert.Equal(t, "Source (Copy)", copied.Name)
	assert.Equal(t, "copy me", copied.Content)
	assert.Equal(t, 3, copied.Index, "copy lands after the current maximum")
	assert.Equal(t, []string(original.Media), []string(copied.Media))

	// 媒体是值拷贝，改副本不影响原件
	copied.Media[0] = "https://cdn.example.com/y.png"
	got, err := moduleSvc.GetModule(original.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/x.png", got.Media[0])
}
