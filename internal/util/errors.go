package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("该邮箱已被注册")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCourseNotFound      = errors.New("course not found")
	ErrModuleNotFound      = errors.New("module not found")
	ErrRankingNotFound     = errors.New("course ranking not found")
	ErrInvalidCategory     = errors.New("invalid course category")
	ErrModuleNotInCourse   = errors.New("module does not belong to course")
	ErrInvalidSections     = errors.New("invalid module sections")
	ErrMarketplaceDisabled = errors.New("marketplace gateway not configured")
)
