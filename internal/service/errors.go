package service

import (
	"errors"

	"github.com/user/filmfest/internal/model"
)

// 评选流程的业务错误
// 全部在操作边界内收敛成哨兵值，由 HTTP 层映射成对用户可见的响应
var (
	ErrNotFound            = errors.New("目标不存在")
	ErrUnauthorized        = errors.New("当前角色无权执行该操作")
	ErrNotAssigned         = errors.New("评委未被指派到该影片")
	ErrDuplicateAssignment = errors.New("该评委已被指派到该影片")
	ErrInvalidStatus       = errors.New("无效的评选状态")
	ErrInvalidEvaluation   = errors.New("无效的评价值")
	ErrRoleMismatch        = errors.New("目标用户不是评委")
	ErrConcurrencyConflict = errors.New("检测到并发修改冲突")
	ErrMovieLocked         = errors.New("影片当前状态不允许修改内容")
)

// Actor 已认证的操作者（由认证层注入，服务层只检查角色）
type Actor struct {
	ID   int
	Role model.Role
}

// IsAdmin 是否管理员
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// IsJury 是否评委
func (a Actor) IsJury() bool {
	return a.Role == model.RoleJury
}
