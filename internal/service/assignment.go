package service

import (
	"errors"

	"github.com/user/filmfest/internal/model"
	"github.com/user/filmfest/internal/repository"
	"gorm.io/gorm"
)

// AssignmentService 维护影片与评委的多对多指派关系
// 指派是评委投票资格的唯一依据；Movie 上遗留的 assigned_jury_id
// 字段已废弃，这里从不写它
type AssignmentService struct {
	repos *repository.Repositories
}

func NewAssignmentService(repos *repository.Repositories) *AssignmentService {
	return &AssignmentService{repos: repos}
}

// Assign 把评委指派到影片（仅管理员）
// 重复指派由数据库唯一索引拦下并映射为 ErrDuplicateAssignment
func (s *AssignmentService) Assign(movieID, juryID int, actor Actor) (*model.MovieJury, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}

	movie, err := s.repos.Movie.FindByID(movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrNotFound
	}

	user, err := s.repos.User.FindByID(juryID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if user.Role != model.RoleJury {
		return nil, ErrRoleMismatch
	}

	mj, err := s.repos.Assignment.Create(movieID, juryID)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAssignment
		}
		return nil, err
	}

	// 首位评委到位后，submitted 的影片进入 assigned 状态
	if movie.SelectionStatus == model.StatusSubmitted {
		if err := s.repos.Movie.UpdateStatus(movieID, model.StatusAssigned); err != nil {
			return nil, err
		}
	}

	return mj, nil
}

// Unassign 取消指派（仅管理员）；指派不存在时也算成功，幂等
func (s *AssignmentService) Unassign(movieID, juryID int, actor Actor) error {
	if !actor.IsAdmin() {
		return ErrUnauthorized
	}
	return s.repos.Assignment.Remove(movieID, juryID)
}

// ListJuriesFor 列出影片的评委
func (s *AssignmentService) ListJuriesFor(movieID int) ([]*model.User, error) {
	movie, err := s.repos.Movie.FindByID(movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrNotFound
	}
	return s.repos.Assignment.ListJuriesFor(movieID)
}

// ListMoviesFor 列出评委名下的影片
func (s *AssignmentService) ListMoviesFor(juryID int) ([]*model.Movie, error) {
	return s.repos.Assignment.ListMoviesFor(juryID)
}
