package service

import (
	"github.com/user/filmfest/internal/model"
	"github.com/user/filmfest/internal/repository"
)

// SelectionService 评选状态机
// 状态机是宽松的：只校验目标状态是合法枚举值，不限制状态间的跳转路径，
// 管理员是唯一的仲裁者（比如可以把 refused 直接改回 candidate）
type SelectionService struct {
	repos *repository.Repositories
}

func NewSelectionService(repos *repository.Repositories) *SelectionService {
	return &SelectionService{repos: repos}
}

// Transition 变更影片的评选状态（仅管理员）
func (s *SelectionService) Transition(movieID int, target string, actor Actor) (*model.Movie, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}

	status, ok := model.ParseSelectionStatus(target)
	if !ok {
		return nil, ErrInvalidStatus
	}

	movie, err := s.repos.Movie.FindByID(movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrNotFound
	}

	if err := s.repos.Movie.UpdateStatus(movieID, status); err != nil {
		return nil, err
	}

	return s.repos.Movie.FindByID(movieID)
}

// TransitionResult 批量变更中单部影片的结果
type TransitionResult struct {
	MovieID int    `json:"movie_id"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

// BulkTransition 把同一目标状态应用到一批影片
// 不保证批次原子性：部分失败时已成功的不回滚，逐条结果返回给调用方
func (s *SelectionService) BulkTransition(movieIDs []int, target string, actor Actor) []TransitionResult {
	results := make([]TransitionResult, 0, len(movieIDs))
	for _, id := range movieIDs {
		result := TransitionResult{MovieID: id, OK: true}
		if _, err := s.Transition(id, target, actor); err != nil {
			result.OK = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

// SetComments 更新影片评语（仅管理员）；nil 表示不改对应字段
func (s *SelectionService) SetComments(movieID int, juryComment, adminComment *string, actor Actor) (*model.Movie, error) {
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

	if err := s.repos.Movie.UpdateComments(movieID, juryComment, adminComment); err != nil {
		return nil, err
	}

	return s.repos.Movie.FindByID(movieID)
}

// DeleteMovie 删除影片（仅管理员），级联清理投票、历史和指派
func (s *SelectionService) DeleteMovie(movieID int, actor Actor) error {
	if !actor.IsAdmin() {
		return ErrUnauthorized
	}

	movie, err := s.repos.Movie.FindByID(movieID)
	if err != nil {
		return err
	}
	if movie == nil {
		return ErrNotFound
	}

	return s.repos.Movie.Delete(movieID)
}
