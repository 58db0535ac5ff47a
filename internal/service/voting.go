package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/user/filmfest/internal/model"
	"github.com/user/filmfest/internal/repository"
)

// VotingService 投票台账
// 改票是"读旧值-写快照-写新值"的复合操作，必须按 (影片, 评委) 维度串行化：
// 数据库事务保证快照和新值同时落库，进程内的按键互斥锁保证同一组合
// 不会有两个事务交错执行（参见 CastOrUpdate 的乐观校验兜底）
type VotingService struct {
	repos *repository.Repositories

	mu    sync.Mutex
	locks map[string]*sync.Mutex // 每个 (影片, 评委) 组合一把锁
}

func NewVotingService(repos *repository.Repositories) *VotingService {
	return &VotingService{
		repos: repos,
		locks: make(map[string]*sync.Mutex),
	}
}

// pairLock 取某 (影片, 评委) 组合的互斥锁，没有则创建
func (s *VotingService) pairLock(movieID, juryID int) *sync.Mutex {
	key := fmt.Sprintf("%d:%d", movieID, juryID)

	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// CastOrUpdate 投票或改票（仅被指派的评委本人）
// 首次投票创建记录；改票先快照旧值再更新，modification_count 加一
func (s *VotingService) CastOrUpdate(movieID, juryID int, evaluation, comments string, actor Actor) (*model.Vote, error) {
	if !actor.IsJury() || actor.ID != juryID {
		return nil, ErrUnauthorized
	}

	eval, ok := model.ParseEvaluation(evaluation)
	if !ok {
		return nil, ErrInvalidEvaluation
	}

	movie, err := s.repos.Movie.FindByID(movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrNotFound
	}

	// 未被指派不能投票，什么都不写
	assigned, err := s.repos.Assignment.Exists(movieID, juryID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrNotAssigned
	}

	lock := s.pairLock(movieID, juryID)
	lock.Lock()
	defer lock.Unlock()

	vote, err := s.repos.Vote.CastOrUpdate(movieID, juryID, eval, comments)
	if err != nil {
		if errors.Is(err, repository.ErrConcurrentVote) {
			return nil, ErrConcurrencyConflict
		}
		return nil, err
	}

	return vote, nil
}

// VoteFor 查询某评委对某影片的当前投票，未投票时返回 nil
func (s *VotingService) VoteFor(movieID, juryID int) (*model.Vote, error) {
	return s.repos.Vote.FindByPair(movieID, juryID)
}

// History 按时间顺序返回一张票的改票历史（最旧在前）
func (s *VotingService) History(voteID int) ([]*model.VoteHistory, error) {
	vote, err := s.repos.Vote.FindByID(voteID)
	if err != nil {
		return nil, err
	}
	if vote == nil {
		return nil, ErrNotFound
	}
	return s.repos.Vote.ListHistory(voteID)
}
