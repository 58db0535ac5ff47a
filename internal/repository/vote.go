package repository

import (
	"errors"
	"time"

	"github.com/user/filmfest/internal/model"
	"gorm.io/gorm"
)

// ErrConcurrentVote 表示事务内的乐观校验失败：另一个写入者抢先改了同一张票
var ErrConcurrentVote = errors.New("vote was modified by a concurrent update")

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// FindByPair 查找某评委对某影片的投票，不存在时返回 nil
func (r *VoteRepository) FindByPair(movieID, juryID int) (*model.Vote, error) {
	var vote model.Vote
	err := r.db.Where("id_movie = ? AND id_user = ?", movieID, juryID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &vote, nil
}

// FindByID 根据 ID 查找投票，不存在时返回 nil
func (r *VoteRepository) FindByID(id int) (*model.Vote, error) {
	var vote model.Vote
	err := r.db.First(&vote, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &vote, nil
}

// CastOrUpdate 投票或改票
// 首次投票：创建记录，modification_count 为 0，不写历史。
// 改票：先把旧值快照进 vote_histories，再更新投票并把 modification_count 加一。
// 快照和更新在同一个事务里提交，失败时不会只落下其中一半。
// 更新语句带 modification_count 条件做乐观校验，撞上并发写入者时
// 返回 ErrConcurrentVote 而不是覆盖对方的修改。
func (r *VoteRepository) CastOrUpdate(movieID, juryID int, evaluation model.Evaluation, comments string) (*model.Vote, error) {
	var result *model.Vote

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Vote
		err := tx.Where("id_movie = ? AND id_user = ?", movieID, juryID).First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 首次投票
			now := time.Now()
			vote := &model.Vote{
				MovieID:           movieID,
				JuryID:            juryID,
				Evaluation:        evaluation,
				Comments:          comments,
				ModificationCount: 0,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := tx.Create(vote).Error; err != nil {
				// 唯一索引兜底：两个首投同时到达时只有一个能创建成功
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrConcurrentVote
				}
				return err
			}
			result = vote
			return nil
		}
		if err != nil {
			return err
		}

		// 改票：先快照旧值
		snapshot := &model.VoteHistory{
			VoteID:    existing.ID,
			MovieID:   existing.MovieID,
			JuryID:    existing.JuryID,
			Note:      existing.Evaluation,
			Comments:  existing.Comments,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(snapshot).Error; err != nil {
			return err
		}

		res := tx.Model(&model.Vote{}).
			Where("id_vote = ? AND modification_count = ?", existing.ID, existing.ModificationCount).
			Updates(map[string]interface{}{
				"evaluation":         evaluation,
				"comments":           comments,
				"modification_count": existing.ModificationCount + 1,
				"updated_at":         time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 回滚事务，快照也一并撤销
			return ErrConcurrentVote
		}

		existing.Evaluation = evaluation
		existing.Comments = comments
		existing.ModificationCount++
		result = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ListHistory 按时间顺序（最旧在前）列出一张票的改票历史
func (r *VoteRepository) ListHistory(voteID int) ([]*model.VoteHistory, error) {
	var history []*model.VoteHistory
	err := r.db.Where("id_vote = ?", voteID).
		Order("id_vote_history ASC").
		Find(&history).Error
	return history, err
}

// CountHistory 统计一张票的历史行数
func (r *VoteRepository) CountHistory(voteID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.VoteHistory{}).Where("id_vote = ?", voteID).Count(&count).Error
	return count, err
}

// ListByMovie 列出影片的全部当前投票
func (r *VoteRepository) ListByMovie(movieID int) ([]*model.Vote, error) {
	var votes []*model.Vote
	err := r.db.Where("id_movie = ?", movieID).Order("id_vote ASC").Find(&votes).Error
	return votes, err
}

// Count 全站投票总数
func (r *VoteRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Vote{}).Count(&count).Error
	return count, err
}
