package repository

import (
	"errors"
	"time"

	"github.com/user/filmfest/internal/model"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create 建立指派关系
// 去重靠 (id_movie, id_user) 唯一索引，重复时返回 gorm.ErrDuplicatedKey，
// 并发请求下也只会有一行落库
func (r *AssignmentRepository) Create(movieID, juryID int) (*model.MovieJury, error) {
	mj := &model.MovieJury{
		MovieID:   movieID,
		JuryID:    juryID,
		CreatedAt: time.Now(),
	}
	if err := r.db.Create(mj).Error; err != nil {
		return nil, err
	}
	return mj, nil
}

// Remove 取消指派；目标不存在时也视为成功（幂等）
// 指派是投票资格的依据，撤销时连同该评委在这部影片上的投票和改票历史一起清掉
func (r *AssignmentRepository) Remove(movieID, juryID int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var vote model.Vote
		err := tx.Where("id_movie = ? AND id_user = ?", movieID, juryID).First(&vote).Error
		if err == nil {
			if err := tx.Where("id_vote = ?", vote.ID).Delete(&model.VoteHistory{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.Vote{}, vote.ID).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Where("id_movie = ? AND id_user = ?", movieID, juryID).
			Delete(&model.MovieJury{}).Error
	})
}

// Exists 检查指派关系是否存在
func (r *AssignmentRepository) Exists(movieID, juryID int) (bool, error) {
	var count int64
	err := r.db.Model(&model.MovieJury{}).
		Where("id_movie = ? AND id_user = ?", movieID, juryID).
		Count(&count).Error
	return count > 0, err
}

// ListJuriesFor 列出影片的全部评委
func (r *AssignmentRepository) ListJuriesFor(movieID int) ([]*model.User, error) {
	var users []*model.User
	err := r.db.Model(&model.User{}).
		Joins("JOIN movies_juries ON movies_juries.id_user = users.id_user").
		Where("movies_juries.id_movie = ?", movieID).
		Order("users.id_user ASC").
		Find(&users).Error
	return users, err
}

// ListMoviesFor 列出评委被指派的全部影片
func (r *AssignmentRepository) ListMoviesFor(juryID int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Model(&model.Movie{}).
		Joins("JOIN movies_juries ON movies_juries.id_movie = movies.id_movie").
		Where("movies_juries.id_user = ?", juryID).
		Order("movies.created_at ASC").
		Find(&movies).Error
	return movies, err
}
