package repository

import (
	"errors"
	"time"

	"github.com/user/filmfest/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create 创建影片（提交参赛），初始状态为 submitted
func (r *MovieRepository) Create(movie *model.Movie) error {
	now := time.Now()
	movie.SelectionStatus = model.StatusSubmitted
	movie.StatusChangedAt = now
	movie.CreatedAt = now
	movie.UpdatedAt = now
	return r.db.Create(movie).Error
}

// FindByID 根据 ID 查找影片，不存在时返回 nil
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// ListByProducer 列出某制片人的全部影片
func (r *MovieRepository) ListByProducer(producerID int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Where("id_user = ?", producerID).
		Order("created_at DESC").
		Find(&movies).Error
	return movies, err
}

// ListByStatus 按评选状态列出影片；status 为空时列出全部
func (r *MovieRepository) ListByStatus(status model.SelectionStatus, limit, offset int) ([]*model.Movie, error) {
	var movies []*model.Movie
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("selection_status = ?", status)
	}
	err := q.Find(&movies).Error
	return movies, err
}

// ListByStatuses 列出处于任一给定状态的影片（公开片单用）
func (r *MovieRepository) ListByStatuses(statuses []model.SelectionStatus) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Where("selection_status IN ?", statuses).
		Order("created_at ASC").
		Find(&movies).Error
	return movies, err
}

// UpdateContent 更新影片内容字段（标题、简介、媒体信息），不触碰流程字段
func (r *MovieRepository) UpdateContent(movie *model.Movie) error {
	return r.db.Model(&model.Movie{}).
		Where("id_movie = ?", movie.ID).
		Updates(map[string]interface{}{
			"title":       movie.Title,
			"description": movie.Description,
			"year":        movie.Year,
			"duration":    movie.Duration,
			"poster":      movie.Poster,
			"video_url":   movie.VideoURL,
			"genres":      movie.Genres,
			"updated_at":  time.Now(),
		}).Error
}

// UpdateStatus 更新评选状态并记录变更时间
func (r *MovieRepository) UpdateStatus(id int, status model.SelectionStatus) error {
	now := time.Now()
	return r.db.Model(&model.Movie{}).
		Where("id_movie = ?", id).
		Updates(map[string]interface{}{
			"selection_status":  status,
			"status_changed_at": now,
			"updated_at":        now,
		}).Error
}

// UpdateComments 更新评语字段；传 nil 表示不改该字段
func (r *MovieRepository) UpdateComments(id int, juryComment, adminComment *string) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if juryComment != nil {
		updates["jury_comment"] = *juryComment
	}
	if adminComment != nil {
		updates["admin_comment"] = *adminComment
	}
	return r.db.Model(&model.Movie{}).Where("id_movie = ?", id).Updates(updates).Error
}

// Delete 删除影片并级联清理它的投票、改票历史和评委指派
// 整个清理在一个事务里完成，不会留下孤儿行
func (r *MovieRepository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_movie = ?", id).Delete(&model.VoteHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id_movie = ?", id).Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id_movie = ?", id).Delete(&model.MovieJury{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Movie{}, id).Error
	})
}

// CountByStatus 统计各评选状态的影片数
func (r *MovieRepository) CountByStatus() (map[model.SelectionStatus]int64, error) {
	type row struct {
		SelectionStatus model.SelectionStatus `gorm:"column:selection_status"`
		Count           int64                 `gorm:"column:count"`
	}
	var rows []row
	err := r.db.Model(&model.Movie{}).
		Select("selection_status, COUNT(*) AS count").
		Group("selection_status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.SelectionStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.SelectionStatus] = row.Count
	}
	return counts, nil
}
