package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/models"
)

// AnnouncementRepository defines data operations for announcements.
type AnnouncementRepository interface {
	ListActive(ctx context.Context, audiences []string) ([]models.Announcement, error)
	GetByID(ctx context.Context, id uint) (models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) error
	Update(ctx context.Context, announcement *models.Announcement) error
	MarkRead(ctx context.Context, announcementID, userID uint, at time.Time) error
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository instantiates the repository.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) ListActive(ctx context.Context, audiences []string) ([]models.Announcement, error) {
	query := r.db.WithContext(ctx).Model(&models.Announcement{}).
		Preload("Reads").
		Where("is_active = ?", true)

	if len(audiences) > 0 {
		query = query.Where("target_audience IN ?", audiences)
	}

	var announcements []models.Announcement
	if err := query.Order("created_at DESC").Find(&announcements).Error; err != nil {
		return nil, err
	}

	return announcements, nil
}

func (r *announcementRepository) GetByID(ctx context.Context, id uint) (models.Announcement, error) {
	var announcement models.Announcement
	if err := r.db.WithContext(ctx).Preload("Reads").First(&announcement, id).Error; err != nil {
		return models.Announcement{}, err
	}

	return announcement, nil
}

func (r *announcementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *announcementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Save(announcement).Error
}

func (r *announcementRepository) MarkRead(ctx context.Context, announcementID, userID uint, at time.Time) error {
	var existing models.AnnouncementRead
	err := r.db.WithContext(ctx).
		Where("announcement_id = ?", announcementID).
		Where("user_id = ?", userID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	read := models.AnnouncementRead{
		AnnouncementID: announcementID,
		UserID:         userID,
		ReadAt:         at,
	}
	return r.db.WithContext(ctx).Create(&read).Error
}
