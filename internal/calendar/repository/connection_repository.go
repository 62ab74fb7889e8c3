package repository

import (
	"errors"
	"time"

	"thoughtfolio-backend/internal/calendar/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type connectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) FindByUser(userID string) (*domain.CalendarConnection, error) {
	var conn domain.CalendarConnection
	if err := r.db.Where("user_id = ?", userID).First(&conn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conn, nil
}

func (r *connectionRepository) Save(conn *domain.CalendarConnection) error {
	now := time.Now()
	conn.UpdatedAt = now
	if conn.ID == "" {
		conn.ID = uuid.New().String()
		conn.CreatedAt = now
		return r.db.Create(conn).Error
	}
	return r.db.Save(conn).Error
}

func (r *connectionRepository) ListActive() ([]domain.CalendarConnection, error) {
	var conns []domain.CalendarConnection
	err := r.db.Where("is_active = ?", true).Find(&conns).Error
	return conns, err
}

func (r *connectionRepository) Delete(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.CalendarEvent{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&domain.CalendarConnection{}).Error
	})
}
