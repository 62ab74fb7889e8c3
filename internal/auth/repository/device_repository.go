package repository

import (
	"time"

	authdomain "thoughtfolio-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type deviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{db: db}
}

// Register upserts on token so a device that changes hands moves to the new user
func (r *deviceRepository) Register(userID, token, deviceInfo string) error {
	now := time.Now()
	device := &authdomain.Device{
		ID:         uuid.New().String(),
		UserID:     userID,
		Token:      token,
		DeviceInfo: deviceInfo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "device_info", "updated_at"}),
	}).Create(device).Error
}

func (r *deviceRepository) ListByUser(userID string) ([]authdomain.Device, error) {
	var devices []authdomain.Device
	if err := r.db.Where("user_id = ?", userID).Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *deviceRepository) Unregister(userID, token string) error {
	return r.db.Where("user_id = ? AND token = ?", userID, token).Delete(&authdomain.Device{}).Error
}

// DeleteByToken removes a token the push provider reported as invalid
func (r *deviceRepository) DeleteByToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&authdomain.Device{}).Error
}
