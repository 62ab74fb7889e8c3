package repository

import (
	"errors"
	"time"

	gemdomain "thoughtfolio-backend/internal/gem/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormContextRepository struct {
	db *gorm.DB
}

func NewContextRepository(db *gorm.DB) ContextRepository {
	return &gormContextRepository{db: db}
}

func (r *gormContextRepository) Create(c *gemdomain.Context) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return r.db.Create(c).Error
}

func (r *gormContextRepository) CreateDefaults(userID string, contexts []gemdomain.Context) error {
	now := time.Now()
	rows := make([]gemdomain.Context, 0, len(contexts))
	for i, c := range contexts {
		c.ID = uuid.New().String()
		c.UserID = userID
		c.IsDefault = true
		c.SortOrder = i
		if c.ThoughtLimit == 0 {
			c.ThoughtLimit = gemdomain.DefaultThoughtLimit
		}
		c.CreatedAt = now
		c.UpdatedAt = now
		rows = append(rows, c)
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "slug"}},
		DoNothing: true,
	}).Create(&rows).Error
}

func (r *gormContextRepository) FindByID(userID, id string) (*gemdomain.Context, error) {
	return r.findOne("id = ? AND user_id = ?", id, userID)
}

func (r *gormContextRepository) FindBySlug(userID, slug string) (*gemdomain.Context, error) {
	return r.findOne("slug = ? AND user_id = ?", slug, userID)
}

func (r *gormContextRepository) findOne(query string, args ...interface{}) (*gemdomain.Context, error) {
	var c gemdomain.Context
	if err := r.db.Where(query, args...).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *gormContextRepository) List(userID string) ([]gemdomain.Context, error) {
	var contexts []gemdomain.Context
	err := r.db.Where("user_id = ?", userID).Order("sort_order ASC, created_at ASC").Find(&contexts).Error
	return contexts, err
}

func (r *gormContextRepository) Update(c *gemdomain.Context) error {
	c.UpdatedAt = time.Now()
	return r.db.Save(c).Error
}

func (r *gormContextRepository) Delete(userID, id string) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&gemdomain.Context{}).Error
}
