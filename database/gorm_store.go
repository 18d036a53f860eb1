// Package database provides a GORM-backed BlogStore for deployments that
// want the collection in SQLite instead of the site's data file. It keeps
// the same whole-collection contract as the file store: LoadAll reads the
// full table, SaveAll replaces it in one transaction.
package database

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/setidure/blog-api/models"
	"github.com/setidure/blog-api/store"
)

// blogRecord is the table row mirror of models.BlogPost. Tags are stored as
// a JSON column via the GORM serializer.
type blogRecord struct {
	ID          int      `gorm:"primaryKey;autoIncrement:false"`
	Title       string   `gorm:"type:text;not null"`
	Slug        string   `gorm:"type:text;not null;uniqueIndex"`
	Excerpt     string   `gorm:"type:text;not null"`
	Content     string   `gorm:"type:text;not null"`
	Author      string   `gorm:"type:text;not null"`
	PublishDate string   `gorm:"type:text;not null"`
	ReadTime    string   `gorm:"type:text;not null"`
	Tags        []string `gorm:"serializer:json"`
	Featured    bool     `gorm:"not null"`
	Image       string   `gorm:"type:text"`
}

func (blogRecord) TableName() string { return "blog_posts" }

type GormStore struct {
	db *gorm.DB
}

// Open connects to the SQLite database at path and ensures the schema exists.
func Open(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if err := db.AutoMigrate(&blogRecord{}); err != nil {
		return nil, fmt.Errorf("migrating blog_posts table: %w", err)
	}
	return &GormStore{db: db}, nil
}

// NewGormStore wraps an existing GORM connection. Used by tests.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&blogRecord{}); err != nil {
		return nil, fmt.Errorf("migrating blog_posts table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) LoadAll(ctx context.Context) ([]models.BlogPost, error) {
	var records []blogRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrRead, err)
	}

	posts := make([]models.BlogPost, len(records))
	for i, rec := range records {
		posts[i] = rec.toPost()
	}
	return posts, nil
}

func (s *GormStore) SaveAll(ctx context.Context, posts []models.BlogPost) error {
	records := make([]blogRecord, len(posts))
	for i, post := range posts {
		records[i] = toRecord(post)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&blogRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	return nil
}

func (r blogRecord) toPost() models.BlogPost {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.BlogPost{
		ID:          r.ID,
		Title:       r.Title,
		Slug:        r.Slug,
		Excerpt:     r.Excerpt,
		Content:     r.Content,
		Author:      r.Author,
		PublishDate: r.PublishDate,
		ReadTime:    r.ReadTime,
		Tags:        tags,
		Featured:    r.Featured,
		Image:       r.Image,
	}
}

func toRecord(p models.BlogPost) blogRecord {
	return blogRecord{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		Author:      p.Author,
		PublishDate: p.PublishDate,
		ReadTime:    p.ReadTime,
		Tags:        p.Tags,
		Featured:    p.Featured,
		Image:       p.Image,
	}
}
