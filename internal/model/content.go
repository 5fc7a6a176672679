package model

import (
	"strings"
	"time"
)

// ContentStatus is the publication state shared by blogs and projects.
type ContentStatus string

const (
	ContentDraft     ContentStatus = "draft"
	ContentPublished ContentStatus = "published"
	ContentArchived  ContentStatus = "archived"
)

// Blog represents a blog post.
type Blog struct {
	ID          uint          `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string        `json:"title" gorm:"type:varchar(200);not null;index"`
	Slug        string        `json:"slug" gorm:"type:varchar(250);not null;uniqueIndex"`
	Content     string        `json:"content" gorm:"type:text;not null"`
	Excerpt     string        `json:"excerpt,omitempty" gorm:"type:varchar(500)"`
	Tags        string        `json:"-" gorm:"type:varchar(500)"`
	AuthorID    uint          `json:"author_id" gorm:"not null;index"`
	Status      ContentStatus `json:"status" gorm:"type:varchar(20);not null;default:draft;index:idx_blog_status_created"`
	ViewCount   int           `json:"view_count" gorm:"not null;default:0"`
	PublishedAt *time.Time    `json:"published_at,omitempty" gorm:"index"`
	CreatedAt   time.Time     `json:"created_at" gorm:"index:idx_blog_status_created"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName specifies the table name for Blog
func (Blog) TableName() string {
	return "blogs"
}

// TagList splits the comma-joined tags column into a list.
func (b *Blog) TagList() []string {
	if b.Tags == "" {
		return nil
	}
	return strings.Split(b.Tags, ",")
}

// SetTags joins a tag list into the tags column.
func (b *Blog) SetTags(tags []string) {
	b.Tags = strings.Join(tags, ",")
}

// Project represents a showcased project.
type Project struct {
	ID           uint          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string        `json:"name" gorm:"type:varchar(200);not null;index"`
	Slug         string        `json:"slug" gorm:"type:varchar(250);not null;uniqueIndex"`
	Description  string        `json:"description,omitempty" gorm:"type:varchar(500)"`
	Content      string        `json:"content,omitempty" gorm:"type:text"`
	GithubURL    string        `json:"github_url,omitempty" gorm:"type:varchar(500)"`
	DemoURL      string        `json:"demo_url,omitempty" gorm:"type:varchar(500)"`
	ThumbnailURL string        `json:"thumbnail_url,omitempty" gorm:"type:varchar(500)"`
	TechStack    StringList    `json:"tech_stack,omitempty" gorm:"type:text"`
	Category     string        `json:"category,omitempty" gorm:"type:varchar(100);index"`
	Status       ContentStatus `json:"status" gorm:"type:varchar(20);not null;default:draft;index:idx_project_status_created"`
	ViewCount    int           `json:"view_count" gorm:"not null;default:0"`
	PublishedAt  *time.Time    `json:"published_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at" gorm:"index:idx_project_status_created"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}
