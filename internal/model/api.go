package model

import "time"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Scheduler string    `json:"scheduler"`
}

// PagedResponse wraps paginated list results.
type PagedResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int64       `json:"total_pages"`
}

// NewPagedResponse builds the pagination envelope.
func NewPagedResponse(items interface{}, total int64, page, pageSize int) PagedResponse {
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return PagedResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// SubscribeRequest represents a newsletter subscribe/unsubscribe request body
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UnsubscribeRequest accepts either an email or an unsubscribe token.
type UnsubscribeRequest struct {
	Email string `json:"email,omitempty"`
	Token string `json:"token,omitempty"`
}

// SubscriptionStatus is the uniform response shape for subscribe/status
// calls. The shape is identical whether or not the email has ever been
// seen, so the endpoint cannot be used to enumerate known addresses.
type SubscriptionStatus struct {
	Subscribed   bool       `json:"subscribed"`
	Email        string     `json:"email"`
	SubscribedAt *time.Time `json:"subscribed_at"`
}

// NewsletterCreateRequest represents the request body for creating a newsletter
type NewsletterCreateRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// NewsletterScheduleRequest represents the request body for scheduling a send
type NewsletterScheduleRequest struct {
	SendAt time.Time `json:"send_at" binding:"required"`
}

// TopicRequestCreate represents the request body for a newsletter topic request
type TopicRequestCreate struct {
	Email       string `json:"email" binding:"required,email"`
	Topic       string `json:"topic" binding:"required"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// TopicRequestStatusUpdate represents the request body for reviewing a topic request
type TopicRequestStatusUpdate struct {
	Status RequestStatus `json:"status" binding:"required"`
}

// BlogCreateRequest represents the request body for creating a blog post
type BlogCreateRequest struct {
	Title   string        `json:"title" binding:"required"`
	Content string        `json:"content" binding:"required"`
	Slug    string        `json:"slug,omitempty"`
	Excerpt string        `json:"excerpt,omitempty"`
	Tags    []string      `json:"tags,omitempty"`
	Status  ContentStatus `json:"status,omitempty"`
}

// BlogUpdateRequest represents the request body for updating a blog post
type BlogUpdateRequest struct {
	Title   *string        `json:"title,omitempty"`
	Content *string        `json:"content,omitempty"`
	Slug    *string        `json:"slug,omitempty"`
	Excerpt *string        `json:"excerpt,omitempty"`
	Tags    []string       `json:"tags,omitempty"`
	Status  *ContentStatus `json:"status,omitempty"`
}

// BlogResponse represents the response structure for blog posts
type BlogResponse struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Content     string        `json:"content"`
	Excerpt     string        `json:"excerpt,omitempty"`
	Tags        []string      `json:"tags"`
	AuthorID    uint          `json:"author_id"`
	Status      ContentStatus `json:"status"`
	ViewCount   int           `json:"view_count"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewBlogResponse converts a Blog into its response shape.
func NewBlogResponse(b *Blog) BlogResponse {
	return BlogResponse{
		ID:          b.ID,
		Title:       b.Title,
		Slug:        b.Slug,
		Content:     b.Content,
		Excerpt:     b.Excerpt,
		Tags:        b.TagList(),
		AuthorID:    b.AuthorID,
		Status:      b.Status,
		ViewCount:   b.ViewCount,
		PublishedAt: b.PublishedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ProjectCreateRequest represents the request body for creating a project
type ProjectCreateRequest struct {
	Name         string        `json:"name" binding:"required"`
	Slug         string        `json:"slug,omitempty"`
	Description  string        `json:"description,omitempty"`
	Content      string        `json:"content,omitempty"`
	GithubURL    string        `json:"github_url,omitempty"`
	DemoURL      string        `json:"demo_url,omitempty"`
	ThumbnailURL string        `json:"thumbnail_url,omitempty"`
	TechStack    []string      `json:"tech_stack,omitempty"`
	Category     string        `json:"category,omitempty"`
	Status       ContentStatus `json:"status,omitempty"`
}

// ProjectUpdateRequest represents the request body for updating a project
type ProjectUpdateRequest struct {
	Name         *string        `json:"name,omitempty"`
	Slug         *string        `json:"slug,omitempty"`
	Description  *string        `json:"description,omitempty"`
	Content      *string        `json:"content,omitempty"`
	GithubURL    *string        `json:"github_url,omitempty"`
	DemoURL      *string        `json:"demo_url,omitempty"`
	ThumbnailURL *string        `json:"thumbnail_url,omitempty"`
	TechStack    []string       `json:"tech_stack,omitempty"`
	Category     *string        `json:"category,omitempty"`
	Status       *ContentStatus `json:"status,omitempty"`
}

// ActivityCreateRequest represents the request body for creating an activity
type ActivityCreateRequest struct {
	Title        string       `json:"title" binding:"required"`
	Description  string       `json:"description" binding:"required"`
	ActivityDate time.Time    `json:"activity_date" binding:"required"`
	Type         ActivityType `json:"type" binding:"required"`
	Participants *int         `json:"participants,omitempty"`
	Location     string       `json:"location,omitempty"`
	Images       []string     `json:"images,omitempty"`
}

// ActivityUpdateRequest represents the request body for updating an activity
type ActivityUpdateRequest struct {
	Title        *string       `json:"title,omitempty"`
	Description  *string       `json:"description,omitempty"`
	ActivityDate *time.Time    `json:"activity_date,omitempty"`
	Type         *ActivityType `json:"type,omitempty"`
	Participants *int          `json:"participants,omitempty"`
	Location     *string       `json:"location,omitempty"`
	Images       []string      `json:"images,omitempty"`
}
