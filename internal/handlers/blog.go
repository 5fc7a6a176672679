package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"org-site-backend/internal/auth"
	"org-site-backend/internal/model"
)

func isAdmin(c *gin.Context) bool {
	id, ok := auth.FromContext(c)
	return ok && id.IsAdmin()
}

// ListBlogs handles GET /api/blogs. Anonymous callers only see published
// posts; admins may filter by any status.
func (h *Handlers) ListBlogs(c *gin.Context) {
	page, pageSize := parsePagination(c)
	tag := c.Query("tag")

	status := model.ContentStatus(c.Query("status"))
	if !isAdmin(c) {
		status = model.ContentPublished
	}

	blogs, total, err := h.blogs.List(c.Request.Context(), status, tag, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]model.BlogResponse, 0, len(blogs))
	for i := range blogs {
		items = append(items, model.NewBlogResponse(&blogs[i]))
	}
	c.JSON(http.StatusOK, model.NewPagedResponse(items, total, page, pageSize))
}

// GetBlog handles GET /api/blogs/:slug. Reads by non-admins count one view;
// admin reads do not, so editors do not inflate the counter.
func (h *Handlers) GetBlog(c *gin.Context) {
	admin := isAdmin(c)

	blog, err := h.blogs.GetBySlug(c.Request.Context(), c.Param("slug"), !admin)
	if err != nil {
		writeError(c, err)
		return
	}
	if !admin && blog.Status != model.ContentPublished {
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Error:   "not_found",
			Message: "blog not found",
			Code:    http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, model.NewBlogResponse(blog))
}

// CreateBlog handles POST /api/admin/blogs
func (h *Handlers) CreateBlog(c *gin.Context) {
	var req model.BlogCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	id, _ := auth.FromContext(c)
	blog, err := h.blogs.Create(c.Request.Context(), req, id.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewBlogResponse(blog))
}

// UpdateBlog handles PUT /api/admin/blogs/:id
func (h *Handlers) UpdateBlog(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.BlogUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	blog, err := h.blogs.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewBlogResponse(blog))
}

// PublishBlog handles POST /api/admin/blogs/:id/publish
func (h *Handlers) PublishBlog(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	blog, err := h.blogs.Publish(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewBlogResponse(blog))
}

// ArchiveBlog handles POST /api/admin/blogs/:id/archive
func (h *Handlers) ArchiveBlog(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	blog, err := h.blogs.Archive(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewBlogResponse(blog))
}

// DeleteBlog handles DELETE /api/admin/blogs/:id
func (h *Handlers) DeleteBlog(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.blogs.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
