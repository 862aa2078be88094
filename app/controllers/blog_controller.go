package controllers

import (
	"net/http"

	"realestate/app/models"
	"realestate/app/services"
)

// DefaultBlogLimit is the page size when the query names none.
const DefaultBlogLimit = 6

// BlogController handles HTTP requests for blogs
type BlogController struct {
	blogService *services.BlogService
}

// NewBlogController creates a new BlogController
func NewBlogController(blogService *services.BlogService) *BlogController {
	return &BlogController{blogService: blogService}
}

// Index handles GET /api/blogs
func (bc *BlogController) Index(w http.ResponseWriter, r *http.Request) {
	page := pageParams(r, DefaultBlogLimit)
	res, err := bc.blogService.List(r.Context(), page)
	if err != nil {
		sendError(w, r, "Blog", err)
		return
	}
	sendJSON(w, http.StatusOK, models.BlogsResponse{
		Blogs: res.Items,
		Total: res.Total,
		Page:  res.Page,
		Limit: res.Limit,
	})
}

// Create handles POST /api/blogs
func (bc *BlogController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.BlogInput
	if err := decodeBody(w, r, &in); err != nil {
		sendError(w, r, "Blog", err)
		return
	}
	blog, err := bc.blogService.Create(r.Context(), &in)
	if err != nil {
		sendError(w, r, "Blog", err)
		return
	}
	sendJSON(w, http.StatusCreated, models.BlogResponse{Blog: blog})
}

// Update handles PUT /api/blogs
func (bc *BlogController) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.BlogPatch
	if err := decodeBody(w, r, &patch); err != nil {
		sendError(w, r, "Blog", err)
		return
	}
	blog, err := bc.blogService.Update(r.Context(), &patch)
	if err != nil {
		sendError(w, r, "Blog", err)
		return
	}
	sendJSON(w, http.StatusOK, models.BlogResponse{Blog: blog})
}

// Delete handles DELETE /api/blogs
func (bc *BlogController) Delete(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteRequest
	if err := decodeBody(w, r, &req); err != nil {
		sendError(w, r, "Blog", err)
		return
	}
	if err := bc.blogService.Delete(r.Context(), &req); err != nil {
		sendError(w, r, "Blog", err)
		return
	}
	sendJSON(w, http.StatusOK, models.MessageResponse{Message: "Blog deleted successfully"})
}
