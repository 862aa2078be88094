package controllers

import (
	"net/http"

	"realestate/app/models"
	"realestate/app/services"
)

// DefaultListingLimit is the page size when the query names none.
const DefaultListingLimit = 10

// ListingController handles HTTP requests for listings
type ListingController struct {
	listingService *services.ListingService
}

// NewListingController creates a new ListingController
func NewListingController(listingService *services.ListingService) *ListingController {
	return &ListingController{listingService: listingService}
}

// Index handles GET /api/listings
func (lc *ListingController) Index(w http.ResponseWriter, r *http.Request) {
	page := pageParams(r, DefaultListingLimit)
	res, err := lc.listingService.List(r.Context(), page)
	if err != nil {
		sendError(w, r, "Listing", err)
		return
	}
	sendJSON(w, http.StatusOK, models.ListingsResponse{
		Listings: res.Items,
		Total:    res.Total,
		Page:     res.Page,
		Limit:    res.Limit,
	})
}

// Create handles POST /api/listings
func (lc *ListingController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ListingInput
	if err := decodeBody(w, r, &in); err != nil {
		sendError(w, r, "Listing", err)
		return
	}
	listing, err := lc.listingService.Create(r.Context(), &in)
	if err != nil {
		sendError(w, r, "Listing", err)
		return
	}
	sendJSON(w, http.StatusCreated, models.ListingResponse{Listing: listing})
}

// Update handles PUT /api/listings
func (lc *ListingController) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.ListingPatch
	if err := decodeBody(w, r, &patch); err != nil {
		sendError(w, r, "Listing", err)
		return
	}
	listing, err := lc.listingService.Update(r.Context(), &patch)
	if err != nil {
		sendError(w, r, "Listing", err)
		return
	}
	sendJSON(w, http.StatusOK, models.ListingResponse{Listing: listing})
}

// Delete handles DELETE /api/listings
func (lc *ListingController) Delete(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteRequest
	if err := decodeBody(w, r, &req); err != nil {
		sendError(w, r, "Listing", err)
		return
	}
	if err := lc.listingService.Delete(r.Context(), &req); err != nil {
		sendError(w, r, "Listing", err)
		return
	}
	sendJSON(w, http.StatusOK, models.MessageResponse{Message: "Listing deleted successfully"})
}
