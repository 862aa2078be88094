package controllers

import (
	"net/http"

	"realestate/app/models"
	"realestate/app/services"
)

// ContactController handles HTTP requests for the contact card
type ContactController struct {
	contactService *services.ContactService
}

// NewContactController creates a new ContactController
func NewContactController(contactService *services.ContactService) *ContactController {
	return &ContactController{contactService: contactService}
}

// Index handles GET /api/contact
func (cc *ContactController) Index(w http.ResponseWriter, r *http.Request) {
	contacts, err := cc.contactService.List(r.Context())
	if err != nil {
		sendError(w, r, "Contact", err)
		return
	}
	sendJSON(w, http.StatusOK, models.ContactsResponse{Contacts: contacts})
}

// Create handles POST /api/contact
func (cc *ContactController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ContactInput
	if err := decodeBody(w, r, &in); err != nil {
		sendError(w, r, "Contact", err)
		return
	}
	contact, err := cc.contactService.Create(r.Context(), &in)
	if err != nil {
		sendError(w, r, "Contact", err)
		return
	}
	sendJSON(w, http.StatusCreated, models.ContactResponse{Contact: contact})
}

// Update handles PUT /api/contact
func (cc *ContactController) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.ContactPatch
	if err := decodeBody(w, r, &patch); err != nil {
		sendError(w, r, "Contact", err)
		return
	}
	contact, err := cc.contactService.Update(r.Context(), &patch)
	if err != nil {
		sendError(w, r, "Contact", err)
		return
	}
	sendJSON(w, http.StatusOK, models.ContactResponse{Contact: contact})
}

// Delete handles DELETE /api/contact
func (cc *ContactController) Delete(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteRequest
	if err := decodeBody(w, r, &req); err != nil {
		sendError(w, r, "Contact", err)
		return
	}
	if err := cc.contactService.Delete(r.Context(), &req); err != nil {
		sendError(w, r, "Contact", err)
		return
	}
	sendJSON(w, http.StatusOK, models.MessageResponse{Message: "Contact deleted successfully"})
}
