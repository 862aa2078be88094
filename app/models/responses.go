package models

// Response bodies shared by the HTTP handlers and the client.

type ListingsResponse struct {
	Listings []*Listing `json:"listings"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	Limit    int        `json:"limit"`
}

type BlogsResponse struct {
	Blogs []*Blog `json:"blogs"`
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}

type ContactsResponse struct {
	Contacts []*Contact `json:"contacts"`
}

type ListingResponse struct {
	Listing *Listing `json:"listing"`
}

type BlogResponse struct {
	Blog *Blog `json:"blog"`
}

type ContactResponse struct {
	Contact *Contact `json:"contact"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
