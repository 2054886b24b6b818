package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/sorare-listing-bot/internal/sorare"
)

// ListingsSource exposes the listings announced by the last poll cycle.
type ListingsSource interface {
	LastListings() (listings []sorare.Listing, completedAt time.Time, ok bool)
}

// ListingsHandler serves the last cycle's listings for inspection.
type ListingsHandler struct {
	source ListingsSource
}

// NewListingsHandler creates a new ListingsHandler.
func NewListingsHandler(src ListingsSource) *ListingsHandler {
	return &ListingsHandler{source: src}
}

// ListingView is a listing as served by the status server.
type ListingView struct {
	sorare.Listing
	URL string `json:"url"`
}

// LastListingsResponse is the body of GET /listings.
type LastListingsResponse struct {
	CompletedAt time.Time     `json:"completed_at"`
	Listings    []ListingView `json:"listings"`
}

// LastListings returns the listings of the most recent completed cycle, or
// 404 when no cycle has completed yet.
func (h *ListingsHandler) LastListings(c echo.Context) error {
	listings, completedAt, ok := h.source.LastListings()
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no completed cycle yet"})
	}

	resp := LastListingsResponse{
		CompletedAt: completedAt.UTC(),
		Listings:    make([]ListingView, 0, len(listings)),
	}
	for i := range listings {
		resp.Listings = append(resp.Listings, ListingView{
			Listing: listings[i],
			URL:     listings[i].URL(),
		})
	}

	return c.JSON(http.StatusOK, resp)
}
