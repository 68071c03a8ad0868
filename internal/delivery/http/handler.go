package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/costlens/backend/internal/domain"
	"github.com/costlens/backend/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LookupService is the use case behind the cost of living endpoints
type LookupService interface {
	Lookup(ctx context.Context, request domain.LookupRequest) (*domain.Report, error)
	Catalog() *domain.Catalog
}

// LookupObserver is notified of every finished lookup request
type LookupObserver interface {
	ObserveLookup(status string)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service  LookupService
	observer LookupObserver
}

// NewHandler creates a new HTTP handler. A nil service makes the lookup
// endpoints answer 503.
func NewHandler(service LookupService) *Handler {
	return &Handler{service: service}
}

// SetObserver registers an observer for lookup outcomes
func (h *Handler) SetObserver(observer LookupObserver) {
	h.observer = observer
}

// ItemPriceResponse is one priced item in a lookup response
type ItemPriceResponse struct {
	Item   string           `json:"item"`
	Price  string           `json:"price"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// CategoryResponse is one category in a lookup response
type CategoryResponse struct {
	Name  string              `json:"name"`
	Items []ItemPriceResponse `json:"items"`
}

// LookupResponse is the JSON shape of a lookup report
type LookupResponse struct {
	RequestID  string              `json:"requestId,omitempty"`
	City       string              `json:"city"`
	Country    string              `json:"country"`
	SourceURL  string              `json:"sourceUrl"`
	FetchedAt  time.Time           `json:"fetchedAt"`
	FromCache  bool                `json:"fromCache"`
	Categories []CategoryResponse  `json:"categories"`
	Unmatched  []domain.ScrapedRow `json:"unmatched"`
	Stats      domain.LookupStats  `json:"stats"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "costlens-backend",
		"version": "1.0.0",
	})
}

// LookupCostOfLiving handles GET (query string) and POST (JSON or form)
// lookups for one city
func (h *Handler) LookupCostOfLiving(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lookup service not configured"})
		return
	}

	var request domain.LookupRequest
	if err := c.ShouldBind(&request); err != nil {
		h.observe("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidRequest.Error(), "details": err.Error()})
		return
	}

	report, err := h.service.Lookup(c.Request.Context(), request)
	if err != nil {
		status := statusForError(err)
		h.observe(lookupStatus(status))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	h.observe("ok")
	c.JSON(http.StatusOK, toLookupResponse(report, c.GetString(requestIDKey)))
}

// GetCatalog returns the catalog labels are matched against
func (h *Handler) GetCatalog(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lookup service not configured"})
		return
	}

	c.JSON(http.StatusOK, h.service.Catalog())
}

func (h *Handler) observe(status string) {
	if h.observer != nil {
		h.observer.ObserveLookup(status)
	}
}

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCityNotFound), errors.Is(err, domain.ErrNoPriceTable):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrSourceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// lookupStatus turns an HTTP status into a metrics label
func lookupStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusBadGateway, http.StatusGatewayTimeout:
		return "upstream_error"
	default:
		return "error"
	}
}

func toLookupResponse(report *domain.Report, requestID string) LookupResponse {
	categories := make([]CategoryResponse, 0, len(report.Categories))
	for _, category := range report.Categories {
		items := make([]ItemPriceResponse, 0, len(category.Items))
		for _, item := range category.Items {
			resp := ItemPriceResponse{Item: item.Item, Price: item.Price}
			if amount, ok := usecase.ParseAmount(item.Price); ok {
				resp.Amount = &amount
			}
			items = append(items, resp)
		}
		categories = append(categories, CategoryResponse{Name: category.Name, Items: items})
	}

	unmatched := report.Unmatched
	if unmatched == nil {
		unmatched = []domain.ScrapedRow{}
	}

	return LookupResponse{
		RequestID:  requestID,
		City:       report.City,
		Country:    report.Country,
		SourceURL:  report.SourceURL,
		FetchedAt:  report.FetchedAt,
		FromCache:  report.FromCache,
		Categories: categories,
		Unmatched:  unmatched,
		Stats:      report.Stats,
	}
}
