package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1
)

type PaginationParams struct {
	Page  int    `json:"page" form:"page"`
	Limit int    `json:"limit" form:"limit"`
	Sort  string `json:"sort" form:"sort"`
	Order string `json:"order" form:"order"`
}

type PaginationResult struct {
	Data       interface{}     `json:"data"`
	Pagination *PaginationMeta `json:"pagination"`
	TotalCount int64           `json:"total_count"`
}

type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	NextPage   *int  `json:"next_page,omitempty"`
	PrevPage   *int  `json:"prev_page,omitempty"`
}

// GetPaginationParams extracts pagination parameters from the Gin context.
func GetPaginationParams(c *gin.Context) *PaginationParams {
	page := getIntParam(c, "page", DefaultPage)
	limit := getIntParam(c, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return &PaginationParams{
		Page:  page,
		Limit: limit,
		Sort:  c.DefaultQuery("sort", "created_at"),
		Order: c.DefaultQuery("order", "desc"),
	}
}

// GetMongoOptions returns MongoDB find options for pagination and sorting.
func (p *PaginationParams) GetMongoOptions() *options.FindOptions {
	opts := options.Find()

	skip := int64((p.Page - 1) * p.Limit)
	opts.SetSkip(skip)
	opts.SetLimit(int64(p.Limit))

	sortOrder := 1
	if p.Order == "desc" {
		sortOrder = -1
	}
	opts.SetSort(bson.D{{Key: p.Sort, Value: sortOrder}})

	return opts
}

// Skip returns the number of documents to skip for the current page.
func (p *PaginationParams) Skip() int {
	return (p.Page - 1) * p.Limit
}

// CalculatePaginationMeta calculates pagination metadata.
func CalculatePaginationMeta(page, limit int, totalItems int64) *PaginationMeta {
	totalPages := int(math.Ceil(float64(totalItems) / float64(limit)))

	hasNext := page < totalPages
	hasPrev := page > 1

	var nextPage, prevPage *int
	if hasNext {
		next := page + 1
		nextPage = &next
	}
	if hasPrev {
		prev := page - 1
		prevPage = &prev
	}

	return &PaginationMeta{
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasNext:    hasNext,
		HasPrev:    hasPrev,
		NextPage:   nextPage,
		PrevPage:   prevPage,
	}
}

func getIntParam(c *gin.Context, key string, defaultValue int) int {
	if value := c.Query(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
