package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/viewtube/internal/domain/query"
	"github.com/khoahotran/viewtube/pkg/apperror"
)

// respondData wraps every successful response in the same envelope so
// clients can branch on `success` without inspecting the status code.
func respondData(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondError(c *gin.Context, err error) {
	status := apperror.ToHTTPStatus(err)

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		body := appErr.ToJSON()
		body["success"] = false
		c.JSON(status, body)
		return
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   http.StatusText(status),
		"message": err.Error(),
	})
}

// paginated flattens a Page into the envelope's data payload.
func paginated[T any](p *query.Page[T]) gin.H {
	return gin.H{
		"docs":        p.Items,
		"page":        p.Page,
		"limit":       p.Limit,
		"totalDocs":   p.TotalDocs,
		"totalPages":  p.TotalPages,
		"hasPrevPage": p.HasPrevPage,
		"hasNextPage": p.HasNextPage,
	}
}
