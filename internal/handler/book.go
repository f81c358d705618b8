package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/library-service/internal/model"
	"github.com/maxviazov/library-service/internal/service"
	"github.com/maxviazov/library-service/pkg/response"
)

type BookHandler struct {
	svc       service.BookService
	paginated bool
}

func NewBookHandler(svc service.BookService, paginated bool) *BookHandler {
	return &BookHandler{svc: svc, paginated: paginated}
}

func (h *BookHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/books")
	{
		g.GET("", h.list)
		// static segment wins over the :id wildcard
		g.GET("/search", h.search)
		g.GET("/:id", h.getByID)
	}
}

// pageParam reads ?page= in base 10, defaulting to 1 when absent or not numeric. Values below 1 become 1.
func pageParam(c *gin.Context) int {
	page, err := service.ParsePage(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *BookHandler) list(c *gin.Context) {
	if !h.paginated {
		books, err := h.svc.ListRaw(c.Request.Context())
		if err != nil {
			response.WriteError(c, err)
			return
		}
		response.WriteData(c, http.StatusOK, books)
		return
	}

	env, err := h.svc.List(c.Request.Context(), pageParam(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, env)
}

func (h *BookHandler) search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.WriteData(c, http.StatusOK, []model.Book{})
		return
	}
	env, err := h.svc.Search(c.Request.Context(), service.SearchQuery{
		Q:     q,
		Sort:  c.DefaultQuery("sort", "title"),
		Order: c.DefaultQuery("order", "asc"),
		Page:  pageParam(c),
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, env)
}

func (h *BookHandler) getByID(c *gin.Context) {
	book, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, book)
}
