package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/library-service/internal/service"
	"github.com/maxviazov/library-service/pkg/response"
)

type PageHandler struct {
	svc       service.PageService
	paginated bool
}

func NewPageHandler(svc service.PageService, paginated bool) *PageHandler {
	return &PageHandler{svc: svc, paginated: paginated}
}

func (h *PageHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/pages")
	{
		g.GET("", h.list)
		g.GET("/by-params", h.byParams)
		g.GET("/:id", h.getByID)
	}
}

func (h *PageHandler) list(c *gin.Context) {
	if !h.paginated {
		pages, err := h.svc.ListRaw(c.Request.Context())
		if err != nil {
			response.WriteError(c, err)
			return
		}
		response.WriteData(c, http.StatusOK, pages)
		return
	}

	env, err := h.svc.List(c.Request.Context(), pageParam(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, env)
}

// byParams serves the reader: GET /pages/by-params?book-id=<uuid>&page-number=<n>.
func (h *PageHandler) byParams(c *gin.Context) {
	page, err := h.svc.GetByParams(c.Request.Context(), c.Query("book-id"), c.Query("page-number"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, page)
}

func (h *PageHandler) getByID(c *gin.Context) {
	page, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, page)
}
