package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/pinpoint/internal/page"
	"github.com/UnknownOlympus/pinpoint/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/schema"
)

// Searcher runs a single address search to a settled outcome.
type Searcher interface {
	Submit(ctx context.Context, address string) service.Outcome
}

// Handler serves the search page, its script, and the lookup endpoints.
type Handler struct {
	log      *slog.Logger
	searcher Searcher
	page     *page.Page
	decoder  *schema.Decoder
}

// searchForm is the no-script form submission.
type searchForm struct {
	Address string `schema:"address"`
}

// NewRouter wires the handlers and middleware into a gin engine.
func NewRouter(log *slog.Logger, searcher Searcher, pg *page.Page) *gin.Engine {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	hdl := &Handler{log: log, searcher: searcher, page: pg, decoder: decoder}

	router := gin.New()
	router.Use(RequestIDMiddleware(), RequestLoggingMiddleware(log), RecoveryMiddleware(log))

	router.GET("/", hdl.Index)
	router.GET("/static/search.js", hdl.Script)
	router.GET("/api/geocode", hdl.Geocode)
	router.POST("/search", hdl.Search)

	return router
}

// Index renders the empty search page.
func (h *Handler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, page.Data{})
}

// Script serves the page script.
func (h *Handler) Script(c *gin.Context) {
	c.Data(http.StatusOK, "text/javascript; charset=utf-8", h.page.Script())
}

// Geocode answers the page script with a map view or an alert.
// A missing address parameter is looked up as an empty address.
func (h *Handler) Geocode(c *gin.Context) {
	outcome := h.searcher.Submit(c.Request.Context(), c.Query("address"))
	if outcome.Alert != nil {
		c.JSON(alertStatus(outcome.Alert.Kind), outcome.Alert)
		return
	}

	c.JSON(http.StatusOK, outcome.View)
}

// Search handles form posts from browsers without script support and
// renders the page with the result embedded.
func (h *Handler) Search(c *gin.Context) {
	var form searchForm
	if err := c.Request.ParseForm(); err != nil {
		h.render(c, http.StatusBadRequest, page.Data{AlertMessage: err.Error()})
		return
	}
	if err := h.decoder.Decode(&form, c.Request.PostForm); err != nil {
		h.render(c, http.StatusBadRequest, page.Data{AlertMessage: err.Error()})
		return
	}

	outcome := h.searcher.Submit(c.Request.Context(), form.Address)
	if outcome.Alert != nil {
		h.render(c, alertStatus(outcome.Alert.Kind), page.Data{
			Address:      form.Address,
			AlertMessage: outcome.Alert.Message,
		})
		return
	}

	h.render(c, http.StatusOK, page.Data{Address: form.Address, View: outcome.View})
}

func (h *Handler) render(c *gin.Context, status int, data page.Data) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := h.page.Render(c.Writer, data); err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to render page", "error", err)
	}
}

func alertStatus(kind service.AlertKind) int {
	switch kind {
	case service.AlertService:
		return http.StatusUnprocessableEntity
	case service.AlertIntegration:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
