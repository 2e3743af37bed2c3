package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citylibrary/lending-system/internal/api/metrics"
	"github.com/citylibrary/lending-system/internal/core/ports"
)

// BookHandler exposes the catalog: adding books and the read paths.
type BookHandler struct {
	catalog ports.CatalogService
}

func NewBookHandler(catalog ports.CatalogService) *BookHandler {
	return &BookHandler{catalog: catalog}
}

// Add registers a new book in the catalog.
//
// @Summary      Add a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addBookRequest  true  "Book details"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/books [post]
func (h *BookHandler) Add(c echo.Context) error {
	var req addBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	book, err := h.catalog.AddBook(c.Request().Context(), ports.AddBookInput{
		Title:     req.Title,
		Author:    req.Author,
		Year:      req.Year,
		Publisher: req.Publisher,
	})
	if err != nil {
		return err
	}

	metrics.BooksAddedTotal.Inc()
	return c.JSON(http.StatusCreated, successResponse{
		Success: true,
		Message: "Book added successfully",
		Data:    toBookResponse(book),
	})
}

// ListAll returns every catalog entry.
//
// @Summary      List all books
// @Tags         books
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /v1/books [get]
func (h *BookHandler) ListAll(c echo.Context) error {
	books, err := h.catalog.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "ok",
		Data:    toBookListResponse(books),
	})
}

// ListAvailable returns the books that can be borrowed right now.
//
// @Summary      List available books
// @Tags         books
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /v1/books/available [get]
func (h *BookHandler) ListAvailable(c echo.Context) error {
	books, err := h.catalog.ListAvailable(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "ok",
		Data:    toBookListResponse(books),
	})
}

// Search matches titles exactly, ignoring case.
//
// @Summary      Search books by title
// @Tags         books
// @Produce      json
// @Param        title  query     string  true  "Exact title (case-insensitive)"
// @Success      200    {object}  successResponse
// @Router       /v1/books/search [get]
func (h *BookHandler) Search(c echo.Context) error {
	title := c.QueryParam("title")
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title query parameter is required")
	}

	books, err := h.catalog.SearchByTitle(c.Request().Context(), title)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "ok",
		Data:    toBookListResponse(books),
	})
}
