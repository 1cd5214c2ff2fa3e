package handler

import (
	"net/http"
	"strconv"

	"addrbook/internal/delivery/api/response"
	"addrbook/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

// JournalHandler serves the recorded change history of addresses.
type JournalHandler struct {
	eventRepo repository.AddressEventRepository
}

func NewJournalHandler(eventRepo repository.AddressEventRepository) *JournalHandler {
	return &JournalHandler{eventRepo: eventRepo}
}

// ListEvents handles GET /addresses/:id/events
func (h *JournalHandler) ListEvents(c echo.Context) error {
	addressID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid address ID")
	}

	events, err := h.eventRepo.ListByAddress(c.Request().Context(), addressID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, events)
}
