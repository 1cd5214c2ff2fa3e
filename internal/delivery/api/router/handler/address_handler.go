package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"addrbook/internal/delivery/api/response"
	"addrbook/internal/delivery/api/validator"
	"addrbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const addressDeletedMessage = "Address deleted"

// AddressHandlerParams holds dependencies for AddressHandler, injected by Fx.
type AddressHandlerParams struct {
	fx.In

	AddressUC usecase.AddressUsecase
	SearchUC  usecase.SearchUsecase
	Logger    *slog.Logger
}

// AddressHandler holds dependencies for address-related handlers
type AddressHandler struct {
	addressUC usecase.AddressUsecase
	searchUC  usecase.SearchUsecase
	logger    *slog.Logger
}

// NewAddressHandler is the constructor for AddressHandler
func NewAddressHandler(params AddressHandlerParams) *AddressHandler {
	return &AddressHandler{
		addressUC: params.AddressUC,
		searchUC:  params.SearchUC,
		logger:    params.Logger,
	}
}

// AddressRequest represents the request body for creating or replacing an address.
// Coordinates are pointers so an explicit 0 is accepted and a missing field is not.
type AddressRequest struct {
	Street    string   `json:"street" validate:"required,max=100"`
	City      string   `json:"city" validate:"required,max=50"`
	State     string   `json:"state" validate:"required,max=50"`
	Country   string   `json:"country" validate:"required,max=50"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// SearchRequest represents the request body for a radius search
type SearchRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Distance  *float64 `json:"distance" validate:"required,gte=0"`
}

func (req *AddressRequest) toInput() *usecase.AddressInput {
	return &usecase.AddressInput{
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		Country:   req.Country,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}
}

// CreateAddress handles POST /addresses
func (h *AddressHandler) CreateAddress(c echo.Context) error {
	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, "VALIDATION_FAILED", validator.Message(err), validator.FieldErrors(err))
	}

	address, err := h.addressUC.CreateAddress(c.Request().Context(), req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, address)
}

// ListAddresses handles GET /addresses
func (h *AddressHandler) ListAddresses(c echo.Context) error {
	addresses, err := h.addressUC.ListAddresses(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, addresses)
}

// GetAddress handles GET /addresses/:id
func (h *AddressHandler) GetAddress(c echo.Context) error {
	id, ok := parseAddressID(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid address ID")
	}

	address, err := h.addressUC.GetAddress(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, address)
}

// UpdateAddress handles PUT /addresses/:id
func (h *AddressHandler) UpdateAddress(c echo.Context) error {
	id, ok := parseAddressID(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid address ID")
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, "VALIDATION_FAILED", validator.Message(err), validator.FieldErrors(err))
	}

	address, err := h.addressUC.UpdateAddress(c.Request().Context(), id, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, address)
}

// DeleteAddress handles DELETE /addresses/:id
func (h *AddressHandler) DeleteAddress(c echo.Context) error {
	id, ok := parseAddressID(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid address ID")
	}

	if err := h.addressUC.DeleteAddress(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, response.MessageData{Message: addressDeletedMessage})
}

// SearchAddresses handles POST /addresses/search
func (h *AddressHandler) SearchAddresses(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid search input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, "VALIDATION_FAILED", validator.Message(err), validator.FieldErrors(err))
	}

	input := &usecase.SearchInput{
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		DistanceKm: *req.Distance,
	}

	matches, err := h.searchUC.SearchWithinRadius(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, matches)
}

func parseAddressID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}
