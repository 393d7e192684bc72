package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "deskbook/internal/handler/dto/request"
	"deskbook/internal/usecase/commands"
	"deskbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SpaceHandler struct {
	spaceCommands commands.SpaceCommands
	spaceQueries  queries.SpaceQueries
}

func NewSpaceHandler(spaceCommands commands.SpaceCommands, spaceQueries queries.SpaceQueries) *SpaceHandler {
	return &SpaceHandler{
		spaceCommands: spaceCommands,
		spaceQueries:  spaceQueries,
	}
}

// @Summary List space types
// @Description List all active space types with their rates
// @Tags spaces
// @Produce json
// @Success 200 {array} queries.SpaceTypeView
// @Router /spaces [get]
func (h *SpaceHandler) ListSpaces(c *gin.Context) {
	views, err := h.spaceQueries.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Get space type
// @Description Get a space type by ID
// @Tags spaces
// @Produce json
// @Param id path string true "Space type ID"
// @Success 200 {object} queries.SpaceTypeView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /spaces/{id} [get]
func (h *SpaceHandler) GetSpace(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid space type ID format",
		})
		return
	}

	view, err := h.spaceQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrSpaceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Space type not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Check availability
// @Description Report remaining seats for a space type over a time window
// @Tags spaces
// @Produce json
// @Param id path string true "Space type ID"
// @Param start query string true "Window start (RFC3339)"
// @Param end query string true "Window end (RFC3339)"
// @Param seats query int false "Requested seats (default 1)"
// @Success 200 {object} queries.AvailabilityView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /spaces/{id}/availability [get]
func (h *SpaceHandler) CheckAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid space type ID format",
		})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid start format",
		})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid end format",
		})
		return
	}

	seats := int32(1)
	if raw := c.Query("seats"); raw != "" {
		parsed, parseErr := parsePositiveInt32(raw)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid seats value",
			})
			return
		}
		seats = parsed
	}

	view, err := h.spaceQueries.CheckAvailability(c.Request.Context(), id, start, end, seats)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrSpaceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Space type not found",
			})
		case errors.Is(err, queries.ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "End must be after start",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Create space type
// @Description Admin-only creation of a space type with a full rate table
// @Tags spaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSpaceRequest true "Space type"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /spaces [post]
func (h *SpaceHandler) CreateSpace(c *gin.Context) {
	var req reqdto.CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.spaceCommands.CreateSpace(c.Request.Context(), req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDuplicateSpace):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Space type name already exists",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid space type data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": result.SpaceTypeID})
}

// @Summary Update space type
// @Description Admin-only partial update; only provided fields change
// @Tags spaces
// @Accept json
// @Security BearerAuth
// @Param id path string true "Space type ID"
// @Param request body reqdto.UpdateSpaceRequest true "Fields to update"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /spaces/{id} [patch]
func (h *SpaceHandler) UpdateSpace(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid space type ID format",
		})
		return
	}

	var req reqdto.UpdateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err = h.spaceCommands.UpdateSpace(c.Request.Context(), id, req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSpaceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Space type not found",
			})
		case errors.Is(err, commands.ErrEmptySpaceUpdate):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Update contains no fields",
			})
		case errors.Is(err, commands.ErrDuplicateSpace):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Space type name already exists",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func parsePositiveInt32(raw string) (int32, error) {
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New("must be positive")
	}
	return int32(n), nil
}
