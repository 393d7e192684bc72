package api

import (
	"errors"
	"net/http"

	reqdto "deskbook/internal/handler/dto/request"
	resdto "deskbook/internal/handler/dto/response"
	"deskbook/internal/handler/middleware"
	"deskbook/internal/usecase/commands"
	"deskbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	membershipCommands commands.MembershipCommands
	userQueries        queries.UserQueries
}

func NewMembershipHandler(membershipCommands commands.MembershipCommands, userQueries queries.UserQueries) *MembershipHandler {
	return &MembershipHandler{
		membershipCommands: membershipCommands,
		userQueries:        userQueries,
	}
}

// @Summary List membership plans
// @Description List active membership plans
// @Tags memberships
// @Produce json
// @Success 200 {array} queries.MembershipPlanView
// @Router /memberships/plans [get]
func (h *MembershipHandler) ListPlans(c *gin.Context) {
	views, err := h.userQueries.ListMembershipPlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Subscribe to a plan
// @Description Start a membership on the selected plan for the current user
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SubscribeRequest true "Plan selection"
// @Success 200 {object} resdto.SubscribeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /memberships/subscribe [post]
func (h *MembershipHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.membershipCommands.Subscribe(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Membership plan not found",
			})
		case errors.Is(err, commands.ErrPlanInactive):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Membership plan is not active",
			})
		case errors.Is(err, commands.ErrAlreadySubscribed):
			c.JSON(http.StatusConflict, gin.H{
				"error": "User already has an active membership",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSubscribeResult(result))
}

// @Summary Cancel membership
// @Description Cancel the current user's membership
// @Tags memberships
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /memberships [delete]
func (h *MembershipHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	err := h.membershipCommands.CancelMembership(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNoMembership):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No membership to cancel",
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
