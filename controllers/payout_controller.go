// controllers/payout_controller.go
package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dracohq/seller_backend/middleware"
	"github.com/dracohq/seller_backend/models"
	"github.com/dracohq/seller_backend/services"
)

type PayoutController struct {
	payoutService *services.PayoutService
}

func NewPayoutController(payoutService *services.PayoutService) *PayoutController {
	return &PayoutController{payoutService: payoutService}
}

// CreatePayout creates a payout request for a seller
func (pc *PayoutController) CreatePayout(c echo.Context) error {
	var req models.PayoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
			Data:    err.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Data:    err.Error(),
		})
	}

	payout, err := pc.payoutService.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Payout request created successfully",
		Data:    payout,
	})
}

// GetPayout returns a payout by id
func (pc *PayoutController) GetPayout(c echo.Context) error {
	payoutID, err := primitive.ObjectIDFromHex(c.Param("payoutId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid payout ID format",
		})
	}

	payout, err := pc.payoutService.GetByID(c.Request().Context(), payoutID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout fetched successfully",
		Data:    payout,
	})
}

// ListPayouts returns all payouts, optionally filtered by status
func (pc *PayoutController) ListPayouts(c echo.Context) error {
	var (
		payouts []models.Payout
		err     error
	)
	if status := c.QueryParam("status"); status != "" {
		payouts, err = pc.payoutService.ListByStatus(c.Request().Context(), status)
	} else {
		payouts, err = pc.payoutService.ListAll(c.Request().Context())
	}
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payouts fetched successfully",
		Data:    payouts,
	})
}

// ListSellerPayouts returns all payouts belonging to one seller
func (pc *PayoutController) ListSellerPayouts(c echo.Context) error {
	sellerID, err := primitive.ObjectIDFromHex(c.Param("sellerId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid seller ID format",
		})
	}

	payouts, err := pc.payoutService.ListBySeller(c.Request().Context(), sellerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Seller payouts fetched successfully",
		Data:    payouts,
	})
}

// UpdatePayout edits a pending payout's details
func (pc *PayoutController) UpdatePayout(c echo.Context) error {
	payoutID, err := primitive.ObjectIDFromHex(c.Param("payoutId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid payout ID format",
		})
	}

	var req models.PayoutUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
			Data:    err.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Data:    err.Error(),
		})
	}

	payout, err := pc.payoutService.Update(c.Request().Context(), payoutID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout updated successfully",
		Data:    payout,
	})
}

// ApprovePayout moves a pending payout to approved
func (pc *PayoutController) ApprovePayout(c echo.Context) error {
	payoutID, err := primitive.ObjectIDFromHex(c.Param("payoutId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid payout ID format",
		})
	}

	payout, err := pc.payoutService.Approve(c.Request().Context(), payoutID, middleware.ActorIdentity(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout approved successfully",
		Data:    payout,
	})
}

// RejectPayout rejects a pending or approved payout with a reason
func (pc *PayoutController) RejectPayout(c echo.Context) error {
	payoutID, err := primitive.ObjectIDFromHex(c.Param("payoutId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid payout ID format",
		})
	}

	var req models.PayoutApprovalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
			Data:    err.Error(),
		})
	}

	payout, err := pc.payoutService.Reject(c.Request().Context(), payoutID, middleware.ActorIdentity(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout rejected",
		Data:    payout,
	})
}

// MarkPayoutPaid finalizes an approved payout with a transaction id
func (pc *PayoutController) MarkPayoutPaid(c echo.Context) error {
	payoutID, err := primitive.ObjectIDFromHex(c.Param("payoutId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid payout ID format",
		})
	}

	var req models.PayoutApprovalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
			Data:    err.Error(),
		})
	}

	payout, err := pc.payoutService.MarkPaid(c.Request().Context(), payoutID, middleware.ActorIdentity(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout marked as paid",
		Data:    payout,
	})
}

// DeletePayout removes a payout that has not been paid out yet
func (pc *PayoutController) DeletePayout(c echo.Context) error {
	payoutID, err := primitive.ObjectIDFromHex(c.Param("payoutId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid payout ID format",
		})
	}

	if err := pc.payoutService.Delete(c.Request().Context(), payoutID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout deleted successfully",
	})
}
