// controllers/seller_controller.go
package controllers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"net/http"
	"os"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dracohq/seller_backend/models"
	"github.com/dracohq/seller_backend/services"
)

type SellerController struct {
	sellerService   *services.SellerService
	referralService *services.ReferralService
}

func NewSellerController(sellerService *services.SellerService, referralService *services.ReferralService) *SellerController {
	return &SellerController{
		sellerService:   sellerService,
		referralService: referralService,
	}
}

// Register handles new seller registration, optionally with a referral code
func (sc *SellerController) Register(c echo.Context) error {
	var req models.SellerRegistrationRequest
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

	seller, err := sc.sellerService.Register(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Seller registered successfully",
		Data:    seller,
	})
}

// GetSeller returns a seller by id
func (sc *SellerController) GetSeller(c echo.Context) error {
	sellerID, err := primitive.ObjectIDFromHex(c.Param("sellerId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid seller ID format",
		})
	}

	seller, err := sc.sellerService.GetByID(c.Request().Context(), sellerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Seller fetched successfully",
		Data:    seller,
	})
}

// GetSellerByEmail returns a seller by email
func (sc *SellerController) GetSellerByEmail(c echo.Context) error {
	seller, err := sc.sellerService.GetByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Seller fetched successfully",
		Data:    seller,
	})
}

// ListSellers returns all sellers
func (sc *SellerController) ListSellers(c echo.Context) error {
	sellers, err := sc.sellerService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Sellers fetched successfully",
		Data:    sellers,
	})
}

// UpdateSeller replaces a seller's profile and payment details
func (sc *SellerController) UpdateSeller(c echo.Context) error {
	sellerID, err := primitive.ObjectIDFromHex(c.Param("sellerId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid seller ID format",
		})
	}

	var req models.UpdateSellerRequest
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

	seller, err := sc.sellerService.Update(c.Request().Context(), sellerID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Seller updated successfully",
		Data:    seller,
	})
}

// GetReferralInfo returns the seller's referral code, referrer and referred sellers
func (sc *SellerController) GetReferralInfo(c echo.Context) error {
	sellerID, err := primitive.ObjectIDFromHex(c.Param("sellerId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid seller ID format",
		})
	}

	info, err := sc.referralService.GetReferralInfo(c.Request().Context(), sellerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Referral info fetched successfully",
		Data:    info,
	})
}

// AddCustomer records customer ownership on a seller
func (sc *SellerController) AddCustomer(c echo.Context) error {
	sellerID, err := primitive.ObjectIDFromHex(c.Param("sellerId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid seller ID format",
		})
	}
	customerID, err := primitive.ObjectIDFromHex(c.Param("customerId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid customer ID format",
		})
	}

	if err := sc.sellerService.AddCustomer(c.Request().Context(), sellerID, customerID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Customer added to seller",
	})
}

// ReconcileReferralTotals recomputes totalReferrals from the edge lists
func (sc *SellerController) ReconcileReferralTotals(c echo.Context) error {
	repaired, err := sc.referralService.ReconcileTotals(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Referral totals reconciled",
		Data:    map[string]int64{"repaired": repaired},
	})
}

// GetReferralQRCode returns a QR code image for the seller's referral link
func (sc *SellerController) GetReferralQRCode(c echo.Context) error {
	sellerID, err := primitive.ObjectIDFromHex(c.Param("sellerId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid seller ID format",
		})
	}

	seller, err := sc.sellerService.GetByID(c.Request().Context(), sellerID)
	if err != nil {
		return respondError(c, err)
	}

	qrCodeBase64, err := generateReferralQRCode(seller.ReferralCode)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Referral QR code generated successfully",
		Data: map[string]string{
			"referralCode": seller.ReferralCode,
			"qrCode":       qrCodeBase64,
		},
	})
}

// generateReferralQRCode creates a QR code image for a referral code
func generateReferralQRCode(referralCode string) (string, error) {
	baseURL := os.Getenv("SIGNUP_BASE_URL")
	if baseURL == "" {
		baseURL = "https://sellers.draco.app/register"
	}
	content := fmt.Sprintf("%s?ref=%s", baseURL, referralCode)

	qrCode, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return "", err
	}

	qrCode, err = barcode.Scale(qrCode, 300, 300)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qrCode); err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
