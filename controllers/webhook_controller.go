// controllers/webhook_controller.go
package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"

	"github.com/dracohq/seller_backend/models"
	"github.com/dracohq/seller_backend/services"
)

// webhookCacheTTL bounds how stale a cached webhook lookup may get.
const webhookCacheTTL = 5 * time.Minute

type WebhookController struct {
	sellerService *services.SellerService
	rewardService *services.RewardService
	redisClient   *redis.Client
}

func NewWebhookController(sellerService *services.SellerService, rewardService *services.RewardService, redisClient *redis.Client) *WebhookController {
	return &WebhookController{
		sellerService: sellerService,
		rewardService: rewardService,
		redisClient:   redisClient,
	}
}

// GetSellerByCode resolves a seller by referral code for external partner systems.
// Responses are cached in Redis so repeated partner polling does not hit Mongo.
func (wc *WebhookController) GetSellerByCode(c echo.Context) error {
	uniqueCode := c.Param("uniqueCode")

	if cached := wc.cachedSellerData(c, uniqueCode); cached != nil {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Seller details fetched successfully",
			Data:    cached,
		})
	}

	seller, err := wc.sellerService.GetByReferralCode(c.Request().Context(), uniqueCode)
	if err != nil {
		return respondError(c, err)
	}

	data := models.WebhookSellerData(seller)
	wc.cacheSellerData(c, uniqueCode, &data)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Seller details fetched successfully",
		Data:    data,
	})
}

// CreateReward records a referral reward reported by an external system
func (wc *WebhookController) CreateReward(c echo.Context) error {
	var req models.SellerRewardRequest
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

	reward, err := wc.rewardService.CreateReward(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Reward recorded successfully",
		Data:    reward,
	})
}

// GetTotalEarned returns a seller's aggregate reward points, with an optional
// page of the underlying ledger when both page and size are supplied
func (wc *WebhookController) GetTotalEarned(c echo.Context) error {
	page, err := optionalIntQuery(c, "page")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid page parameter",
		})
	}
	size, err := optionalIntQuery(c, "size")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid size parameter",
		})
	}

	total, err := wc.rewardService.GetTotalEarned(c.Request().Context(), c.Param("sellerUniqueCode"), page, size)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Total earned fetched successfully",
		Data:    total,
	})
}

func (wc *WebhookController) cachedSellerData(c echo.Context, uniqueCode string) *models.SellerWebhookData {
	if wc.redisClient == nil {
		return nil
	}

	raw, err := wc.redisClient.Get(c.Request().Context(), sellerWebhookCacheKey(uniqueCode)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis get failed for webhook seller %s: %v", uniqueCode, err)
		}
		return nil
	}

	var data models.SellerWebhookData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		log.Printf("Dropping corrupt webhook cache entry for %s: %v", uniqueCode, err)
		wc.redisClient.Del(c.Request().Context(), sellerWebhookCacheKey(uniqueCode))
		return nil
	}
	return &data
}

func (wc *WebhookController) cacheSellerData(c echo.Context, uniqueCode string, data *models.SellerWebhookData) {
	if wc.redisClient == nil || data == nil {
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := wc.redisClient.Set(c.Request().Context(), sellerWebhookCacheKey(uniqueCode), raw, webhookCacheTTL).Err(); err != nil {
		log.Printf("Redis set failed for webhook seller %s: %v", uniqueCode, err)
	}
}

func sellerWebhookCacheKey(uniqueCode string) string {
	return "webhook:seller:" + uniqueCode
}

func optionalIntQuery(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
