package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	subUC "github.com/khoahotran/viewtube/internal/application/usecase/subscription"
)

type SubscriptionHandler struct {
	subscriptionUseCase *subUC.UseCase
}

func NewSubscriptionHandler(uc *subUC.UseCase) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionUseCase: uc}
}

func (h *SubscriptionHandler) ToggleSubscription(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user information not found"})
		return
	}

	channelID, err := uuid.Parse(c.Param("channelId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid channel ID"})
		return
	}

	output, err := h.subscriptionUseCase.Toggle(c.Request.Context(), subUC.ToggleInput{
		SubscriberID: userID,
		ChannelID:    channelID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "subscription toggled successfully", output)
}

func (h *SubscriptionHandler) ListSubscribers(c *gin.Context) {
	page, err := h.subscriptionUseCase.ListSubscribers(c.Request.Context(), subUC.ListInput{
		RawUserID: c.Param("channelId"),
		RawPage:   c.Query("page"),
		RawLimit:  c.Query("limit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "subscribers fetched successfully", paginated(page))
}

func (h *SubscriptionHandler) ListSubscribedChannels(c *gin.Context) {
	page, err := h.subscriptionUseCase.ListSubscribedChannels(c.Request.Context(), subUC.ListInput{
		RawUserID: c.Param("subscriberId"),
		RawPage:   c.Query("page"),
		RawLimit:  c.Query("limit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "subscribed channels fetched successfully", paginated(page))
}
