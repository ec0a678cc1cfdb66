package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tweetUC "github.com/khoahotran/viewtube/internal/application/usecase/tweet"
)

type TweetHandler struct {
	tweetUseCase *tweetUC.UseCase
}

func NewTweetHandler(uc *tweetUC.UseCase) *TweetHandler {
	return &TweetHandler{tweetUseCase: uc}
}

func (h *TweetHandler) CreateTweet(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user information not found"})
		return
	}

	var req CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input", "message": err.Error()})
		return
	}

	t, err := h.tweetUseCase.Create(c.Request.Context(), tweetUC.CreateInput{
		OwnerID: userID,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, "tweet created successfully", t)
}

func (h *TweetHandler) ListUserTweets(c *gin.Context) {
	page, err := h.tweetUseCase.ListByUser(c.Request.Context(), tweetUC.ListByUserInput{
		RawUserID: c.Param("userId"),
		RawPage:   c.Query("page"),
		RawLimit:  c.Query("limit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "tweets fetched successfully", paginated(page))
}

func (h *TweetHandler) UpdateTweet(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user information not found"})
		return
	}

	tweetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid tweet ID"})
		return
	}

	var req UpdateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input", "message": err.Error()})
		return
	}

	t, err := h.tweetUseCase.Update(c.Request.Context(), tweetUC.UpdateInput{
		TweetID: tweetID,
		UserID:  userID,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "tweet updated successfully", t)
}

func (h *TweetHandler) DeleteTweet(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user information not found"})
		return
	}

	tweetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid tweet ID"})
		return
	}

	if err := h.tweetUseCase.Delete(c.Request.Context(), tweetUC.DeleteInput{
		TweetID: tweetID,
		UserID:  userID,
	}); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "tweet deleted successfully", nil)
}
