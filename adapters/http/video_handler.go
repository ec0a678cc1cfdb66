package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	videoUC "github.com/khoahotran/viewtube/internal/application/usecase/video"
)

type VideoHandler struct {
	listVideosUseCase    *videoUC.ListVideosUseCase
	publishVideoUseCase  *videoUC.PublishVideoUseCase
	getVideoUseCase      *videoUC.GetVideoUseCase
	updateVideoUseCase   *videoUC.UpdateVideoUseCase
	deleteVideoUseCase   *videoUC.DeleteVideoUseCase
	togglePublishUseCase *videoUC.TogglePublishUseCase
}

func NewVideoHandler(
	listUC *videoUC.ListVideosUseCase,
	publishUC *videoUC.PublishVideoUseCase,
	getUC *videoUC.GetVideoUseCase,
	updateUC *videoUC.UpdateVideoUseCase,
	deleteUC *videoUC.DeleteVideoUseCase,
	toggleUC *videoUC.TogglePublishUseCase,
) *VideoHandler {
	return &VideoHandler{
		listVideosUseCase:    listUC,
		publishVideoUseCase:  publishUC,
		getVideoUseCase:      getUC,
		updateVideoUseCase:   updateUC,
		deleteVideoUseCase:   deleteUC,
		togglePublishUseCase: toggleUC,
	}
}

func (h *VideoHandler) ListVideos(c *gin.Context) {
	input := videoUC.ListVideosInput{
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		SortBy:    c.Query("sortBy"),
		SortType:  c.Query("sortType"),
		TextQuery: c.Query("query"),
		UserID:    c.Query("userId"),
		ViewerID:  ViewerID(c),
	}

	output, err := h.listVideosUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "videos fetched successfully", paginated(&output.Page))
}

func (h *VideoHandler) PublishVideo(c *gin.Context) {
	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user information not found"})
		return
	}

	duration, err := strconv.ParseFloat(c.PostForm("duration"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "'duration' must be a number of seconds"})
		return
	}

	input := videoUC.PublishVideoInput{
		OwnerID:     ownerID,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Duration:    duration,
	}

	if videoFile, ok := openFormFile(c, "video_file"); ok {
		defer videoFile.Close()
		input.VideoFile = videoFile
	}
	if thumbnail, ok := openFormFile(c, "thumbnail"); ok {
		defer thumbnail.Close()
		input.Thumbnail = thumbnail
	}

	output, err := h.publishVideoUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, "video published successfully", output.Video)
}

func (h *VideoHandler) GetVideo(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid video ID"})
		return
	}

	output, err := h.getVideoUseCase.Execute(c.Request.Context(), videoUC.GetVideoInput{
		VideoID:  videoID,
		ViewerID: ViewerID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "video fetched successfully", output.Video)
}

func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user information not found"})
		return
	}

	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid video ID"})
		return
	}

	input := videoUC.UpdateVideoInput{
		VideoID: videoID,
		OwnerID: ownerID,
	}

	// Multipart so the thumbnail can be replaced in the same request.
	if title, ok := c.GetPostForm("title"); ok {
		input.Title = &title
	}
	if description, ok := c.GetPostForm("description"); ok {
		input.Description = &description
	}
	if thumbnail, ok := openFormFile(c, "thumbnail"); ok {
		defer thumbnail.Close()
		input.Thumbnail = thumbnail
	}

	output, err := h.updateVideoUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "video updated successfully", output.Video)
}

func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user information not found"})
		return
	}

	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid video ID"})
		return
	}

	if err := h.deleteVideoUseCase.Execute(c.Request.Context(), videoUC.DeleteVideoInput{
		VideoID: videoID,
		OwnerID: ownerID,
	}); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "video deleted successfully", nil)
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user information not found"})
		return
	}

	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid video ID"})
		return
	}

	output, err := h.togglePublishUseCase.Execute(c.Request.Context(), videoUC.TogglePublishInput{
		VideoID: videoID,
		OwnerID: ownerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "publish state toggled successfully", output)
}
