package http

import (
	"context"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authUC "github.com/khoahotran/viewtube/internal/application/usecase/auth"
	userUC "github.com/khoahotran/viewtube/internal/application/usecase/user"
)

type UserHandler struct {
	registerUseCase       *authUC.RegisterUseCase
	loginUseCase          *authUC.LoginUseCase
	logoutUseCase         *authUC.LogoutUseCase
	refreshTokenUseCase   *authUC.RefreshTokenUseCase
	changePasswordUseCase *authUC.ChangePasswordUseCase
	getCurrentUserUseCase *userUC.GetCurrentUserUseCase
	updateAccountUseCase  *userUC.UpdateAccountUseCase
	updateImagesUseCase   *userUC.UpdateImagesUseCase
	channelProfileUseCase *userUC.ChannelProfileUseCase
	watchHistoryUseCase   *userUC.WatchHistoryUseCase

	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewUserHandler(
	registerUC *authUC.RegisterUseCase,
	loginUC *authUC.LoginUseCase,
	logoutUC *authUC.LogoutUseCase,
	refreshUC *authUC.RefreshTokenUseCase,
	changePasswordUC *authUC.ChangePasswordUseCase,
	currentUserUC *userUC.GetCurrentUserUseCase,
	updateAccountUC *userUC.UpdateAccountUseCase,
	updateImagesUC *userUC.UpdateImagesUseCase,
	channelProfileUC *userUC.ChannelProfileUseCase,
	watchHistoryUC *userUC.WatchHistoryUseCase,
	accessTTL, refreshTTL time.Duration,
) *UserHandler {
	return &UserHandler{
		registerUseCase:       registerUC,
		loginUseCase:          loginUC,
		logoutUseCase:         logoutUC,
		refreshTokenUseCase:   refreshUC,
		changePasswordUseCase: changePasswordUC,
		getCurrentUserUseCase: currentUserUC,
		updateAccountUseCase:  updateAccountUC,
		updateImagesUseCase:   updateImagesUC,
		channelProfileUseCase: channelProfileUC,
		watchHistoryUseCase:   watchHistoryUC,
		accessTTL:             accessTTL,
		refreshTTL:            refreshTTL,
	}
}

func openFormFile(c *gin.Context, field string) (multipart.File, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, false
	}
	f, err := header.Open()
	if err != nil {
		return nil, false
	}
	return f, true
}

func (h *UserHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie(AccessTokenCookie, accessToken, int(h.accessTTL.Seconds()), "/", "", false, true)
	c.SetCookie(RefreshTokenCookie, refreshToken, int(h.refreshTTL.Seconds()), "/", "", false, true)
}

func (h *UserHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", false, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", false, true)
}

func (h *UserHandler) Register(c *gin.Context) {
	input := authUC.RegisterInput{
		Fullname: c.PostForm("fullname"),
		Email:    c.PostForm("email"),
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}

	if avatar, ok := openFormFile(c, "avatar"); ok {
		defer avatar.Close()
		input.Avatar = avatar
	}
	if cover, ok := openFormFile(c, "cover_image"); ok {
		defer cover.Close()
		input.CoverImage = cover
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, "user registered successfully", ToUserDTO(output.User))
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input", "message": err.Error()})
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, output.AccessToken, output.RefreshToken)
	respondData(c, http.StatusOK, "logged in successfully", gin.H{
		"user":          ToUserDTO(output.User),
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user information not found"})
		return
	}

	if err := h.logoutUseCase.Execute(c.Request.Context(), authUC.LogoutInput{UserID: userID}); err != nil {
		respondError(c, err)
		return
	}

	h.clearAuthCookies(c)
	respondData(c, http.StatusOK, "logged out successfully", nil)
}

func (h *UserHandler) RefreshToken(c *gin.Context) {
	refreshToken, _ := c.Cookie(RefreshTokenCookie)
	if refreshToken == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			refreshToken = body.RefreshToken
		}
	}

	output, err := h.refreshTokenUseCase.Execute(c.Request.Context(), authUC.RefreshTokenInput{RefreshToken: refreshToken})
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, output.AccessToken, output.RefreshToken)
	respondData(c, http.StatusOK, "tokens refreshed successfully", gin.H{
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
	})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user information not found"})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input", "message": err.Error()})
		return
	}

	err := h.changePasswordUseCase.Execute(c.Request.Context(), authUC.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "password changed successfully", nil)
}

func (h *UserHandler) CurrentUser(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user information not found"})
		return
	}

	u, err := h.getCurrentUserUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "current user fetched successfully", ToUserDTO(u))
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user information not found"})
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input", "message": err.Error()})
		return
	}

	output, err := h.updateAccountUseCase.Execute(c.Request.Context(), userUC.UpdateAccountInput{
		UserID:   userID,
		Fullname: req.Fullname,
		Email:    req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "account details updated successfully", ToUserDTO(output.User))
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.updateImagesUseCase.UpdateAvatar)
}

func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "cover_image", h.updateImagesUseCase.UpdateCoverImage)
}

func (h *UserHandler) updateImage(
	c *gin.Context,
	field string,
	exec func(ctx context.Context, input userUC.UpdateImageInput) (*userUC.UpdateImageOutput, error),
) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user information not found"})
		return
	}

	file, ok := openFormFile(c, field)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "'" + field + "' file is required"})
		return
	}
	defer file.Close()

	output, err := exec(c.Request.Context(), userUC.UpdateImageInput{UserID: userID, File: file})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, field+" updated successfully", ToUserDTO(output.User))
}

func (h *UserHandler) ChannelProfile(c *gin.Context) {
	output, err := h.channelProfileUseCase.Execute(c.Request.Context(), userUC.ChannelProfileInput{
		Username: c.Param("username"),
		ViewerID: ViewerID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "channel profile fetched successfully", output.Profile)
}

func (h *UserHandler) WatchHistory(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user information not found"})
		return
	}

	output, err := h.watchHistoryUseCase.Execute(c.Request.Context(), userUC.WatchHistoryInput{
		UserID:   userID,
		RawPage:  c.Query("page"),
		RawLimit: c.Query("limit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "watch history fetched successfully", paginated(output.Page))
}
