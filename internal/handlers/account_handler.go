package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skills4mind/events-api/internal/helpers"
	"github.com/skills4mind/events-api/internal/middleware"
	"github.com/skills4mind/events-api/internal/models"
	"github.com/skills4mind/events-api/internal/services"
)

func Register(as *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		account, token, err := as.Register(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(gin.H{
			"account": account,
			"token":   token,
		}, "account created"))
	}
}

func Login(as *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("email and password are required"))
			return
		}

		account, token, err := as.Login(c.Request.Context(), body.Email, body.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"account": account,
			"token":   token,
		}, "login successful"))
	}
}

// ChangeUsername re-authenticates with the account password instead of
// a token, so it sits outside the auth middleware.
func ChangeUsername(as *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			NewUsername string `json:"newUsername"`
			Password    string `json:"password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		account, err := as.ChangeUsername(c.Request.Context(), c.Param("id"), body.NewUsername, body.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"username": account.Username,
		}, "username updated"))
	}
}

func ChangePassword(as *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			OldPassword string `json:"oldPassword"`
			NewPassword string `json:"newPassword"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		if err := as.ChangePassword(c.Request.Context(), c.Param("id"), body.OldPassword, body.NewPassword); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "password updated"))
	}
}

func UpdateAccount(as *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.ClaimsFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
			return
		}
		if !claims.IsOwner(c.Param("id")) {
			respondError(c, models.ErrForbidden)
			return
		}

		var input services.UpdateAccountInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		account, err := as.UpdateAccount(c.Request.Context(), c.Param("id"), input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(account, "account updated"))
	}
}

func DeleteAccount(as *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.ClaimsFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
			return
		}
		if !claims.IsOwner(c.Param("id")) {
			respondError(c, models.ErrForbidden)
			return
		}

		account, err := as.DeleteAccount(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"id":       account.ID.Hex(),
			"username": account.Username,
			"email":    account.Email,
		}, "account deleted"))
	}
}

func CheckUsername(as *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Username string `json:"username"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		exists, err := as.UsernameExists(c.Request.Context(), body.Username)
		if err != nil {
			respondError(c, err)
			return
		}

		message := "username is available"
		if exists {
			message = "username is already taken"
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"exists":  exists,
			"message": message,
		})
	}
}

func AccountsWithEvents(as *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !middleware.IsAdmin(c) {
			respondError(c, models.ErrForbidden)
			return
		}

		accounts, err := as.AccountsWithEvents(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.CountedResponse(accounts, len(accounts), ""))
	}
}
