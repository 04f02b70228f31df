package controllers

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
)

// Staff roles
const (
	RoleAdmin  = "admin"
	RoleWaiter = "waiter"
	RoleChef   = "chef"
)

var staffRoles = map[string]bool{RoleAdmin: true, RoleWaiter: true, RoleChef: true}

// adminStaffID is the staff id carried by tokens from the configured admin account.
const adminStaffID uint = 1

var errInvalidCredentials = errors.New("invalid credentials")

// AuthController memegang akun admin dari konfigurasi (ADMIN_USERNAME, ADMIN_PASSWORD_HASH).
type AuthController struct {
	Username     string
	PasswordHash string
}

func NewAuthController(username, passwordHash string) *AuthController {
	if username == "" {
		username = "admin"
	}
	return &AuthController{Username: username, PasswordHash: passwordHash}
}

// Login -> admin masuk dengan password, dapat JWT. Token staff lain dibuat lewat IssueToken.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if ac.PasswordHash == "" {
		utils.RespondError(c, http.StatusServiceUnavailable, errors.New("staff login is not configured"))
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(ac.Username)) == 1
	// hash tetap dibandingkan walau username salah supaya waktu respon sama
	passErr := bcrypt.CompareHashAndPassword([]byte(ac.PasswordHash), []byte(input.Password))
	if !userOK || passErr != nil {
		utils.ErrorLogger.WithField("username", input.Username).Warn("Failed staff login")
		utils.RespondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}

	token, err := utils.GenerateToken(adminStaffID, RoleAdmin)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.InfoLogger.Printf("Login successful for %s", ac.Username)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"user_role": RoleAdmin,
	})
}

// IssueToken -> admin membuat token untuk perangkat staff (tablet waiter, layar dapur)
func IssueToken(c *gin.Context) {
	var req struct {
		StaffID uint   `json:"staff_id" binding:"required"`
		Role    string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !staffRoles[req.Role] {
		utils.RespondError(c, http.StatusUnprocessableEntity, &CustomError{"Unknown staff role"})
		return
	}

	token, err := utils.GenerateToken(req.StaffID, req.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.InfoLogger.Printf("Token issued for staff %d (%s) by %v", req.StaffID, req.Role, c.GetUint("userID"))
	utils.RespondJSON(c, http.StatusCreated, "Token issued", gin.H{"token": token})
}
