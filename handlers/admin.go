package handlers

import (
	"net/http"

	"velour/models"
	"velour/services/admin"
	"velour/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes back-office account and reporting endpoints.
type AdminHandler struct {
	Service admin.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

// adminID returns the authenticated admin's id set by the auth middleware.
func adminID(c *gin.Context) string {
	id, _ := c.Get("adminID")
	s, _ := id.(string)
	return s
}

// Register handles POST /api/admin/register.
func (ah *AdminHandler) Register(c *gin.Context) {
	var req admin.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	a, err := ah.Service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// Login handles POST /api/admin/login.
func (ah *AdminHandler) Login(c *gin.Context) {
	var req admin.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	a, token, err := ah.Service.Authenticate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "admin": a})
}

// Profile handles GET /api/admin/profile.
func (ah *AdminHandler) Profile(c *gin.Context) {
	a, err := ah.Service.GetProfile(c.Request.Context(), adminID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// UpdateProfile handles PATCH /api/admin/profile.
func (ah *AdminHandler) UpdateProfile(c *gin.Context) {
	var patch models.AdminPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	a, err := ah.Service.UpdateProfile(c.Request.Context(), adminID(c), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Revenue handles GET /api/admin/revenue.
func (ah *AdminHandler) Revenue(c *gin.Context) {
	total, err := ah.Service.Revenue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalRevenue": total})
}

// Analytics handles GET /api/admin/analytics.
func (ah *AdminHandler) Analytics(c *gin.Context) {
	entries, err := ah.Service.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
