package routes

import (
	"barquea-server/models"
	"barquea-server/storage"
	"barquea-server/utils"
	"net/http"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
)

// ListUsers - GET /admin/users?role=&q=&page=&per_page=
func AdminListUsers(ctx iris.Context) {
	// Basic pagination
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	var users []models.User
	q := strings.TrimSpace(ctx.URLParamDefault("q", ""))
	role := strings.TrimSpace(ctx.URLParamDefault("role", ""))

	query := storage.DB.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("lower(first_name) LIKE ? OR lower(last_name) LIKE ? OR lower(email) LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "server_error", "message": err.Error()})
		return
	}
	query = query.Offset((page - 1) * perPage).Limit(perPage)
	if err := query.Find(&users).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "server_error", "message": err.Error()})
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

type approveHostInput struct {
	UserID uint `json:"userId" validate:"required"`
}

// ApproveHost - POST /admin/users/approve-host {userId}
// pending → approved and denied → approved (re-approval) are both allowed.
func ApproveHost(ctx iris.Context) {
	var body approveHostInput
	if err := ctx.ReadJSON(&body); err != nil || body.UserID == 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "userId is required")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, body.UserID).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}

	if !models.CanTransitionHostStatus(user.HostStatus, "approved") {
		utils.JSONError(ctx, http.StatusConflict, "invalid_transition",
			"cannot approve a host application in status '"+user.HostStatus+"'")
		return
	}

	before := user
	now := time.Now()
	user.HostStatus = "approved"
	user.Role = "host"
	user.HostRejectionReason = ""
	user.HostProcessedAt = &now
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.Audit(ctx, "user.approve_host", "user", user.ID, before, user)
	ctx.JSON(iris.Map{"success": true, "data": user})
}

type rejectHostInput struct {
	UserID uint   `json:"userId" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

// RejectHost - POST /admin/users/reject-host {userId, reason}
// A non-empty reason is required and checked before touching the database.
// Revoking an already-approved host is allowed.
func RejectHost(ctx iris.Context) {
	var body rejectHostInput
	if err := ctx.ReadJSON(&body); err != nil || body.UserID == 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "userId is required")
		return
	}
	if strings.TrimSpace(body.Reason) == "" {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "a rejection reason is required")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, body.UserID).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}

	if !models.CanTransitionHostStatus(user.HostStatus, "denied") {
		utils.JSONError(ctx, http.StatusConflict, "invalid_transition",
			"cannot deny a host application in status '"+user.HostStatus+"'")
		return
	}

	before := user
	now := time.Now()
	user.HostStatus = "denied"
	user.Role = "user"
	user.HostRejectionReason = strings.TrimSpace(body.Reason)
	user.HostProcessedAt = &now
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.Audit(ctx, "user.reject_host", "user", user.ID, before, user)
	ctx.JSON(iris.Map{"success": true, "data": user})
}

// Change role - PATCH /admin/users/:id/role (super_admin only)
func AdminChangeUserRole(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := ctx.ReadJSON(&body); err != nil || body.Role == "" {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_role"})
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	before := user
	user.Role = body.Role
	if err := storage.DB.Save(&user).Error; err != nil {
		ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
		return
	}

	utils.Audit(ctx, "user.role_update", "user", user.ID, before, user)
	ctx.JSON(iris.Map{"data": user})
}
