package routes

import (
	"barquea-server/models"
	"barquea-server/storage"
	"barquea-server/utils"
	"encoding/json"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type RegisterUserInput struct {
	FirstName   string `json:"firstName" validate:"required,max=256"`
	LastName    string `json:"lastName" validate:"required,max=256"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"max=32"`
	Password    string `json:"password" validate:"required,min=8,max=256"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Register(ctx iris.Context) {
	var input RegisterUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User
	userExistsQuery := storage.DB.Where("email = ?", email).Limit(1).Find(&existing)
	if userExistsQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userExistsQuery.RowsAffected > 0 {
		utils.CreateError(iris.StatusConflict, "Registration Error", "Email already registered.", ctx)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	newUser := models.User{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       email,
		PhoneNumber: input.PhoneNumber,
		Password:    string(hashedPassword),
		Role:        "user",
	}
	if err := storage.DB.Create(&newUser).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	returnUser(newUser, ctx)
}

func Login(ctx iris.Context) {
	var input LoginUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	errorMsg := "Invalid email or password."
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(input.Email)).Limit(1).Find(&existingUser)
	if userExistsQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userExistsQuery.RowsAffected == 0 {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(input.Password)); err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, ctx)
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, err := utils.CreateTokenPair(user.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"email":        user.Email,
		"role":         user.Role,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

func GetUser(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(user)
}

type HostApplicationInput struct {
	Bio          string   `json:"bio" validate:"required,max=2000"`
	ResponseTime string   `json:"responseTime" validate:"max=64"`
	Application  string   `json:"application" validate:"max=4000"`
	Documents    []string `json:"documents"`
}

// SubmitHostApplication records the host sub-profile and puts the
// application into pending. Re-applying after a denial is allowed.
func SubmitHostApplication(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input HostApplicationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if user.HostStatus == "pending" {
		utils.CreateError(iris.StatusConflict, "Application Error", "A host application is already pending.", ctx)
		return
	}
	if user.HostStatus == "approved" {
		utils.CreateError(iris.StatusConflict, "Application Error", "You are already an approved host.", ctx)
		return
	}

	docs := input.Documents
	if docs == nil {
		docs = []string{}
	}
	docsJSON, _ := json.Marshal(docs)

	user.HostBio = input.Bio
	user.ResponseTime = input.ResponseTime
	user.HostApplication = input.Application
	user.HostDocuments = datatypes.JSON(docsJSON)
	user.HostStatus = "pending"
	user.HostRejectionReason = ""
	user.HostProcessedAt = nil

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "user": user})
}

// ListHostApplications returns users that have submitted a host application.
// GET /api/host-applications?status=
func ListHostApplications(ctx iris.Context) {
	status := strings.TrimSpace(ctx.URLParam("status"))

	query := storage.DB.Model(&models.User{}).Where("host_status <> ''")
	if status != "" {
		query = query.Where("host_status = ?", status)
	}

	var users []models.User
	if err := query.Order("updated_at DESC").Find(&users).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "error": "Failed to load host applications"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": users})
}

// UpdateUserProfile updates mutable profile fields; password changes go
// through ChangePassword only.
func UpdateUserProfile(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input struct {
		FirstName   string `json:"firstName" validate:"max=256"`
		LastName    string `json:"lastName" validate:"max=256"`
		PhoneNumber string `json:"phoneNumber" validate:"max=32"`
		AvatarURL   string `json:"avatarURL" validate:"max=512"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = input.PhoneNumber
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(user)
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=256"`
}

func ChangePassword(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input ChangePasswordInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Current password is incorrect.", ctx)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	now := time.Now()
	user.Password = string(hashed)
	user.UpdatedAt = now
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}
