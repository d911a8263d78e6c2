package routes

import (
	"barquea-server/models"
	"barquea-server/storage"
	"barquea-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

type CreateReviewInput struct {
	Stars int    `json:"stars" validate:"required,min=1,max=5"`
	Title string `json:"title" validate:"max=100"`
	Body  string `json:"body" validate:"max=1000"`
}

// recomputeBoatRating reloads the boat's reviews and stores the mean and
// count; 0 when no reviews remain.
func recomputeBoatRating(boatID uint) error {
	var reviews []models.Review
	if err := storage.DB.Where("boat_id = ?", boatID).Find(&reviews).Error; err != nil {
		return err
	}
	return storage.DB.Model(&models.Boat{}).
		Where("id = ?", boatID).
		Updates(map[string]interface{}{
			"rating":       models.MeanStars(reviews),
			"review_count": len(reviews),
		}).Error
}

// ListBoatReviews returns reviews with reviewer info, newest first
func ListBoatReviews(ctx iris.Context) {
	boatID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid boat ID", ctx)
		return
	}

	var reviews []models.Review
	if err := storage.DB.Preload("User").
		Where("boat_id = ?", boatID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to load reviews"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": reviews})
}

func CreateBoatReview(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	boatID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid boat ID", ctx)
		return
	}

	var input CreateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var boat models.Boat
	if err := storage.DB.First(&boat, boatID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	review := models.Review{
		UserID: claims.ID,
		BoatID: boatID,
		Stars:  input.Stars,
		Title:  input.Title,
		Body:   input.Body,
	}
	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := recomputeBoatRating(boatID); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "review": review})
}

// DeleteBoatReview removes a review (author or admin) and recomputes the
// boat's rating over the remainder.
func DeleteBoatReview(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	reviewID, err := ctx.Params().GetUint("reviewId")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid review ID", ctx)
		return
	}

	var review models.Review
	if err := storage.DB.First(&review, reviewID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if review.UserID != claims.ID && claims.Role != "admin" && claims.Role != "super_admin" {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	if err := storage.DB.Unscoped().Delete(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := recomputeBoatRating(review.BoatID); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}
