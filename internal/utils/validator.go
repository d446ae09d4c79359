package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sociogram/internal/models"
)

var validate *validator.Validate

// Initialize validator with custom validation rules
func init() {
	validate = validator.New()

	validate.RegisterValidation("objectid", validateObjectID)
	validate.RegisterValidation("reaction", validateReactionType)
	validate.RegisterValidation("target_kind", validateTargetKind)
	validate.RegisterValidation("notification_type", validateNotificationType)
}

// ValidateStruct validates a struct using the validator
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// GetValidationErrors returns formatted validation errors
func GetValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := strings.ToLower(e.Field())
			tag := e.Tag()
			param := e.Param()

			switch tag {
			case "required":
				errors[field] = fmt.Sprintf("%s is required", field)
			case "min":
				errors[field] = fmt.Sprintf("%s must be at least %s characters", field, param)
			case "max":
				errors[field] = fmt.Sprintf("%s must not exceed %s characters", field, param)
			case "objectid":
				errors[field] = "Must be a valid ID"
			case "reaction":
				errors[field] = "Reaction must be one of: like, love, haha, wow, sad, angry"
			case "target_kind":
				errors[field] = "Target kind must be one of: post, album, reel, video, movie"
			case "notification_type":
				errors[field] = "Invalid notification type"
			default:
				errors[field] = fmt.Sprintf("%s is invalid", field)
			}
		}
	}

	return errors
}

// Custom validation functions
func validateObjectID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

func validateReactionType(fl validator.FieldLevel) bool {
	return models.ReactionType(fl.Field().String()).IsValid()
}

func validateTargetKind(fl validator.FieldLevel) bool {
	return models.TargetKind(fl.Field().String()).IsValid()
}

func validateNotificationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Optional filter
	}
	_, ok := models.PreferenceKeyForType(value)
	return ok
}
