package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"userhub/internal/models"
)

// bindUserInput parses and validates the request body against the user
// input schema. On failure it writes a 400 with field-level detail and
// returns ok=false; the request never reaches the service layer.
func (h *UserHandler) bindUserInput(c *gin.Context) (models.UserInput, bool) {
	var input models.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": validationDetails(err),
		})
		return models.UserInput{}, false
	}
	return input, true
}

// validationDetails flattens a binding failure into a field → message
// map. Validator errors carry per-field tags; anything else (malformed
// JSON, a bad birthdate string) becomes a single general message.
func validationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[jsonFieldName(fe.Field())] = fieldMessage(fe)
	}
	return details
}

// jsonFieldName maps a UserInput struct field to its wire name.
func jsonFieldName(field string) string {
	if field == "AdditionalInfo" {
		return "additional_info"
	}
	return strings.ToLower(field)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
