package handlers

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	domainerrors "storefront.backend/internal/domain/errors"
	"storefront.backend/internal/interfaces/http/middleware"
	"storefront.backend/internal/interfaces/http/response"
	"storefront.backend/pkg/utils"
)

var registerTagNameOnce sync.Once

// useJSONFieldNames makes validation errors report json field names
func useJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

// bindJSON decodes the body into dst and writes the error response when it
// fails
func bindJSON(c *gin.Context, dst interface{}) bool {
	useJSONFieldNames()

	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		response.Error(c, domainerrors.ValidationFields(fields))
	case errors.Is(err, io.EOF):
		response.Error(c, domainerrors.BadRequest("Request body is required"))
	default:
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
	}
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Must be at least " + fe.Param()
	case "max":
		return "Must be at most " + fe.Param()
	case "len":
		return "Must be exactly " + fe.Param() + " characters"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "url":
		return "Must be a valid URL"
	case "e164":
		return "Must be a phone number in E.164 format"
	case "uppercase":
		return "Must be uppercase"
	default:
		return "Invalid value"
	}
}

// accountID returns the authenticated caller or writes a 401
func accountID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return uuid.Nil, false
	}
	return id, true
}

// uuidParam parses a path parameter or writes a 400
func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid "+label+" ID"))
		return uuid.Nil, false
	}
	return id, true
}

func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	return utils.ParsePagination(c.Query("page"), c.Query("limit"))
}
