package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Response holds the payload keys merged into the success envelope.
type Response map[string]interface{}

// Success writes {"success": true, ...data} with the given status.
func Success(c *gin.Context, status int, data Response) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error writes {"success": false, "message": msg}.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": msg,
	})
}

// ValidationError writes a 400 envelope, adding a per-field detail map when err
// comes from gin's binding validator.
func ValidationError(c *gin.Context, msg string, err error) {
	body := gin.H{
		"success": false,
		"message": msg,
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		body["fields"] = fields
	}
	c.JSON(http.StatusBadRequest, body)
}
