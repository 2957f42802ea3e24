package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/justsurfingit/job-application-tracker/internal/apperror"
	"github.com/justsurfingit/job-application-tracker/internal/dtos"
)

// respondError renders err as {message[, rule, fields]}. Causes of server-side
// failures are logged and never sent to the client.
func respondError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"error", err,
			"method", c.Request.Method,
			"route", c.FullPath(),
		)
	}
	c.AbortWithStatusJSON(status, dtos.MessageResponse{
		Message: appErr.ClientMessage(),
		Rule:    appErr.Rule,
		Fields:  appErr.Fields,
	})
}

func respondBindError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, dtos.MessageResponse{Message: "Invalid request body."})
		return
	}

	resp := dtos.MessageResponse{Message: "Required fields are missing.", Rule: "required"}
	for _, fe := range fieldErrs {
		resp.Fields = append(resp.Fields, fe.Field())
		if fe.Tag() != "required" {
			resp.Message, resp.Rule = "Invalid request body.", "invalid_field"
		}
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}

// bindPayload decodes an application body. An empty body is an empty payload,
// which the validator rejects with its own message.
func bindPayload(c *gin.Context) (dtos.ApplicationPayload, bool) {
	var payload dtos.ApplicationPayload
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return payload, false
	}
	return payload, true
}

var registerTagNames sync.Once

// useJSONFieldNames makes binding errors report fields by their JSON name.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
