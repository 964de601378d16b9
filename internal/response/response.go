// Package response implements the uniform {success, message, data} envelope
// returned by every endpoint, and the mapping from service errors to HTTP
// status codes.
package response

import (
	"github.com/gofiber/fiber/v2"

	apperr "github.com/mdtajulislammt/Flutter-task-backend/internal/errors"
)

type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func OK(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message, Data: data})
}

func OKWithMeta(c *fiber.Ctx, message string, data, meta interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message, Data: data, Meta: meta})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

// Error renders err with a status derived from its classification. Internal
// faults are masked behind a generic message so store and crypto failures
// never leak details to the caller.
func Error(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Something went wrong"

	switch apperr.Classify(err) {
	case apperr.KindValidation:
		status = fiber.StatusBadRequest
		message = err.Error()
	case apperr.KindUnauthorized:
		status = fiber.StatusUnauthorized
		message = err.Error()
	case apperr.KindNotFound:
		status = fiber.StatusNotFound
		message = err.Error()
	case apperr.KindConflict:
		status = fiber.StatusConflict
		message = err.Error()
	case apperr.KindTokenInvalid:
		status = fiber.StatusUnprocessableEntity
		message = err.Error()
	}

	return c.Status(status).JSON(Envelope{Success: false, Message: message})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{Success: false, Message: message})
}
