package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/faq/service"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/response"
)

type FaqHandler struct {
	faqService *service.FaqService
}

func NewFaqHandler(faqService *service.FaqService) *FaqHandler {
	return &FaqHandler{faqService: faqService}
}

func (h *FaqHandler) FindAll(c *fiber.Ctx) error {
	faqs, err := h.faqService.FindAll(c.Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Faqs fetched successfully", faqs)
}

func (h *FaqHandler) FindOne(c *fiber.Ctx) error {
	faq, err := h.faqService.FindOne(c.Context(), c.Params("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Faq fetched successfully", faq)
}
