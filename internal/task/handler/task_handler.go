package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/middleware"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/response"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/task/dto"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/task/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	var input dto.CreateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	task, err := h.taskService.Create(c.Context(), user.ID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Task created successfully", task)
}

func (h *TaskHandler) FindAll(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	tasks, meta, err := h.taskService.FindAll(c.Context(), user.ID, c.Query("search"), page, limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.OKWithMeta(c, "Tasks fetched successfully", tasks, meta)
}

func (h *TaskHandler) FindOne(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	task, err := h.taskService.FindOne(c.Context(), c.Params("id"), user.ID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Task fetched successfully", task)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	var input dto.UpdateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	task, err := h.taskService.Update(c.Context(), c.Params("id"), user.ID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Task updated successfully", task)
}

func (h *TaskHandler) Remove(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	id := c.Params("id")
	if err := h.taskService.Remove(c.Context(), id, user.ID); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Task deleted successfully", fiber.Map{"id": id})
}
