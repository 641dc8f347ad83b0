package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
		GetUser(c *fiber.Ctx) error
		GetUsers(c *fiber.Ctx) error
		SetPassword(c *fiber.Ctx) error
		ResetPassword(c *fiber.Ctx) error
		ResetPasswordConfirm(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)
	if err := bindBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedRegister, err)
	}

	res, err := h.userService.Register(c.UserContext(), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedRegister, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegister)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := bindBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedLogin, err)
	}

	res, err := h.userService.Login(c.UserContext(), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedLogin, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *userHandler) Logout(c *fiber.Ctx) error {
	if err := h.userService.Logout(c.UserContext(), middleware.Token(c)); err != nil {
		return presenters.HandleError(c, domain.MessageFailedLogout, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	res, err := h.userService.Me(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) GetUser(c *fiber.Ctx) error {
	res, err := h.userService.GetUser(c.UserContext(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) GetUsers(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	res, err := h.userService.GetUsers(c.UserContext(), page, limit, middleware.UserID(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUsers, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUsers)
}

func (h *userHandler) SetPassword(c *fiber.Ctx) error {
	req := new(domain.SetPasswordRequest)
	if err := bindBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedSetPassword, err)
	}

	if err := h.userService.SetPassword(c.UserContext(), *req, middleware.UserID(c)); err != nil {
		return presenters.HandleError(c, domain.MessageFailedSetPassword, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *userHandler) ResetPassword(c *fiber.Ctx) error {
	req := new(domain.ResetPasswordRequest)
	if err := bindBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedResetPassword, err)
	}

	if err := h.userService.ResetPassword(c.UserContext(), *req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedResetPassword, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *userHandler) ResetPasswordConfirm(c *fiber.Ctx) error {
	req := new(domain.ResetPasswordConfirmRequest)
	if err := bindBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedResetPassword, err)
	}

	if err := h.userService.ResetPasswordConfirm(c.UserContext(), *req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedResetPassword, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
