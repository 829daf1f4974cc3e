package handler

import (
	"bakery-backoffice/internal/model"
	"bakery-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUsers returns all users with their profiles
// GET /api/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// CreateUser creates a user and its profile
// POST /api/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var in model.UserInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, errInvalidJSON)
	}
	user, err := h.userService.Create(&in, actorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GET /api/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "user")
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.userService.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser saves the user and its profile
// PUT, PATCH /api/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "user")
	if err != nil {
		return respondError(c, err)
	}
	var in model.UserInput
	err = bindInput(c, &in, func() (model.UserInput, error) {
		user, err := h.userService.Get(id)
		if err != nil {
			return in, err
		}
		return user.Input(), nil
	})
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.userService.Update(id, &in, actorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "user")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.userService.Delete(id, actorID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) GetProfiles(c *fiber.Ctx) error {
	profiles, err := h.userService.ListProfiles()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profiles)
}

func (h *UserHandler) CreateProfile(c *fiber.Ctx) error {
	var in model.UserProfileInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, errInvalidJSON)
	}
	profile, err := h.userService.CreateProfile(&in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "user profile")
	if err != nil {
		return respondError(c, err)
	}
	profile, err := h.userService.GetProfile(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "user profile")
	if err != nil {
		return respondError(c, err)
	}
	var in model.UserProfileInput
	err = bindInput(c, &in, func() (model.UserProfileInput, error) {
		profile, err := h.userService.GetProfile(id)
		if err != nil {
			return in, err
		}
		return profile.Input(), nil
	})
	if err != nil {
		return respondError(c, err)
	}
	profile, err := h.userService.UpdateProfile(id, &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteProfile is always refused for an existing profile; delete the user instead.
func (h *UserHandler) DeleteProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "user profile")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.userService.DeleteProfile(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
