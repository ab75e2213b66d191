package cv

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/cv-generator-backend/internal/user"
)

// Handler exposes the structured JSON surface for CVs. Unlike the web form,
// the payload carries the experience and education lists as real arrays, so
// there is no parallel-field index alignment to worry about. Owner scope is
// always taken from the JWT claims, never from the payload.

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cvs", h.listCVs)
	app.Post("/api/v1/cvs", h.createCV)
	app.Get("/api/v1/cvs/:id", h.getCV)
	app.Put("/api/v1/cvs/:id", h.updateCV)
	app.Delete("/api/v1/cvs/:id", h.deleteCV)
}

type cvRequest struct {
	FullName          string       `json:"fullName"`
	ProfessionalTitle string       `json:"professionalTitle"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone"`
	Location          string       `json:"location"`
	Summary           string       `json:"summary"`
	Skills            string       `json:"skills"`
	Experiences       []Experience `json:"experiences"`
	Education         []Education  `json:"education"`
}

func (r cvRequest) toCV() CV {
	return CV{
		FullName:          r.FullName,
		ProfessionalTitle: r.ProfessionalTitle,
		Email:             r.Email,
		Phone:             r.Phone,
		Location:          r.Location,
		Summary:           r.Summary,
		Skills:            r.Skills,
		Experiences:       r.Experiences,
		Education:         r.Education,
	}
}

func (h *Handler) listCVs(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	cvs, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(cvs)
}

func (h *Handler) createCV(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(cvRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.FullName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "fullName required"})
	}

	created, err := h.service.Create(userID, payload.toCV())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getCV(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	cvID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid cv id"})
	}

	found, err := h.service.GetByID(userID, cvID)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cv not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(found)
}

func (h *Handler) updateCV(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	cvID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid cv id"})
	}

	payload := new(cvRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(userID, cvID, payload.toCV())
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cv not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(updated)
}

func (h *Handler) deleteCV(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	cvID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid cv id"})
	}

	if err := h.service.Delete(userID, cvID); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cv not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.SendString("CV deleted")
}
