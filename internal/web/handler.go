package web

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/wichananm65/cv-generator-backend/internal/cv"
	"github.com/wichananm65/cv-generator-backend/internal/user"
)

// Handler serves the HTML surface: the sign-in/register page and the CV
// generator. Access is session-based; every CV operation resolves the owner
// from the session and nothing else.

const (
	msgDeleted      = "CV deleted successfully!"
	msgDeleteFailed = "Failed to delete CV. Please try again."
	msgUpdated      = "CV updated successfully!"
	msgUpdateFailed = "Failed to update CV. Please try again."
	msgSaveFailed   = "Failed to save CV. Please try again."
	msgCVNotFound   = "CV not found or you don't have permission to view it."
	msgDatabase     = "Database error. Please try again."
	msgListFailed   = "Error loading saved CVs."
	msgLoginFailed  = "Invalid username or password"
	msgRegistered   = "Registration successful! You can now login."
)

type Handler struct {
	store *session.Store
	users *user.Service
	cvs   *cv.Service
}

func NewHandler(store *session.Store, users *user.Service, cvs *cv.Service) *Handler {
	return &Handler{store: store, users: users, cvs: cvs}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/signin", h.showSignin)
	app.Post("/signin", h.submitSignin)
	app.Get("/", h.showGenerator)
	app.Post("/", h.saveCV)
	app.Get("/logout", h.logout)
}

// currentUser resolves the identity bound to the request's session.
func (h *Handler) currentUser(c *fiber.Ctx) (int, string, bool) {
	sess, err := h.store.Get(c)
	if err != nil {
		return 0, "", false
	}
	id, ok := sess.Get("user_id").(int)
	if !ok || id <= 0 {
		return 0, "", false
	}
	username, _ := sess.Get("username").(string)
	return id, username, true
}

// sign-in page

type signinData struct {
	Error    string
	Success  string
	Username string
	Email    string
}

func (h *Handler) showSignin(c *fiber.Ctx) error {
	if _, _, ok := h.currentUser(c); ok {
		return c.Redirect("/")
	}
	return c.Render("signin", signinData{})
}

func (h *Handler) submitSignin(c *fiber.Ctx) error {
	if c.FormValue("login") != "" {
		return h.login(c)
	}
	return h.register(c)
}

func (h *Handler) login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if username == "" || password == "" {
		return c.Render("signin", signinData{Error: user.ErrFieldsRequired.Error(), Username: username})
	}

	u, err := h.users.Authenticate(username, password)
	if err != nil {
		// same message for unknown user and wrong password
		return c.Render("signin", signinData{Error: msgLoginFailed, Username: username})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return c.Render("signin", signinData{Error: msgDatabase, Username: username})
	}
	sess.Set("user_id", u.ID)
	sess.Set("username", u.Username)
	if err := sess.Save(); err != nil {
		return c.Render("signin", signinData{Error: msgDatabase, Username: username})
	}

	return c.Redirect("/")
}

func (h *Handler) register(c *fiber.Ctx) error {
	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")
	confirm := c.FormValue("confirm-password")

	_, err := h.users.Register(username, email, password, confirm)
	if err != nil {
		if err == user.ErrExists || user.IsInputError(err) {
			return c.Render("signin", signinData{Error: err.Error(), Username: username, Email: email})
		}
		return c.Render("signin", signinData{Error: msgDatabase, Username: username, Email: email})
	}

	// registration succeeded: clear the form so a refresh starts fresh
	return c.Render("signin", signinData{Success: msgRegistered})
}

// generator page

type generatorData struct {
	Username string
	Success  string
	Error    string
	ViewMode bool
	EditMode bool
	CV       cv.CV
	SavedCVs []cv.CV
}

// showGenerator handles the query signals in priority order: delete first,
// then view, then edit, then the default list + blank form.
func (h *Handler) showGenerator(c *fiber.Ctx) error {
	userID, username, ok := h.currentUser(c)
	if !ok {
		return c.Redirect("/signin")
	}

	if raw := c.Query("delete_cv"); raw != "" {
		return h.deleteCV(c, userID, raw)
	}

	data := generatorData{
		Username: username,
		Success:  c.Query("success"),
		Error:    c.Query("error"),
	}

	if raw := c.Query("view_cv"); raw != "" {
		h.loadCV(userID, raw, &data, false)
	} else if raw := c.Query("edit_cv"); raw != "" {
		h.loadCV(userID, raw, &data, true)
	}

	h.fillSavedCVs(userID, &data)
	return c.Render("generator", data)
}

// deleteCV redirects whatever the outcome, so a refresh of the resulting
// page never repeats the delete.
func (h *Handler) deleteCV(c *fiber.Ctx, userID int, raw string) error {
	cvID, err := strconv.Atoi(raw)
	if err != nil {
		return c.Redirect("/?error=" + url.QueryEscape(msgDeleteFailed))
	}

	if err := h.cvs.Delete(userID, cvID); err != nil {
		if err == cv.ErrNotFound {
			return c.Redirect("/?error=" + url.QueryEscape(msgDeleteFailed))
		}
		return c.Redirect("/?error=" + url.QueryEscape(msgDatabase))
	}

	return c.Redirect("/?success=" + url.QueryEscape(msgDeleted))
}

// loadCV resolves view_cv/edit_cv. A missing CV and someone else's CV render
// the same message.
func (h *Handler) loadCV(userID int, raw string, data *generatorData, edit bool) {
	cvID, err := strconv.Atoi(raw)
	if err != nil {
		data.Error = msgCVNotFound
		return
	}

	found, err := h.cvs.GetByID(userID, cvID)
	if err != nil {
		if err == cv.ErrNotFound {
			data.Error = msgCVNotFound
		} else {
			data.Error = msgDatabase
		}
		return
	}

	data.CV = found
	if edit {
		data.EditMode = true
	} else {
		data.ViewMode = true
	}
}

func (h *Handler) fillSavedCVs(userID int, data *generatorData) {
	cvs, err := h.cvs.ListByUser(userID)
	if err != nil {
		if data.Error == "" {
			data.Error = msgListFailed
		}
		return
	}
	data.SavedCVs = cvs
}

// saveCV is the create-or-update branch, keyed on the hidden cv_id field.
func (h *Handler) saveCV(c *fiber.Ctx) error {
	userID, username, ok := h.currentUser(c)
	if !ok {
		return c.Redirect("/signin")
	}

	form, err := url.ParseQuery(string(c.Body()))
	if err != nil || form.Get("save_cv") == "" {
		return c.Redirect("/")
	}

	input := cv.CV{
		FullName:          form.Get("fullName"),
		ProfessionalTitle: form.Get("jobTitle"),
		Email:             form.Get("email"),
		Phone:             form.Get("phone"),
		Location:          form.Get("location"),
		Summary:           form.Get("summary"),
		Skills:            form.Get("skills"),
		Experiences:       buildExperiences(form),
		Education:         buildEducation(form),
	}

	if raw := form.Get("cv_id"); raw != "" {
		return h.updateCV(c, userID, username, raw, input)
	}

	created, err := h.cvs.Create(userID, input)
	if err != nil {
		data := generatorData{Username: username, Error: msgSaveFailed}
		h.fillSavedCVs(userID, &data)
		return c.Render("generator", data)
	}

	// redirect to view mode so a refresh does not resubmit the form
	return c.Redirect("/?view_cv=" + strconv.Itoa(created.ID))
}

// updateCV re-renders in view mode with the fresh record instead of
// redirecting.
func (h *Handler) updateCV(c *fiber.Ctx, userID int, username, raw string, input cv.CV) error {
	data := generatorData{Username: username}

	cvID, err := strconv.Atoi(raw)
	if err != nil {
		data.Error = msgUpdateFailed
		h.fillSavedCVs(userID, &data)
		return c.Render("generator", data)
	}

	updated, err := h.cvs.Update(userID, cvID, input)
	switch err {
	case nil:
		data.Success = msgUpdated
		data.ViewMode = true
		data.CV = updated
	case cv.ErrNotFound:
		data.Error = msgUpdateFailed
	default:
		data.Error = msgDatabase
	}

	h.fillSavedCVs(userID, &data)
	return c.Render("generator", data)
}

func (h *Handler) logout(c *fiber.Ctx) error {
	if sess, err := h.store.Get(c); err == nil {
		_ = sess.Destroy()
	}
	return c.Redirect("/signin")
}
