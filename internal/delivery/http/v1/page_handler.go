package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"go-candidate-admin/internal/delivery/http/middleware"
	"go-candidate-admin/internal/delivery/http/web"
	"go-candidate-admin/internal/domain"
	"go-candidate-admin/internal/form"
	"go-candidate-admin/internal/listing"
	"go-candidate-admin/internal/notify"
	"go-candidate-admin/pkg/apperror"
	"go-candidate-admin/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const flashCookieName = "flash"

type PageHandler struct {
	candidateUC    domain.CandidateUsecase
	add            *form.AddController
	update         *form.UpdateController
	flash          notify.FlashStore
	toaster        notify.Toaster
	apiBaseURL     string
	maxResumeBytes int64
	secureCookies  bool
}

type PageDeps struct {
	CandidateUC    domain.CandidateUsecase
	Flash          notify.FlashStore
	Toaster        notify.Toaster
	APIBaseURL     string
	MaxResumeBytes int64
	SecureCookies  bool
}

func NewPageHandler(r gin.IRouter, submit gin.HandlerFunc, deps PageDeps) *PageHandler {
	h := &PageHandler{
		candidateUC:    deps.CandidateUC,
		add:            form.NewAddController(deps.CandidateUC),
		update:         form.NewUpdateController(deps.CandidateUC),
		flash:          deps.Flash,
		toaster:        deps.Toaster,
		apiBaseURL:     deps.APIBaseURL,
		maxResumeBytes: deps.MaxResumeBytes,
		secureCookies:  deps.SecureCookies,
	}

	r.GET("/", h.Home)
	r.GET("/addcandidate", h.AddForm)
	r.POST("/addcandidate", submit, h.AddSubmit)
	r.GET("/view-candidates", h.List)
	r.POST("/candidate/:id/delete", submit, h.Delete)
	r.GET("/candidate/:id", h.Detail)
	r.GET("/candidate/:id/resume", h.Resume)
	r.GET("/candidate/update/:id", h.UpdateForm)
	r.POST("/candidate/update/:id", submit, h.UpdateSubmit)
	return h
}

func (h *PageHandler) page(c *gin.Context, title string) web.Page {
	return web.Page{
		Title:       title,
		CSRF:        middleware.CSRFToken(c),
		ToastMillis: h.toaster.Millis(),
	}
}

func (h *PageHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", web.HomePage{Page: h.page(c, "Home")})
}

func (h *PageHandler) AddForm(c *gin.Context) {
	c.HTML(http.StatusOK, "candidate_form.html",
		web.NewFormPage(h.page(c, "Add Candidate"), form.NewAddDraft(), "/addcandidate"))
}

func (h *PageHandler) AddSubmit(c *gin.Context) {
	d, err := h.draftFromRequest(c, form.NewAddDraft())
	if err != nil {
		h.renderError(c, "Add Candidate", err)
		return
	}
	d, outcome := h.add.Submit(c.Request.Context(), d)
	if outcome != nil {
		h.redirectWithFlash(c, outcome)
		return
	}
	c.HTML(formStatus(d), "candidate_form.html", web.NewFormPage(h.page(c, "Add Candidate"), d, "/addcandidate"))
}

func (h *PageHandler) List(c *gin.Context) {
	state := listing.NewListState(h.candidateUC, h.toaster)
	defer state.Close()

	p := web.ListPage{
		Page:          h.page(c, "Candidates"),
		ConfirmPrompt: listing.ConfirmPrompt,
	}
	p.Flash = h.popFlash(c)
	if err := state.Load(c.Request.Context()); err != nil {
		p.Error = userMessage(err)
	}
	state.Search(c.Query("q"))
	p.Query = state.Query()
	p.Candidates = state.Visible()
	c.HTML(http.StatusOK, "candidates.html", p)
}

func (h *PageHandler) Delete(c *gin.Context) {
	id, ok := h.candidateID(c, "Candidates")
	if !ok {
		return
	}
	state := listing.NewListState(h.candidateUC, h.toaster)
	defer state.Close()

	called, err := state.Delete(c.Request.Context(), id, func() bool {
		return c.PostForm("confirm") == "yes"
	})
	if err != nil {
		h.renderError(c, "Candidates", err)
		return
	}
	if !called {
		c.Redirect(http.StatusSeeOther, form.ListRoute)
		return
	}
	// the list page shows the toast after the redirect; the timer of this
	// request's state is dropped with it
	h.redirectWithFlash(c, &form.Outcome{Redirect: form.ListRoute, Flash: listing.MsgDeleted})
}

func (h *PageHandler) Detail(c *gin.Context) {
	id, ok := h.candidateID(c, "Candidate Details")
	if !ok {
		return
	}
	record, err := listing.Detail(c.Request.Context(), h.candidateUC, id)
	if err != nil {
		h.renderError(c, "Candidate Details", err)
		return
	}
	c.HTML(http.StatusOK, "candidate_detail.html", web.DetailPage{
		Page:      h.page(c, "Candidate Details"),
		Candidate: record,
	})
}

func (h *PageHandler) Resume(c *gin.Context) {
	id, ok := h.candidateID(c, "Candidate Details")
	if !ok {
		return
	}
	record, err := listing.Detail(c.Request.Context(), h.candidateUC, id)
	if err != nil {
		h.renderError(c, "Candidate Details", err)
		return
	}
	dl, err := listing.ResumeDownload(*record, h.apiBaseURL)
	if err != nil {
		h.renderError(c, "Candidate Details", err)
		return
	}
	if dl.IsRedirect() {
		c.Redirect(http.StatusFound, dl.RedirectURL)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.Filename))
	c.Data(http.StatusOK, dl.ContentType, dl.Data)
}

func (h *PageHandler) UpdateForm(c *gin.Context) {
	id, ok := h.candidateID(c, "Update Candidate")
	if !ok {
		return
	}
	d, err := h.update.Load(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, "Update Candidate", err)
		return
	}
	c.HTML(http.StatusOK, "candidate_form.html",
		web.NewFormPage(h.page(c, "Update Candidate"), d, updatePath(id)))
}

func (h *PageHandler) UpdateSubmit(c *gin.Context) {
	id, ok := h.candidateID(c, "Update Candidate")
	if !ok {
		return
	}
	base := form.Reduce(form.NewUpdateDraft(id), form.Loaded{Record: domain.CandidateRecord{CandidateID: id}})
	d, err := h.draftFromRequest(c, base)
	if err != nil {
		h.renderError(c, "Update Candidate", err)
		return
	}
	d, outcome := h.update.Submit(c.Request.Context(), id, d)
	if outcome != nil {
		h.redirectWithFlash(c, outcome)
		return
	}
	// the posted form does not carry the stored resume
	if record, err := h.candidateUC.Get(c.Request.Context(), id); err == nil {
		d = form.Reduce(d, form.ResumeOnFile{Ref: record.Resume})
	} else {
		logger.Log.Debug("stored resume not reloaded", zap.Int64("candidate_id", id), zap.Error(err))
	}
	c.HTML(formStatus(d), "candidate_form.html",
		web.NewFormPage(h.page(c, "Update Candidate"), d, updatePath(id)))
}

// draftFromRequest replays the posted form onto d, one field at a time.
func (h *PageHandler) draftFromRequest(c *gin.Context, d form.Draft) (form.Draft, error) {
	for _, f := range form.TextFields() {
		d = form.Reduce(d, form.ChangeField{Field: f, Value: c.PostForm(f.Key())})
	}
	d = form.Reduce(d, form.SetExperience{Value: c.PostForm(domain.FieldHaveAnyExperience.Key()) == "true"})

	file, err := h.readResume(c)
	if err != nil {
		return d, err
	}
	if file != nil {
		d = form.Reduce(d, form.AttachResume{File: file})
	}
	return d, nil
}

func (h *PageHandler) readResume(c *gin.Context) (*domain.ResumeFile, error) {
	hdr, err := c.FormFile(domain.FieldResume.Key())
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.BadRequest("Could not read the uploaded resume.")
	}
	f, err := hdr.Open()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer f.Close()

	// one byte over the cap is enough for the usecase to reject it
	data, err := io.ReadAll(io.LimitReader(f, h.maxResumeBytes+1))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.ResumeFile{
		Filename:    filepath.Base(hdr.Filename),
		ContentType: hdr.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *PageHandler) candidateID(c *gin.Context, title string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.renderError(c, title, apperror.NotFound("Candidate not found."))
		return 0, false
	}
	return id, true
}

func (h *PageHandler) redirectWithFlash(c *gin.Context, outcome *form.Outcome) {
	if outcome.Flash != "" {
		id, err := h.flash.Put(c.Request.Context(), outcome.Flash)
		if err != nil {
			logger.Log.Warn("flash not stored", zap.Error(err))
		} else {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(flashCookieName, id, int(notify.FlashTTL.Seconds()), "/", "", h.secureCookies, true)
		}
	}
	c.Redirect(http.StatusSeeOther, outcome.Redirect)
}

func (h *PageHandler) popFlash(c *gin.Context) string {
	id, err := c.Cookie(flashCookieName)
	if err != nil || id == "" {
		return ""
	}
	c.SetCookie(flashCookieName, "", -1, "/", "", h.secureCookies, true)
	msg, err := h.flash.Pop(c.Request.Context(), id)
	if err != nil {
		logger.Log.Warn("flash not read", zap.Error(err))
		return ""
	}
	return msg
}

func (h *PageHandler) renderError(c *gin.Context, title string, err error) {
	status := http.StatusInternalServerError
	if appErr, ok := apperror.As(err); ok {
		status = appErr.Code
	}
	c.HTML(status, "error.html", web.ErrorPage{Page: h.page(c, title), Error: userMessage(err)})
}

// userMessage keeps internal details out of the page.
func userMessage(err error) string {
	if appErr, ok := apperror.As(err); ok {
		return appErr.Message
	}
	return "An unexpected error occurred. Please try again later."
}

func formStatus(d form.Draft) int {
	if d.Errors().Any() {
		return http.StatusUnprocessableEntity
	}
	if d.Alert() != "" {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

func updatePath(id int64) string {
	return "/candidate/update/" + strconv.FormatInt(id, 10)
}
