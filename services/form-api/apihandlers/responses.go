package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	mw "github.com/formtracer/form-backend/pkg/apihelpers/middlewares"
	"github.com/formtracer/form-backend/pkg/form/engine"
	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

func (h *HttpEndpoints) AddFormFillingAPI(rg *gin.RouterGroup) {
	fillingGroup := rg.Group("/form-filling/:instanceID/:formKey")
	{
		fillingGroup.GET("/definition", h.getFormDefinition)
		fillingGroup.POST("/session", h.openSession)
		fillingGroup.GET("/session/:sessionID/draft", h.getDraft)
		fillingGroup.PUT("/session/:sessionID/draft", mw.RequirePayload(), h.updateDraft)
		fillingGroup.GET("/session/:sessionID/page-complete", h.checkPageComplete)
		fillingGroup.POST("/session/:sessionID/submit", h.submitResponse)
	}
}

type AnswerChangeReq struct {
	QuestionID string                `json:"questionId" binding:"required"`
	Value      formTypes.AnswerValue `json:"value"`
}

type UpdateDraftReq struct {
	Changes []AnswerChangeReq `json:"changes" binding:"required,min=1,dive"`
}

// loadPublishedForm resolves the form of the current filling request and
// rejects unpublished or already closed forms.
func (h *HttpEndpoints) loadPublishedForm(c *gin.Context, instanceID string) (form formTypes.Form, ok bool) {
	formKey := c.Param("formKey")

	form, err := h.formDBConn.GetFormByKey(instanceID, formKey)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
			return form, false
		}
		slog.Error("error fetching form", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching form"})
		return form, false
	}

	now := time.Now().Unix()
	if form.Published < 1 || form.Published > now || (form.Unpublished > 0 && form.Unpublished <= now) {
		c.JSON(http.StatusNotFound, gin.H{"error": "form not available"})
		return form, false
	}
	return form, true
}

func (h *HttpEndpoints) getFormDefinition(c *gin.Context) {
	instanceID, ok := h.checkInstanceID(c)
	if !ok {
		return
	}
	form, ok := h.loadPublishedForm(c, instanceID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": form})
}

// openSession starts a new filling session for the form. The returned
// session id addresses the draft of this respondent until submission.
func (h *HttpEndpoints) openSession(c *gin.Context) {
	instanceID, ok := h.checkInstanceID(c)
	if !ok {
		return
	}
	form, ok := h.loadPublishedForm(c, instanceID)
	if !ok {
		return
	}

	sessionID := uuid.NewString()
	slog.Info("filling session opened", slog.String("instanceID", instanceID), slog.String("formKey", form.FormKey), slog.String("sessionID", sessionID))
	c.JSON(http.StatusCreated, gin.H{
		"sessionId": sessionID,
		"versionId": form.VersionID,
		"openedAt":  time.Now().Unix(),
	})
}

// getDraft returns the saved answers of the session together with the ids
// of the questions currently visible under those answers.
func (h *HttpEndpoints) getDraft(c *gin.Context) {
	instanceID, ok := h.checkInstanceID(c)
	if !ok {
		return
	}
	form, ok := h.loadPublishedForm(c, instanceID)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")

	answers, err := h.draftStore.GetAnswers(instanceID, form.FormKey, sessionID)
	if err != nil {
		slog.Error("error loading draft", slog.String("instanceID", instanceID), slog.String("formKey", form.FormKey), slog.String("sessionID", sessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading draft"})
		return
	}

	responseEngine := engine.NewResponseEngine(form.Questions, nil)
	visibleIDs := []string{}
	for _, q := range responseEngine.VisibleQuestions(answers) {
		visibleIDs = append(visibleIDs, q.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"answers":            answers,
		"visibleQuestionIds": visibleIDs,
	})
}

// updateDraft applies answer changes to the stored draft. Cascaded
// removals of dependent answers are written back to the draft store
// through the session sink, the response carries the resulting answer set
// and the visibility it implies.
func (h *HttpEndpoints) updateDraft(c *gin.Context) {
	instanceID, ok := h.checkInstanceID(c)
	if !ok {
		return
	}
	form, ok := h.loadPublishedForm(c, instanceID)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")

	var req UpdateDraftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answers, err := h.draftStore.GetAnswers(instanceID, form.FormKey, sessionID)
	if err != nil {
		slog.Error("error loading draft", slog.String("instanceID", instanceID), slog.String("formKey", form.FormKey), slog.String("sessionID", sessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading draft"})
		return
	}

	changes := make([]engine.Change, len(req.Changes))
	for i, change := range req.Changes {
		changes[i] = engine.Change{QuestionID: change.QuestionID, Value: change.Value}
	}

	sink := h.draftStore.ForSession(instanceID, form.FormKey, sessionID)
	responseEngine := engine.NewResponseEngine(form.Questions, sink)
	updated := responseEngine.ApplyChanges(answers, changes...)

	if err := h.draftStore.SaveAnswers(instanceID, form.FormKey, sessionID, updated); err != nil {
		slog.Error("error saving draft", slog.String("instanceID", instanceID), slog.String("formKey", form.FormKey), slog.String("sessionID", sessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving draft"})
		return
	}

	visibleIDs := []string{}
	for _, q := range responseEngine.VisibleQuestions(updated) {
		visibleIDs = append(visibleIDs, q.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"answers":            updated,
		"visibleQuestionIds": visibleIDs,
	})
}

// checkPageComplete tells the client whether navigation away from the
// given page should be allowed.
func (h *HttpEndpoints) checkPageComplete(c *gin.Context) {
	instanceID, ok := h.checkInstanceID(c)
	if !ok {
		return
	}
	form, ok := h.loadPublishedForm(c, instanceID)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")

	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}

	answers, err := h.draftStore.GetAnswers(instanceID, form.FormKey, sessionID)
	if err != nil {
		slog.Error("error loading draft", slog.String("instanceID", instanceID), slog.String("formKey", form.FormKey), slog.String("sessionID", sessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading draft"})
		return
	}

	responseEngine := engine.NewResponseEngine(form.Questions, nil)
	c.JSON(http.StatusOK, gin.H{
		"page":     page,
		"complete": responseEngine.IsPageComplete(form.QuestionsOnPage(page), answers),
	})
}

type SubmitReq struct {
	OpenedAt int64 `json:"openedAt"`
}

// submitResponse turns the session draft into a persisted form response.
// The draft is sanitized through the engine first so stale answers of
// hidden questions never reach storage, then validated against the
// required questions of the catalog.
func (h *HttpEndpoints) submitResponse(c *gin.Context) {
	instanceID, ok := h.checkInstanceID(c)
	if !ok {
		return
	}
	form, ok := h.loadPublishedForm(c, instanceID)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")

	var req SubmitReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.Error("failed to bind request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	answers, err := h.draftStore.GetAnswers(instanceID, form.FormKey, sessionID)
	if err != nil {
		slog.Error("error loading draft", slog.String("instanceID", instanceID), slog.String("formKey", form.FormKey), slog.String("sessionID", sessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading draft"})
		return
	}

	responseEngine := engine.NewResponseEngine(form.Questions, nil)
	sanitized := responseEngine.ApplyChanges(answers)

	if err := responseEngine.ValidateForm(sanitized); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().Unix()
	response := formTypes.FormResponse{
		FormKey:     form.FormKey,
		SessionID:   sessionID,
		VersionID:   form.VersionID,
		OpenedAt:    req.OpenedAt,
		SubmittedAt: now,
		ArrivedAt:   now,
		Answers:     sanitized,
	}

	responseID, err := h.formDBConn.AddResponse(instanceID, form.FormKey, response)
	if err != nil {
		slog.Error("error saving response", slog.String("instanceID", instanceID), slog.String("formKey", form.FormKey), slog.String("sessionID", sessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving response"})
		return
	}

	if err := h.draftStore.DeleteDraft(instanceID, form.FormKey, sessionID); err != nil {
		slog.Error("error deleting draft after submission", slog.String("instanceID", instanceID), slog.String("formKey", form.FormKey), slog.String("sessionID", sessionID), slog.String("error", err.Error()))
	}

	slog.Info("form response submitted", slog.String("instanceID", instanceID), slog.String("formKey", form.FormKey), slog.String("sessionID", sessionID))
	c.JSON(http.StatusOK, gin.H{"responseId": responseID})
}
