package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/formtracer/form-backend/pkg/apihelpers"
	mw "github.com/formtracer/form-backend/pkg/apihelpers/middlewares"
	"github.com/formtracer/form-backend/pkg/form/hierarchy"
	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

func (h *HttpEndpoints) AddFormManagementAPI(rg *gin.RouterGroup) {
	formsGroup := rg.Group("/form-management/:instanceID")
	if len(h.managementAPIKeys) > 0 {
		formsGroup.Use(mw.HasValidAPIKey(h.managementAPIKeys))
	}
	{
		formsGroup.GET("/forms", h.getFormInfos)
		formsGroup.POST("/forms", mw.RequirePayload(), h.createForm)
		formsGroup.GET("/forms/:formKey", h.getForm)
		formsGroup.PUT("/forms/:formKey", mw.RequirePayload(), h.updateForm)
		formsGroup.DELETE("/forms/:formKey", h.deleteForm)
		formsGroup.GET("/forms/:formKey/hierarchy", h.getFormHierarchy)
		formsGroup.GET("/forms/:formKey/responses", h.getFormResponses)
	}
}

// SaveFormReq is the management payload for creating or replacing a form
// definition. Question types are checked by the custom binding validator.
type SaveFormReq struct {
	FormKey   string              `json:"formKey"`
	Props     formTypes.FormProps `json:"props"`
	Questions []QuestionReq       `json:"questions" binding:"omitempty,dive"`
}

type QuestionReq struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	QuestionType string               `json:"questionType" binding:"required,questiontype"`
	Required     bool                 `json:"required"`
	Score        *float64             `json:"score"`
	Page         int                  `json:"page" binding:"omitempty,gte=0"`
	Options      []formTypes.Option   `json:"options"`
	Condition    *formTypes.ParentRef `json:"condition"`
}

func (req SaveFormReq) toForm() formTypes.Form {
	questions := make([]formTypes.Question, len(req.Questions))
	for i, q := range req.Questions {
		id := q.ID
		if id == "" {
			id = uuid.NewString()
		}
		questions[i] = formTypes.Question{
			ID:           id,
			Title:        q.Title,
			QuestionType: q.QuestionType,
			Required:     q.Required,
			Score:        q.Score,
			Page:         q.Page,
			Options:      q.Options,
			Condition:    q.Condition,
		}
	}
	return formTypes.Form{
		FormKey:   req.FormKey,
		Props:     req.Props,
		Questions: questions,
	}
}

func (h *HttpEndpoints) getFormInfos(c *gin.Context) {
	instanceID, ok := h.checkInstanceID(c)
	if !ok {
		return
	}

	infos, err := h.formDBConn.GetFormInfos(instanceID)
	if err != nil {
		slog.Error("error fetching forms", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching forms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"forms": infos})
}

func (h *HttpEndpoints) createForm(c *gin.Context) {
	instanceID, ok := h.checkInstanceID(c)
	if !ok {
		return
	}

	var req SaveFormReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form := req.toForm()
	if form.FormKey == "" {
		form.FormKey = uuid.NewString()
	}
	form.VersionID = uuid.NewString()
	form.Published = time.Now().Unix()

	created, err := h.formDBConn.CreateForm(instanceID, form)
	if err != nil {
		slog.Error("error creating form", slog.String("instanceID", instanceID), slog.String("formKey", form.FormKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating form"})
		return
	}

	slog.Info("form created", slog.String("instanceID", instanceID), slog.String("formKey", created.FormKey))
	c.JSON(http.StatusCreated, gin.H{"form": created})
}

func (h *HttpEndpoints) getForm(c *gin.Context) {
	instanceID, ok := h.checkInstanceID(c)
	if !ok {
		return
	}
	formKey := c.Param("formKey")

	form, err := h.formDBConn.GetFormByKey(instanceID, formKey)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
			return
		}
		slog.Error("error fetching form", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching form"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": form})
}

func (h *HttpEndpoints) updateForm(c *gin.Context) {
	instanceID, ok := h.checkInstanceID(c)
	if !ok {
		return
	}
	formKey := c.Param("formKey")

	var req SaveFormReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form := req.toForm()
	form.FormKey = formKey
	form.VersionID = uuid.NewString()
	form.Published = time.Now().Unix()

	if err := h.formDBConn.UpdateForm(instanceID, form); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
			return
		}
		slog.Error("error updating form", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating form"})
		return
	}

	slog.Info("form updated", slog.String("instanceID", instanceID), slog.String("formKey", formKey))
	c.JSON(http.StatusOK, gin.H{"form": form})
}

func (h *HttpEndpoints) deleteForm(c *gin.Context) {
	instanceID, ok := h.checkInstanceID(c)
	if !ok {
		return
	}
	formKey := c.Param("formKey")

	if err := h.formDBConn.DeleteForm(instanceID, formKey); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
			return
		}
		slog.Error("error deleting form", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting form"})
		return
	}

	slog.Info("form deleted", slog.String("instanceID", instanceID), slog.String("formKey", formKey))
	c.JSON(http.StatusOK, gin.H{"message": "form deleted"})
}

// getFormHierarchy returns the question forest the builder UI renders as
// nested cards.
func (h *HttpEndpoints) getFormHierarchy(c *gin.Context) {
	instanceID, ok := h.checkInstanceID(c)
	if !ok {
		return
	}
	formKey := c.Param("formKey")

	form, err := h.formDBConn.GetFormByKey(instanceID, formKey)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
			return
		}
		slog.Error("error fetching form", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching form"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"roots": hierarchy.Build(form.Questions)})
}

func (h *HttpEndpoints) getFormResponses(c *gin.Context) {
	instanceID, ok := h.checkInstanceID(c)
	if !ok {
		return
	}
	formKey := c.Param("formKey")

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	responses, paginationInfo, err := h.formDBConn.GetResponses(instanceID, formKey, query.Filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		slog.Error("error fetching responses", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching responses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"responses":  responses,
		"pagination": paginationInfo,
	})
}
