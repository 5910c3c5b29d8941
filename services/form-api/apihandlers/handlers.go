package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	formDB "github.com/formtracer/form-backend/pkg/db/form"
	"github.com/formtracer/form-backend/pkg/draftstore"
	"github.com/formtracer/form-backend/pkg/utils"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	formDBConn         *formDB.FormDBService
	draftStore         *draftstore.DraftStore
	allowedInstanceIDs []string
	managementAPIKeys  []string
}

func NewHTTPHandler(
	formDBConn *formDB.FormDBService,
	draftStore *draftstore.DraftStore,
	allowedInstanceIDs []string,
	managementAPIKeys []string,
) *HttpEndpoints {
	return &HttpEndpoints{
		formDBConn:         formDBConn,
		draftStore:         draftStore,
		allowedInstanceIDs: allowedInstanceIDs,
		managementAPIKeys:  managementAPIKeys,
	}
}

// checkInstanceID aborts the request when the instance is not served by
// this deployment.
func (h *HttpEndpoints) checkInstanceID(c *gin.Context) (instanceID string, ok bool) {
	instanceID = c.Param("instanceID")
	if !utils.ContainsString(h.allowedInstanceIDs, instanceID) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid instanceID"})
		return instanceID, false
	}
	return instanceID, true
}
