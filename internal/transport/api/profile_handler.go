package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/founderpass/internal/domain"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileSvs ProfileServicer
}

func NewProfileHandler(profileSvs ProfileServicer) *ProfileHandler {
	return &ProfileHandler{
		profileSvs: profileSvs,
	}
}

type EntitlementResponse struct {
	BetaAccess     bool                      `json:"beta_access"`
	BoughtAt       *time.Time                `json:"bought_at,omitempty"`
	WaitlistStatus domain.WaitlistStatusType `json:"waitlist_status"`
}

// Entitlement GET RouteGroup + UserEntitlementRoute. Чтение флага платного
// доступа для гейта дашборда; запись флага остается за верификацией платежа.
func (p *ProfileHandler) Entitlement(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	profile, err := p.profileSvs.GetByID(reqCtx, currentUserID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, EntitlementResponse{
		BetaAccess:     profile.BetaAccess,
		BoughtAt:       profile.BoughtAt,
		WaitlistStatus: profile.WaitlistStatus,
	})
}
