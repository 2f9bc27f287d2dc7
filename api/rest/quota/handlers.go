package quota

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/imagica/server/internal/auth"
	"codeberg.org/imagica/server/internal/errors"
	"codeberg.org/imagica/server/internal/quota"
)

// GetHandler godoc
// @Summary Get quota state
// @Description Returns the calling user's remaining daily generations and reset time
// @Tags quota
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/quota [get]
func GetHandler(cfg quota.Config, stores quota.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		limiter := quota.NewLimiter(cfg, stores.ForRequest(c.Writer, c.Request))

		state, err := limiter.State(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to read quota state", err)
			return
		}

		c.JSON(http.StatusOK, stateResponse(state))
	}
}

// ConsumeHandler godoc
// @Summary Consume one quota unit
// @Description Records a generation against the daily limit, or reports when capacity returns
// @Tags quota
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} LimitResponse
// @Router /api/v1/quota [post]
func ConsumeHandler(cfg quota.Config, stores quota.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		limiter := quota.NewLimiter(cfg, stores.ForRequest(c.Writer, c.Request))

		state, err := limiter.Consume(c.Request.Context(), userID)
		if err != nil {
			if limitErr, exceeded := quota.AsLimitExceeded(err); exceeded {
				c.JSON(http.StatusTooManyRequests, limitResponse(limitErr))
				return
			}

			errors.InternalError(c, "failed to record generation", err)
			return
		}

		c.JSON(http.StatusOK, stateResponse(state))
	}
}
