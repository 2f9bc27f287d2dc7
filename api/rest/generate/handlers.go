package generate

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/imagica/server/internal/auth"
	"codeberg.org/imagica/server/internal/errors"
	"codeberg.org/imagica/server/internal/logger"
	"codeberg.org/imagica/server/internal/provider"
	"codeberg.org/imagica/server/internal/quota"
)

// upper bound on one provider call; expiry surfaces as a timeout failure
const generationTimeout = 60 * time.Second

// Handler godoc
// @Summary Generate images
// @Description Generates images from a text prompt, consuming one unit of the daily quota
// @Tags generate
// @Accept json
// @Produce json
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} RateLimitedResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/generate [post]
func Handler(generator provider.Generator, quotaCfg quota.Config, stores quota.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
			return
		}

		// reject before any quota or provider work
		if strings.TrimSpace(req.Prompt) == "" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Prompt is required"})
			return
		}

		userID, authenticated := auth.GetUserID(c)
		if !authenticated {
			errors.Unauthorized(c, "")
			return
		}

		limiter := quota.NewLimiter(quotaCfg, stores.ForRequest(c.Writer, c.Request))

		// quota is consumed up front and deliberately NOT returned on
		// provider failure: a failed generation still counts for the day
		if _, err := limiter.Consume(c.Request.Context(), userID); err != nil {
			if limitErr, exceeded := quota.AsLimitExceeded(err); exceeded {
				c.JSON(http.StatusTooManyRequests, RateLimitedResponse{
					Error:          "Generation limit reached",
					TimeUntilReset: limitErr.TimeUntilReset.Milliseconds(),
					NextResetTime:  limitErr.NextResetTime.Format(time.RFC3339),
				})
				return
			}

			errors.InternalError(c, "failed to record generation", err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), generationTimeout)
		defer cancel()

		outputs, err := generator.Generate(ctx, provider.Request{
			Prompt:         req.Prompt,
			Style:          req.Style,
			NegativePrompt: req.NegativePrompt,
			NumOutputs:     req.NumberOfImages,
			AspectRatio:    req.AspectRatio,
			Width:          req.Width,
			Height:         req.Height,
			Creativity:     req.Creativity,
		})

		if err != nil {
			// full detail stays in logs; the client gets a short message
			logger.ErrorErr(err, "failed to generate images",
				"user_id", userID,
				"style", req.Style,
			)

			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: provider.FriendlyMessage(err),
			})

			return
		}

		imageURLs, err := provider.Normalize(outputs)
		if err != nil {
			logger.ErrorErr(err, "provider returned no usable images",
				"user_id", userID,
			)

			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: provider.FriendlyMessage(err),
			})

			return
		}

		c.JSON(http.StatusOK, Response{ImageURLs: imageURLs})
	}
}
