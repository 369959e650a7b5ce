package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"voice-assistant-engine/internal/command"
	"voice-assistant-engine/internal/model"
	"voice-assistant-engine/pkg/response"
)

// Process godoc
// @Summary     Process a command utterance
// @Description Runs one utterance through the engine and returns the plan and its response. Blocks while a sensitive step awaits confirmation.
// @Tags        Command
// @Accept      json
// @Produce     json
// @Param       body body processReq true "Utterance"
// @Success     200 {object} processResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/command [POST]
func (h *handler) Process(c *gin.Context) {
	ctx := c.Request.Context()

	var req processReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.Process(ctx, req.scope(), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Process: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newProcessResp(out))
}

// Confirm godoc
// @Summary     Resolve a pending confirmation
// @Description Affirms or denies a sensitive step waiting for confirmation. With no confirmation_id the user's oldest pending confirmation is resolved.
// @Tags        Command
// @Accept      json
// @Produce     json
// @Param       body body confirmReq true "Confirmation"
// @Success     200 {object} command.ConfirmOutput
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/command/confirm [POST]
func (h *handler) Confirm(c *gin.Context) {
	ctx := c.Request.Context()

	var req confirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.Confirm(ctx, model.Scope{UserID: req.UserID, Channel: "http"}, req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, out)
}

// History godoc
// @Summary     Recent interactions
// @Description Returns the user's recent interaction records, newest first.
// @Tags        Command
// @Produce     json
// @Param       user_id query string false "User ID"
// @Param       limit   query int    false "Max records (default: 10)"
// @Success     200 {object} historyResp
// @Router      /api/v1/history [GET]
func (h *handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	limit, _ := strconv.Atoi(c.Query("limit"))
	sc := model.Scope{UserID: c.Query("user_id"), Channel: "http"}

	out, err := h.uc.History(ctx, sc, command.HistoryInput{Limit: limit})
	if err != nil {
		h.l.Errorf(ctx, "uc.History: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, historyResp{Records: out.Records})
}
