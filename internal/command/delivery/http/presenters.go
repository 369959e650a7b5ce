package http

import (
	"voice-assistant-engine/internal/command"
	"voice-assistant-engine/internal/model"
)

type processReq struct {
	Text   string `json:"text" binding:"required"`
	UserID string `json:"user_id"`
}

func (r processReq) toInput() command.ProcessInput {
	return command.ProcessInput{Text: r.Text}
}

func (r processReq) scope() model.Scope {
	return model.Scope{UserID: r.UserID, Channel: "http"}
}

type processResp struct {
	PlanID   string              `json:"plan_id"`
	Response string              `json:"response"`
	Steps    []*model.ActionStep `json:"steps"`
}

func newProcessResp(out command.ProcessOutput) processResp {
	return processResp{
		PlanID:   out.PlanID,
		Response: out.Response,
		Steps:    out.Steps,
	}
}

type confirmReq struct {
	ConfirmationID string `json:"confirmation_id"`
	Affirmed       bool   `json:"affirmed"`
	UserID         string `json:"user_id"`
}

func (r confirmReq) toInput() command.ConfirmInput {
	return command.ConfirmInput{
		ConfirmationID: r.ConfirmationID,
		Affirmed:       r.Affirmed,
	}
}

type historyResp struct {
	Records []model.InteractionRecord `json:"records"`
}
