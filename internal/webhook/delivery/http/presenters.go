package http

import (
	"encoding/json"
	"time"

	"buildhook/internal/model"
	"buildhook/internal/webhook"
)

// --- Request DTOs ---

type listReq struct {
	Provider     string `form:"provider" binding:"omitempty,oneof=github gitlab"`
	RepositoryID string `form:"repository_id"`
	Processed    *bool  `form:"processed"`
	Limit        int    `form:"limit"`
	Offset       int    `form:"offset"`
}

func (r listReq) toInput() webhook.ListInput {
	limit := r.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := r.Offset
	if offset < 0 {
		offset = 0
	}
	return webhook.ListInput{
		Provider:     model.Provider(r.Provider),
		RepositoryID: r.RepositoryID,
		Processed:    r.Processed,
		Limit:        limit,
		Offset:       offset,
	}
}

// --- Response DTOs ---

type intakeResp struct {
	Status  string `json:"status"`
	EventID string `json:"event_id,omitempty"`
}

type eventResp struct {
	ID            string          `json:"id"`
	RepositoryID  *string         `json:"repository_id,omitempty"`
	Provider      string          `json:"provider"`
	EventType     string          `json:"event_type"`
	DeliveryID    string          `json:"delivery_id"`
	PayloadDigest string          `json:"payload_digest"`
	Processed     bool            `json:"processed"`
	ErrorMessage  *string         `json:"error_message,omitempty"`
	ReceivedAt    time.Time       `json:"received_at"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
	Payload       json.RawMessage `json:"payload,omitempty" swaggertype:"object"`
}

func newEventResp(ev model.WebhookEvent) eventResp {
	resp := eventResp{
		ID:            ev.ID,
		RepositoryID:  ev.RepositoryID,
		Provider:      ev.Provider.String(),
		EventType:     ev.EventType,
		DeliveryID:    ev.DeliveryID,
		PayloadDigest: ev.PayloadDigest,
		Processed:     ev.Processed,
		ErrorMessage:  ev.ErrorMessage,
		ReceivedAt:    ev.ReceivedAt,
		ProcessedAt:   ev.ProcessedAt,
	}
	if json.Valid(ev.Payload) {
		resp.Payload = json.RawMessage(ev.Payload)
	}
	return resp
}

type listResp struct {
	Events []eventResp `json:"events"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

func (h *handler) newListResp(out webhook.ListOutput) listResp {
	items := make([]eventResp, len(out.Events))
	for i, ev := range out.Events {
		items[i] = newEventResp(ev)
	}
	return listResp{
		Events: items,
		Total:  out.Total,
		Limit:  out.Limit,
		Offset: out.Offset,
	}
}
