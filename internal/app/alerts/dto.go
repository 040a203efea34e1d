package alerts

import (
	"time"

	"petverse/internal/app/lifecycle"
	"petverse/internal/domain/pet"
)

type ListRequest struct {
	OwnerID            string
	UnacknowledgedOnly bool
}

type ListResponse struct {
	Alerts []pet.HealthAlert `json:"alerts"`
}

type AckRequest struct {
	OwnerID string `json:"-"`
	AlertID string `json:"alert_id"`
}

type TrendsRequest struct {
	OwnerID string
	Window  time.Duration
}

type TrendsResponse struct {
	Trends []pet.HealthTrend `json:"trends"`
}

type AutoCareRequest struct {
	OwnerID string             `json:"-"`
	Config  lifecycle.AutoCare `json:"config"`
}
