package alerts

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/app/lifecycle"
)

var ErrInvalidRequest = errors.New("invalid alerts request")

const defaultTrendWindow = 24 * time.Hour

type UseCase struct {
	Pets *lifecycle.Store
}

func (u UseCase) List(ctx context.Context, req ListRequest) (ListResponse, error) {
	p, err := u.resolve(ctx, req.OwnerID)
	if err != nil {
		return ListResponse{}, err
	}
	list, err := u.Pets.Alerts(p, req.UnacknowledgedOnly)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{Alerts: list}, nil
}

func (u UseCase) Acknowledge(ctx context.Context, req AckRequest) error {
	if strings.TrimSpace(req.AlertID) == "" {
		return ErrInvalidRequest
	}
	p, err := u.resolve(ctx, req.OwnerID)
	if err != nil {
		return err
	}
	return u.Pets.Acknowledge(p, req.AlertID)
}

// Trends returns the health samples inside the window, newest last. A zero
// window means the last 24 hours.
func (u UseCase) Trends(ctx context.Context, req TrendsRequest) (TrendsResponse, error) {
	p, err := u.resolve(ctx, req.OwnerID)
	if err != nil {
		return TrendsResponse{}, err
	}
	window := req.Window
	if window <= 0 {
		window = defaultTrendWindow
	}
	trends, err := u.Pets.Trends(p, window)
	if err != nil {
		return TrendsResponse{}, err
	}
	return TrendsResponse{Trends: trends}, nil
}

func (u UseCase) SetAutoCare(ctx context.Context, req AutoCareRequest) error {
	p, err := u.resolve(ctx, req.OwnerID)
	if err != nil {
		return err
	}
	return u.Pets.SetAutoCare(p, req.Config)
}

// resolve maps an owner to their pet id, loading it from storage when the
// pet is not yet in memory.
func (u UseCase) resolve(ctx context.Context, ownerID string) (string, error) {
	if strings.TrimSpace(ownerID) == "" {
		return "", ErrInvalidRequest
	}
	p, err := u.Pets.Resolve(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}
