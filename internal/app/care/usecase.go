package care

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petverse/internal/app/lifecycle"
	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
)

var ErrInvalidRequest = errors.New("invalid care request")

type UseCase struct {
	Pets    *lifecycle.Store
	Wallet  ports.CurrencyService
	Metrics ports.CareMetrics

	Now func() time.Time
}

// Feed applies the chosen food. The cooldown is checked before payment so a
// throttled action never debits the owner, and premium food is paid for
// inside the action window so a declined payment leaves the pet untouched.
func (u UseCase) Feed(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return Response{}, ErrInvalidRequest
	}
	p, err := u.Pets.Resolve(ctx, req.OwnerID)
	if err != nil {
		return Response{}, err
	}
	food, ok := pet.FoodByID(req.ItemID)
	if !ok {
		return Response{}, fmt.Errorf("food %q: %w", req.ItemID, ports.ErrNotFound)
	}

	snapshot, err := u.Pets.WithAction(ctx, p.ID, lifecycle.StateFeeding, func(target *pet.Pet) error {
		now := u.now()
		if remaining := pet.FeedCooldownRemaining(*target, now); remaining > 0 {
			return &pet.CooldownError{Action: "feed", Remaining: remaining}
		}
		if food.Cost > 0 {
			if err := u.Wallet.Spend(ctx, target.OwnerID, food.Cost, "food:"+food.ID); err != nil {
				return err
			}
		}
		return pet.Feed(target, food, now)
	})
	u.record("feed", err)
	if err != nil {
		return Response{}, err
	}
	return Response{
		Pet:     snapshot,
		Message: fmt.Sprintf("%s enjoyed the %s", snapshot.Name, food.Name),
	}, nil
}

// Play applies the chosen toy, with the same payment and cooldown contract
// as Feed.
func (u UseCase) Play(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return Response{}, ErrInvalidRequest
	}
	p, err := u.Pets.Resolve(ctx, req.OwnerID)
	if err != nil {
		return Response{}, err
	}
	toy, ok := pet.ToyByID(req.ItemID)
	if !ok {
		return Response{}, fmt.Errorf("toy %q: %w", req.ItemID, ports.ErrNotFound)
	}

	snapshot, err := u.Pets.WithAction(ctx, p.ID, lifecycle.StatePlaying, func(target *pet.Pet) error {
		now := u.now()
		if remaining := pet.PlayCooldownRemaining(*target, now); remaining > 0 {
			return &pet.CooldownError{Action: "play", Remaining: remaining}
		}
		if toy.Cost > 0 {
			if err := u.Wallet.Spend(ctx, target.OwnerID, toy.Cost, "toy:"+toy.ID); err != nil {
				return err
			}
		}
		return pet.Play(target, toy, now)
	})
	u.record("play", err)
	if err != nil {
		return Response{}, err
	}
	return Response{
		Pet:     snapshot,
		Message: fmt.Sprintf("%s had fun with the %s", snapshot.Name, toy.Name),
	}, nil
}

// Care is the free attention action: no item, no cost, no cooldown.
func (u UseCase) Care(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return Response{}, ErrInvalidRequest
	}
	p, err := u.Pets.Resolve(ctx, req.OwnerID)
	if err != nil {
		return Response{}, err
	}

	snapshot, err := u.Pets.WithAction(ctx, p.ID, lifecycle.StateCaring, func(target *pet.Pet) error {
		pet.Care(target, u.now())
		return nil
	})
	u.record("care", err)
	if err != nil {
		return Response{}, err
	}
	return Response{
		Pet:     snapshot,
		Message: fmt.Sprintf("%s appreciated the attention", snapshot.Name),
	}, nil
}

// record classifies the outcome: cooldowns, busy pets and declined payments
// are rejections, everything else that errors is a failure.
func (u UseCase) record(action string, err error) {
	if u.Metrics == nil {
		return
	}
	switch {
	case err == nil:
		u.Metrics.RecordSuccess(action)
	case errors.Is(err, pet.ErrCooldownActive),
		errors.Is(err, lifecycle.ErrActionInProgress),
		errors.Is(err, ports.ErrInsufficientFunds):
		u.Metrics.RecordRejected(action)
	default:
		u.Metrics.RecordFailure(action)
	}
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
