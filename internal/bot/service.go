// Package bot exposes the scheduling-bot toggle. The bot itself runs behind
// the webhook backend; this package only flips and reports its state.
package bot

import (
	"context"
	"fmt"

	"github.com/dentalspace/clinic-admin-api/internal/optimistic"
	"github.com/dentalspace/clinic-admin-api/pkg/logging"
)

// State holds the locally cached bot flag.
type State interface {
	BotActive() bool
	SetBotActive(active bool) (prev bool)
}

// Toggler pushes the bot state to the backend.
type Toggler interface {
	ToggleBot(ctx context.Context, active bool) error
}

// Service flips the bot state optimistically: the local flag changes first,
// the backend write follows, and a failed write reverts the flag to what it
// was before the call.
type Service struct {
	state  State
	client Toggler
	logger *logging.Logger
}

// NewService creates the bot service.
func NewService(state State, client Toggler, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		state:  state,
		client: client,
		logger: logger,
	}
}

// Active returns the current bot state.
func (s *Service) Active() bool {
	return s.state.BotActive()
}

// SetActive sets the bot state. On backend failure the local state is
// reverted to its value before this call and the error returned.
func (s *Service) SetActive(ctx context.Context, active bool) error {
	var prev bool
	err := optimistic.Do(ctx,
		func() { prev = s.state.SetBotActive(active) },
		func(ctx context.Context) error { return s.client.ToggleBot(ctx, active) },
		func(ctx context.Context, err error) {
			s.state.SetBotActive(prev)
			s.logger.Warn("bot toggle reverted", "wanted", active, "error", err)
		},
	)
	if err != nil {
		return fmt.Errorf("bot: toggle: %w", err)
	}
	return nil
}
