package processor

import (
	"context"
	"slices"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
	"github.com/mitchelldurbincs/obelisk/internal/game/events"
	"github.com/mitchelldurbincs/obelisk/internal/game/rules"
	"github.com/rs/zerolog"
)

// Order is one player's submitted action for a turn.
type Order struct {
	Player int
	Action core.Action
}

// Rejection records an order that was dropped and why.
type Rejection struct {
	Order
	Err error
}

// EventPublisher is satisfied by events.PublisherAdapter.
type EventPublisher interface {
	Publish(event any)
}

// ActionProcessor turns the orders submitted for a turn into one action per player,
// aligned by position, ready for game.Advance.
type ActionProcessor struct {
	logger         zerolog.Logger
	legalMoves     *rules.LegalMoveCalculator
	eventPublisher EventPublisher
	gameID         string
}

func NewActionProcessor(logger zerolog.Logger) *ActionProcessor {
	return &ActionProcessor{
		logger:     logger.With().Str("component", "ActionProcessor").Logger(),
		legalMoves: rules.NewLegalMoveCalculator(),
	}
}

// SetEventPublisher makes the processor publish an event for every rejected order.
func (ap *ActionProcessor) SetEventPublisher(publisher EventPublisher, gameID string) {
	ap.eventPublisher = publisher
	ap.gameID = gameID
}

// AlignOrders builds the action vector for a turn.
//
// Orders are handled by player index; players that cannot play get None, playing
// players without an order get Skip. Orders for unknown players, second orders for
// the same player and illegal orders are rejected, and a rejected order is replaced
// by Skip. The only error returned is a context error.
func (ap *ActionProcessor) AlignOrders(ctx context.Context, turn int, players []core.Player, orders []Order) ([]core.Action, []Rejection, error) {
	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b Order) int { return a.Player - b.Player })

	actions := make([]core.Action, len(players))
	seen := make([]bool, len(players))
	var rejections []Rejection

	for _, order := range sorted {
		if err := ctx.Err(); err != nil {
			ap.logger.Warn().Err(err).Msg("Order processing interrupted by context cancellation")
			return nil, rejections, err
		}

		var err error
		switch {
		case order.Player < 0 || order.Player >= len(players):
			err = core.WrapActionError(order.Player, order.Action, core.ErrInvalidPlayer)
		case seen[order.Player]:
			err = core.WrapActionError(order.Player, order.Action, core.ErrDuplicateOrder)
		default:
			seen[order.Player] = true
			err = ap.legalMoves.ValidateAction(players, order.Player, order.Action)
		}

		if err != nil {
			rejections = append(rejections, Rejection{Order: order, Err: err})
			ap.reject(turn, order, err)
			continue
		}
		actions[order.Player] = order.Action
	}

	// A playing player never has a legal None, so None here means no usable order.
	for i, p := range players {
		if p.CanPlay() && actions[i].IsNone() {
			actions[i] = core.Skip()
		}
	}

	ap.logger.Debug().
		Int("turn", turn).
		Int("orders", len(orders)).
		Int("rejected", len(rejections)).
		Str("actions", core.FormatActions(actions)).
		Msg("Orders aligned")
	return actions, rejections, nil
}

func (ap *ActionProcessor) reject(turn int, order Order, err error) {
	ap.logger.Warn().Err(err).
		Int("turn", turn).
		Int("player", order.Player).
		Str("action", order.Action.String()).
		Msg("Order rejected")
	if ap.eventPublisher != nil {
		ap.eventPublisher.Publish(events.NewActionRejectedEvent(ap.gameID, turn, order.Player, order.Action, err.Error()))
	}
}
