package chat

import (
	"go.uber.org/zap"

	"solobot/internal/dialog"
	"solobot/internal/domain"
	"solobot/internal/textnorm"
)

// State is the conversation state threaded through each turn: the slot
// values remembered so far and the last conceptual answer, kept so a vague
// "what is that?" follow-up can repeat it. It is passed in and returned
// explicitly; nothing is kept in package-level variables.
type State struct {
	Slots          domain.Slots
	LastConceptual string
}

// ResumeState recovers the state for a loaded session from its last
// recorded context snapshot.
func ResumeState(turns []domain.Turn) State {
	if len(turns) == 0 {
		return State{}
	}
	if ctx := turns[len(turns)-1].Contexto; ctx != nil {
		return State{Slots: *ctx}
	}
	return State{}
}

// Engine processes one turn at a time: merge freshly extracted slots into
// the state, expand pronoun-bearing follow-ups with the remembered
// context, ask the responder, and record the turn.
type Engine struct {
	responder Responder
	logger    *zap.Logger
}

// NewEngine creates a turn-processing engine over a response selector.
func NewEngine(responder Responder, logger *zap.Logger) *Engine {
	return &Engine{responder: responder, logger: logger}
}

// Process handles a single user input and returns the updated state and
// the recorded turn. Slots are extracted from the raw input before
// expansion, matching the documented carry-over behavior. A generic
// "what is that?" follow-up repeats the remembered conceptual answer
// without consulting the responder; a matched conceptual answer is
// remembered and any other matched answer forgets it.
func (e *Engine) Process(state State, input string) (State, domain.Turn, error) {
	slots := dialog.Merge(state.Slots, dialog.ExtractSlots(input))
	normalized := textnorm.Normalize(input)

	if state.LastConceptual != "" && dialog.GenericFollowup(normalized) {
		turn := domain.Turn{
			Entrada:    input,
			Normalized: normalized,
			Resposta:   state.LastConceptual,
		}
		if !slots.Empty() {
			snapshot := slots
			turn.Contexto = &snapshot
		}
		e.logger.Debug("conceptual answer repeated", zap.String("normalized", normalized))
		return State{Slots: slots, LastConceptual: state.LastConceptual}, turn, nil
	}

	expanded := dialog.ExpandWithContext(input, slots)
	reply, err := e.responder.Respond(expanded)
	if err != nil {
		return state, domain.Turn{}, err
	}
	last := state.LastConceptual
	if reply.Matched {
		if dialog.Conceptual(normalized) {
			last = reply.Text
		} else {
			last = ""
		}
	}
	turn := domain.Turn{
		Entrada:    input,
		Normalized: textnorm.Normalize(expanded),
		Resposta:   reply.Text,
		Confianca:  reply.Confidence,
	}
	if !slots.Empty() {
		snapshot := slots
		turn.Contexto = &snapshot
	}
	e.logger.Debug("turn processed",
		zap.String("normalized", turn.Normalized),
		zap.Float64("confidence", reply.Confidence),
		zap.Bool("matched", reply.Matched))
	return State{Slots: slots, LastConceptual: last}, turn, nil
}
