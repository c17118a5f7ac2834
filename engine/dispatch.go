package engine

import (
	"fmt"

	"github.com/marisk/vantage/engine/resolve"
	"github.com/marisk/vantage/types"
)

// Dispatch runs one action handler and returns its result.
//
// Text handlers emit a text effect. Exit handlers resolve the handler's
// destination like an exit destination and transition there. Script
// handlers are forwarded to the script runtime; a missing runtime or a
// script failure is reported as an error effect, not a crash, so a bad
// script cannot take down a playthrough.
func (e *Engine) Dispatch(h *types.Handler) (*types.Result, error) {
	switch h.Result {
	case types.ResultText:
		text := h.Contents.Text
		return &types.Result{
			Effects: []types.Effect{{Type: types.EffectText, Params: map[string]any{"text": text}}},
			Output:  []string{text},
		}, nil

	case types.ResultExit:
		dest := resolve.Destination(h.Contents.Destination(), e.State.FunValue, e.RNG)
		return e.TransitionTo(dest)

	case types.ResultScript:
		if e.Scripts == nil {
			err := fmt.Errorf("script handler %q with no script runtime attached", h.Contents.Text)
			e.Log.Error("dispatch failed", "err", err)
			return errorResult(err), nil
		}
		res, err := e.Scripts.Call(h.Contents.Text)
		if err != nil {
			e.Log.Error("script handler failed", "spec", h.Contents.Text, "err", err)
			return errorResult(err), nil
		}
		if res == nil {
			res = &types.Result{}
		}
		return res, nil
	}

	return nil, fmt.Errorf("unknown handler result type %q", h.Result)
}

func errorResult(err error) *types.Result {
	return &types.Result{
		Effects: []types.Effect{{Type: types.EffectError, Params: map[string]any{"message": err.Error()}}},
	}
}
