package xform

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/offview/internal/logger"
	"github.com/Faultbox/offview/pkg/math"
)

// Stack holds the history of cumulative transforms. The bottom entry is the
// identity and is never removed.
type Stack struct {
	entries []math.Mat4
	log     *zap.Logger
}

// NewStack returns a stack holding only the identity transform.
func NewStack() *Stack {
	return &Stack{
		entries: []math.Mat4{math.Identity()},
		log:     logger.Named("xform"),
	}
}

// PushAndApply composes cmd onto the current transform and pushes the result.
// cmd acts in object space, before everything already on the stack.
// If cmd is rejected the stack is unchanged.
func (s *Stack) PushAndApply(cmd Command) error {
	var rec Recorder
	if err := cmd.Emit(&rec); err != nil {
		s.log.Warn("command rejected", zap.Stringer("command", cmd), zap.Error(err))
		return errors.Wrapf(err, "applying %s", cmd)
	}

	s.entries = append(s.entries, s.Current().Mul(Compose(rec.Ops)))
	s.log.Info("command applied",
		zap.Stringer("command", cmd),
		zap.Int("primitives", len(rec.Ops)),
		zap.Int("depth", len(s.entries)),
	)
	return nil
}

// Undo drops the most recent transform. It reports false, and does nothing,
// when only the identity is left.
func (s *Stack) Undo() bool {
	if len(s.entries) == 1 {
		s.log.Debug("undo at bottom of stack")
		return false
	}
	s.entries = s.entries[:len(s.entries)-1]
	s.log.Info("undo", zap.Int("depth", len(s.entries)))
	return true
}

// Current returns the cumulative transform on top of the stack.
func (s *Stack) Current() math.Mat4 {
	return s.entries[len(s.entries)-1]
}

// Depth returns the number of entries, at least 1.
func (s *Stack) Depth() int {
	return len(s.entries)
}
