package scheduler

import "errors"

var (
	// ErrInvalidMastery is returned when a mastery value outside [0, 1]
	// reaches a computation that requires a valid one.
	ErrInvalidMastery = errors.New("mastery must be between 0 and 1")

	// ErrInvalidQuality is returned when a recall quality outside the
	// 0-5 scale is passed to the interval computation.
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")

	// ErrNoProgress is returned by operations that need existing per-learner
	// state when the learner has none.
	ErrNoProgress = errors.New("learner has no topic progress; initialize it first")

	// ErrEmptyRegistry is returned when progress initialization finds no
	// topics in the registry.
	ErrEmptyRegistry = errors.New("no topics registered")
)
