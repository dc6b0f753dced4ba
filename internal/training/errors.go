package training

import "errors"

// Error kinds distinguishing which stage of a run failed. The orchestrator
// wraps the underlying cause together with one of these sentinels, so callers
// can branch on errors.Is while the original cause stays in the chain.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrData          = errors.New("data error")
	ErrFit           = errors.New("fit error")
	ErrScore         = errors.New("score error")
	ErrPersistence   = errors.New("persistence error")
	ErrSerialization = errors.New("serialization error")
)
