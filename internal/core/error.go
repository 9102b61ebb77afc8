package core

import "errors"

// errors
var (
	ErrNilCore        = errors.New("groupsync core is nil")
	ErrNilSyncer      = errors.New("syncer is nil")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrNotInitialized = errors.New("core is not initialized")
)
