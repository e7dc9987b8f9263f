package service

import "errors"

// ErrOffline is returned by ForceSync when the connectivity monitor reports
// the backend as unreachable.
var ErrOffline = errors.New("backend is unreachable")

// ErrUnknownActionType is returned when an action carries a type outside the
// closed set. Such actions are never sent to the server.
var ErrUnknownActionType = errors.New("unknown action type")

// ErrNotDeadLettered is returned by the dead-letter operations when the
// target action has not exhausted its retries.
var ErrNotDeadLettered = errors.New("action is not dead-lettered")
