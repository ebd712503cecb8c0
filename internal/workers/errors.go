package workers

import "errors"

// ErrInvalidSchedule is returned for a schedule robfig/cron cannot parse.
var ErrInvalidSchedule = errors.New("invalid worker schedule")
