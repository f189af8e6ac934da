package events

import "github.com/shlayncha-dot/tgbot-SLS/internal/models"

// OnVerified is called after a verification row has been persisted.
// services will call this if it's set.
var OnVerified func(vu models.VerifiedUser)
