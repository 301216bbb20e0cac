package notify

import "afroboost/internal/logger"

// Outbound delivers a messaging deep link. Implementations must be safe for
// fire-and-forget use; a failed delivery never affects the booking it
// belongs to.
type Outbound interface {
	Open(url string) error
}

// LogOutbound records the deep link so the coach tooling can pick it up.
type LogOutbound struct{}

func (LogOutbound) Open(url string) error {
	logger.Infof("Opening notification link: %s", url)
	return nil
}
