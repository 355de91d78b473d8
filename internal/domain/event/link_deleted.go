package event

// LinkDeleted is raised when a short link is deleted.
type LinkDeleted struct {
	Base
	ShortCode string `json:"short_code"`
}

// NewLinkDeleted creates a new LinkDeleted event.
func NewLinkDeleted(shortCode string) LinkDeleted {
	return LinkDeleted{
		Base:      NewBase(shortCode),
		ShortCode: shortCode,
	}
}

// EventName returns the event name.
func (e LinkDeleted) EventName() string {
	return "link.deleted"
}
