package event

// Compile-time interface check
var _ Event = LinkCreated{}

// LinkCreated is raised when a new short link is allocated. It is not raised
// when shortening a URL that already has a live code.
type LinkCreated struct {
	Base
	ShortCode   string `json:"short_code"`
	OriginalURL string `json:"original_url"`
	CustomCode  bool   `json:"custom_code"`
}

// NewLinkCreated creates a new LinkCreated event.
func NewLinkCreated(shortCode, originalURL string, customCode bool) LinkCreated {
	return LinkCreated{
		Base:        NewBase(shortCode),
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		CustomCode:  customCode,
	}
}

// EventName returns the event name.
func (e LinkCreated) EventName() string {
	return "link.created"
}
