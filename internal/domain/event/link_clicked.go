package event

// LinkClicked is raised when a short link is accessed for redirection.
type LinkClicked struct {
	Base
	ShortCode  string `json:"short_code"`
	ClickCount int64  `json:"click_count"`
	UserAgent  string `json:"user_agent"`
	IPAddress  string `json:"ip_address"`
	Referrer   string `json:"referrer"`
}

// NewLinkClicked creates a new LinkClicked event.
func NewLinkClicked(shortCode string, clickCount int64, userAgent, ipAddress, referrer string) LinkClicked {
	return LinkClicked{
		Base:       NewBase(shortCode),
		ShortCode:  shortCode,
		ClickCount: clickCount,
		UserAgent:  userAgent,
		IPAddress:  ipAddress,
		Referrer:   referrer,
	}
}

// EventName returns the event name.
func (e LinkClicked) EventName() string {
	return "link.clicked"
}
