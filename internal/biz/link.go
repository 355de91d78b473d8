package biz

import (
	"context"
	"strings"

	"shortlink/internal/conf"
	"shortlink/internal/domain"
	"shortlink/internal/infra/eventbus"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(NewLinkUsecase)

// LinkUsecase orchestrates the link store: it validates input defensively,
// builds public short URLs, and publishes domain events after successful
// store operations.
type LinkUsecase struct {
	store   domain.LinkStore
	bus     *eventbus.EventBus
	baseURL string
	log     *log.Helper
}

// NewLinkUsecase creates a new LinkUsecase.
func NewLinkUsecase(store domain.LinkStore, bus *eventbus.EventBus, c *conf.Shortener, logger log.Logger) *LinkUsecase {
	c.Normalize()
	return &LinkUsecase{
		store:   store,
		bus:     bus,
		baseURL: strings.TrimRight(c.BaseURL, "/"),
		log:     log.NewHelper(logger),
	}
}

// Shorten maps rawURL to a short code, reusing the live code when the URL
// was shortened before. customCode may be empty. The HTTP layer validates
// input shape before calling, but both value objects re-validate here since
// this is the layer guarding the uniqueness invariant.
func (uc *LinkUsecase) Shorten(ctx context.Context, rawURL, customCode string) (*domain.ShortLink, bool, error) {
	originalURL, err := domain.NewOriginalURL(rawURL)
	if err != nil {
		return nil, false, err
	}

	var code domain.ShortCode
	if customCode != "" {
		if code, err = domain.NewShortCode(customCode); err != nil {
			return nil, false, err
		}
	}

	link, created, err := uc.store.Shorten(ctx, originalURL, code)
	if err != nil {
		return nil, false, err
	}

	if created {
		uc.log.WithContext(ctx).Infof("allocated short code %s for %s", link.Code().String(), originalURL.String())
	}
	uc.publish(ctx, link)

	return link, created, nil
}

// Resolve returns the original URL behind a code. No side effects.
func (uc *LinkUsecase) Resolve(ctx context.Context, code string) (string, error) {
	sc, err := uc.parseCode(code)
	if err != nil {
		return "", err
	}

	originalURL, err := uc.store.Resolve(ctx, sc)
	if err != nil {
		return "", err
	}
	return originalURL.String(), nil
}

// Redirect resolves a code for redirection and records the click. Returns
// the original URL to redirect to.
func (uc *LinkUsecase) Redirect(ctx context.Context, code, userAgent, ipAddress, referrer string) (string, error) {
	sc, err := uc.parseCode(code)
	if err != nil {
		return "", err
	}

	originalURL, err := uc.store.Resolve(ctx, sc)
	if err != nil {
		return "", err
	}

	total, err := uc.store.IncrementClicks(ctx, sc)
	if err != nil {
		return "", err
	}

	link := domain.ReconstructShortLink(sc, originalURL, total-1)
	link.RecordClick(total, userAgent, ipAddress, referrer)
	uc.publish(ctx, link)

	return originalURL.String(), nil
}

// Stats returns the link behind a code with its current click count.
func (uc *LinkUsecase) Stats(ctx context.Context, code string) (*domain.ShortLink, error) {
	sc, err := uc.parseCode(code)
	if err != nil {
		return nil, err
	}
	return uc.store.Stats(ctx, sc)
}

// Delete removes a link. ErrNotFound if the code was not live.
func (uc *LinkUsecase) Delete(ctx context.Context, code string) error {
	sc, err := uc.parseCode(code)
	if err != nil {
		return err
	}

	deleted, err := uc.store.Delete(ctx, sc)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}

	uc.log.WithContext(ctx).Infof("deleted short code %s", sc.String())
	uc.publish(ctx, domain.NewDeletedLinkAggregate(sc.String()))
	return nil
}

// ShortURL builds the absolute short URL for a code.
func (uc *LinkUsecase) ShortURL(code string) string {
	return uc.baseURL + "/" + code
}

// BaseURL returns the configured public base URL without a trailing slash.
func (uc *LinkUsecase) BaseURL() string {
	return uc.baseURL
}

// parseCode validates code shape on read paths. A malformed code can never
// name a live link, so shape errors surface as ErrNotFound.
func (uc *LinkUsecase) parseCode(code string) (domain.ShortCode, error) {
	sc, err := domain.NewShortCode(code)
	if err != nil {
		return domain.ShortCode{}, domain.ErrNotFound
	}
	return sc, nil
}

// publish forwards aggregate events to the bus. Event delivery is
// best-effort and never fails the request.
func (uc *LinkUsecase) publish(ctx context.Context, agg domain.AggregateRoot) {
	events := agg.Events()
	if len(events) == 0 {
		return
	}
	if err := uc.bus.PublishAll(ctx, events); err != nil {
		uc.log.WithContext(ctx).Warnf("failed to publish events: %v", err)
		return
	}
	agg.ClearEvents()
}
