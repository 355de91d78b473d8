package data

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"shortlink/internal/conf"
	"shortlink/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
)

// Compile-time interface check
var _ domain.LinkStore = (*RedisLinkStore)(nil)

// Key namespaces. A link occupies one key in each:
//
//	url:<code>       -> original URL
//	reverse:<hash>   -> code (deduplication index)
//	clicks:<code>    -> click counter
const (
	forwardPrefix = "url:"
	reversePrefix = "reverse:"
	clicksPrefix  = "clicks:"
)

// incrClicksScript increments the counter only while the forward mapping is
// live, so counters are never created for deleted or expired codes. Returns
// -1 when the forward mapping is absent. A counter the INCR recreates (lost
// to a partial write or skewed expiry) inherits the forward key's remaining
// TTL so it cannot outlive the link.
var incrClicksScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -1
end
local fresh = redis.call("EXISTS", KEYS[2]) == 0
local total = redis.call("INCR", KEYS[2])
if fresh then
	local ttl = redis.call("PTTL", KEYS[1])
	if ttl > 0 then
		redis.call("PEXPIRE", KEYS[2], ttl)
	end
end
return total
`)

// RedisLinkStore implements domain.LinkStore over Redis. All mutual
// exclusion is pushed to Redis per-key atomics: SETNX gates code allocation
// and INCR keeps counters exact under concurrent redirects.
type RedisLinkStore struct {
	rdb         *redis.Client
	ttl         time.Duration
	maxAttempts int
	log         *log.Helper
}

// NewRedisLinkStore creates a Redis-backed link store.
func NewRedisLinkStore(data *Data, c *conf.Shortener, logger log.Logger) domain.LinkStore {
	c.Normalize()
	return &RedisLinkStore{
		rdb:         data.rdb,
		ttl:         c.LinkTTL.AsDuration(),
		maxAttempts: c.MaxGenerateAttempts,
		log:         log.NewHelper(logger),
	}
}

// urlHash derives the reverse-index key component from an original URL:
// SHA-256 of the URL bytes, first 8 bytes, lowercase hex. Stable across
// processes.
func urlHash(originalURL string) string {
	sum := sha256.Sum256([]byte(originalURL))
	return hex.EncodeToString(sum[:8])
}

func forwardKey(code string) string { return forwardPrefix + code }
func reverseKey(url string) string  { return reversePrefix + urlHash(url) }
func clicksKey(code string) string  { return clicksPrefix + code }

// expiry maps the configured TTL to a Redis expiration; non-positive means
// the keys never expire.
func (s *RedisLinkStore) expiry() time.Duration {
	if s.ttl <= 0 {
		return 0
	}
	return s.ttl
}

// Shorten allocates or reuses a short code for originalURL.
func (s *RedisLinkStore) Shorten(ctx context.Context, originalURL domain.OriginalURL, customCode domain.ShortCode) (*domain.ShortLink, bool, error) {
	// Dedup: a URL that already has a live code gets it back unchanged.
	existing, err := s.rdb.Get(ctx, reverseKey(originalURL.String())).Result()
	if err == nil {
		code, err := domain.NewShortCode(existing)
		if err != nil {
			return nil, false, fmt.Errorf("corrupt reverse index entry %q: %w", existing, err)
		}
		count, err := s.clickCount(ctx, code.String())
		if err != nil {
			return nil, false, err
		}
		return domain.ReconstructShortLink(code, originalURL, count), false, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, false, err
	}

	code, err := s.allocate(ctx, originalURL, customCode)
	if err != nil {
		return nil, false, err
	}

	// The forward entry is already written by the conditional create; the
	// reverse index and counter follow in one pipeline. A crash in between
	// leaves a resolvable code without dedup entry, which the uniform TTL
	// eventually reclaims.
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, reverseKey(originalURL.String()), code.String(), s.expiry())
		pipe.Set(ctx, clicksKey(code.String()), 0, s.expiry())
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return domain.NewShortLink(code, originalURL, !customCode.IsEmpty()), true, nil
}

// allocate claims a forward key for the link, either the caller-supplied
// custom code or a freshly generated one. SETNX is the uniqueness gate on
// both paths, so two concurrent callers can never both claim a code.
func (s *RedisLinkStore) allocate(ctx context.Context, originalURL domain.OriginalURL, customCode domain.ShortCode) (domain.ShortCode, error) {
	if !customCode.IsEmpty() {
		ok, err := s.rdb.SetNX(ctx, forwardKey(customCode.String()), originalURL.String(), s.expiry()).Result()
		if err != nil {
			return domain.ShortCode{}, err
		}
		if !ok {
			return domain.ShortCode{}, domain.ErrCodeConflict
		}
		return customCode, nil
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return domain.ShortCode{}, err
		}

		candidate, err := domain.GenerateShortCode(domain.GeneratedCodeLength)
		if err != nil {
			return domain.ShortCode{}, fmt.Errorf("generate short code: %w", err)
		}

		ok, err := s.rdb.SetNX(ctx, forwardKey(candidate.String()), originalURL.String(), s.expiry()).Result()
		if err != nil {
			return domain.ShortCode{}, err
		}
		if ok {
			return candidate, nil
		}

		s.log.WithContext(ctx).Warnf("short code collision on %q, retrying (%d/%d)", candidate.String(), attempt+1, s.maxAttempts)
	}

	return domain.ShortCode{}, domain.ErrCodeSpaceExhausted
}

// Resolve returns the original URL behind a code.
func (s *RedisLinkStore) Resolve(ctx context.Context, code domain.ShortCode) (domain.OriginalURL, error) {
	raw, err := s.rdb.Get(ctx, forwardKey(code.String())).Result()
	if errors.Is(err, redis.Nil) {
		return domain.OriginalURL{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.OriginalURL{}, err
	}

	originalURL, err := domain.NewOriginalURL(raw)
	if err != nil {
		return domain.OriginalURL{}, fmt.Errorf("corrupt forward entry for %q: %w", code.String(), err)
	}
	return originalURL, nil
}

// IncrementClicks bumps the counter for a live code and returns the total.
func (s *RedisLinkStore) IncrementClicks(ctx context.Context, code domain.ShortCode) (int64, error) {
	keys := []string{forwardKey(code.String()), clicksKey(code.String())}
	total, err := incrClicksScript.Run(ctx, s.rdb, keys).Int64()
	if err != nil {
		return 0, err
	}
	if total < 0 {
		return 0, domain.ErrNotFound
	}
	return total, nil
}

// Stats returns the link with its current click count.
func (s *RedisLinkStore) Stats(ctx context.Context, code domain.ShortCode) (*domain.ShortLink, error) {
	originalURL, err := s.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}

	count, err := s.clickCount(ctx, code.String())
	if err != nil {
		return nil, err
	}

	return domain.ReconstructShortLink(code, originalURL, count), nil
}

// Delete removes the forward, reverse, and counter entries for a code. The
// stored URL is looked up first because the reverse key is derived from the
// URL, not the code.
func (s *RedisLinkStore) Delete(ctx context.Context, code domain.ShortCode) (bool, error) {
	raw, err := s.rdb.Get(ctx, forwardKey(code.String())).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, forwardKey(code.String()), reverseKey(raw), clicksKey(code.String()))
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// clickCount reads the counter; an absent key reads as zero. The counter can
// lag the forward entry after a partial write or expiry.
func (s *RedisLinkStore) clickCount(ctx context.Context, code string) (int64, error) {
	count, err := s.rdb.Get(ctx, clicksKey(code)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}
