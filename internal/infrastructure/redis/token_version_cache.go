package redis

import (
	"context"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/medibook/backend/internal/application/auth"
	"github.com/medibook/backend/internal/domain"
)

// CachedUserRepo decorates an auth.UserRepo with a Redis cache for token_version.
// - Read path: Redis -> DB fallback -> Redis set
// - Write path (bump): DB -> Redis set (best effort)
type CachedUserRepo struct {
	inner   auth.UserRepo
	rdb     *goredis.Client
	ttl     time.Duration
	keyPref string
}

func NewCachedUserRepo(inner auth.UserRepo, client *Client, ttl time.Duration) *CachedUserRepo {
	var rdb *goredis.Client
	if client != nil {
		rdb = client.rdb
	}
	return &CachedUserRepo{
		inner:   inner,
		rdb:     rdb,
		ttl:     ttl,
		keyPref: "tokenver:",
	}
}

func (c *CachedUserRepo) key(userID string) string {
	return c.keyPref + userID
}

func (c *CachedUserRepo) GetTokenVersion(ctx context.Context, userID string) (int64, error) {
	// 1) Try Redis
	if c.rdb != nil {
		s, err := c.rdb.Get(ctx, c.key(userID)).Result()
		if err == nil {
			if v, perr := strconv.ParseInt(s, 10, 64); perr == nil {
				return v, nil
			}
			// parse error -> fall back to DB
		} else if err != goredis.Nil {
			// redis error -> fall back to DB (do NOT fail auth)
		}
	}

	// 2) DB source of truth
	v, err := c.inner.GetTokenVersion(ctx, userID)
	if err != nil {
		return 0, err
	}

	// 3) Best-effort cache fill
	if c.rdb != nil {
		_ = c.rdb.Set(ctx, c.key(userID), strconv.FormatInt(v, 10), c.ttl).Err()
	}

	return v, nil
}

func (c *CachedUserRepo) BumpTokenVersion(ctx context.Context, userID string) (int64, error) {
	// 1) DB bump
	v, err := c.inner.BumpTokenVersion(ctx, userID)
	if err != nil {
		return 0, err
	}

	// 2) Best-effort cache update (SET beats DEL)
	if c.rdb != nil {
		_ = c.rdb.Set(ctx, c.key(userID), strconv.FormatInt(v, 10), c.ttl).Err()
	}

	return v, nil
}

/*
Below: delegate all other auth.UserRepo methods to inner.
This keeps the change isolated to bootstrap wiring.
*/

func (c *CachedUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return c.inner.GetByEmail(ctx, email)
}
func (c *CachedUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	return c.inner.GetByID(ctx, id)
}
func (c *CachedUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return c.inner.Create(ctx, u)
}
func (c *CachedUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return c.inner.List(ctx)
}
func (c *CachedUserRepo) ListOnline(ctx context.Context) ([]domain.User, error) {
	return c.inner.ListOnline(ctx)
}
func (c *CachedUserRepo) SetStatus(ctx context.Context, userID string, status string) error {
	return c.inner.SetStatus(ctx, userID, status)
}
func (c *CachedUserRepo) SetRole(ctx context.Context, userID string, role string) error {
	return c.inner.SetRole(ctx, userID, role)
}
func (c *CachedUserRepo) SetLoggedIn(ctx context.Context, userID string, loggedIn bool) error {
	return c.inner.SetLoggedIn(ctx, userID, loggedIn)
}
func (c *CachedUserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	return c.inner.CountByRole(ctx, role)
}
