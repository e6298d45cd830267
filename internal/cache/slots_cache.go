// Package cache keeps recently generated slot grids in Redis. The grid
// read path is advisory and eventually consistent, so serving a grid a
// few seconds stale is fine; admission never consults the cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/Jojo-brz/saas-barbearia/internal/slots"
)

const defaultTTL = 60 * time.Second

// SlotsCache is a cache-aside wrapper around slot generation. Grid keys
// embed two version counters: a per-(barber, date) one bumped on
// admission or cancellation, and a per-shop one bumped when the weekly
// schedule changes, so either event busts every derived grid without
// scanning. All methods are nil-safe and fail open: a Redis outage
// degrades to regeneration, never to an error surfaced to the customer.
type SlotsCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func New(rdb *redis.Client, log zerolog.Logger) *SlotsCache {
	return &SlotsCache{rdb: rdb, ttl: defaultTTL, log: log}
}

func (c *SlotsCache) Get(
	ctx context.Context,
	shopID uint,
	barberID uint,
	date string,
	serviceID uint,
	step int,
) ([]slots.Slot, bool) {

	if c == nil || c.rdb == nil {
		return nil, false
	}

	key, err := c.gridKey(ctx, shopID, barberID, date, serviceID, step)
	if err != nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("slots cache read failed")
		return nil, false
	}

	var grid []slots.Slot
	if err := json.Unmarshal(raw, &grid); err != nil {
		return nil, false
	}
	return grid, true
}

func (c *SlotsCache) Put(
	ctx context.Context,
	shopID uint,
	barberID uint,
	date string,
	serviceID uint,
	step int,
	grid []slots.Slot,
) {

	if c == nil || c.rdb == nil {
		return
	}

	key, err := c.gridKey(ctx, shopID, barberID, date, serviceID, step)
	if err != nil {
		return
	}

	raw, err := json.Marshal(grid)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("slots cache write failed")
	}
}

// Invalidate bumps the version for one (barber, date), orphaning every
// cached grid derived from the old booking set. Orphans expire by TTL.
func (c *SlotsCache) Invalidate(ctx context.Context, barberID uint, date string) {
	c.bump(ctx, versionKey(barberID, date))
}

// InvalidateShop bumps the shop-wide version after a schedule change,
// orphaning every grid for every barber and date of the shop.
func (c *SlotsCache) InvalidateShop(ctx context.Context, shopID uint) {
	c.bump(ctx, shopVersionKey(shopID))
}

func (c *SlotsCache) bump(ctx context.Context, key string) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Incr(ctx, key).Err(); err != nil {
		c.log.Warn().Err(err).Msg("slots cache invalidation failed")
		return
	}
	// Version keys only matter while derived grids are warm.
	c.rdb.Expire(ctx, key, 24*time.Hour)
}

func (c *SlotsCache) gridKey(
	ctx context.Context,
	shopID uint,
	barberID uint,
	date string,
	serviceID uint,
	step int,
) (string, error) {

	shopVer, err := c.version(ctx, shopVersionKey(shopID))
	if err != nil {
		return "", err
	}

	dayVer, err := c.version(ctx, versionKey(barberID, date))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"slotgrid:%d:%d:%s:%d:%d:v%d.%d",
		shopID, barberID, date, serviceID, step, shopVer, dayVer,
	), nil
}

func (c *SlotsCache) version(ctx context.Context, key string) (int64, error) {
	ver, err := c.rdb.Get(ctx, key).Int64()
	if err != nil && err != redis.Nil {
		return 0, err
	}
	return ver, nil
}

func versionKey(barberID uint, date string) string {
	return fmt.Sprintf("slotver:%d:%s", barberID, date)
}

func shopVersionKey(shopID uint) string {
	return fmt.Sprintf("slotver:shop:%d", shopID)
}
