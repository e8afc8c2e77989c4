package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
)

// RedisScheduleCache implements port.ScheduleCache on Redis. Schedules are
// stored as JSON under one key per loan.
type RedisScheduleCache struct {
	client *redis.Client
}

// NewRedisScheduleCache wraps an existing Redis client.
func NewRedisScheduleCache(client *redis.Client) *RedisScheduleCache {
	return &RedisScheduleCache{client: client}
}

func scheduleKey(loanID string) string {
	return "loanflow:schedule:" + loanID
}

type cachedEntry struct {
	Month     int             `json:"month"`
	DueDate   time.Time       `json:"due_date"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Total     decimal.Decimal `json:"total"`
	Balance   decimal.Decimal `json:"balance"`
}

type cachedSchedule struct {
	EMI           decimal.Decimal `json:"emi"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	TotalPayable  decimal.Decimal `json:"total_payable"`
	Entries       []cachedEntry   `json:"entries"`
}

// Get returns the cached schedule for a loan, reporting a miss without error.
func (c *RedisScheduleCache) Get(ctx context.Context, loanID string) (*model.Schedule, bool, error) {
	raw, err := c.client.Get(ctx, scheduleKey(loanID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var cached cachedSchedule
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}

	sched := &model.Schedule{
		EMI:           cached.EMI,
		TotalInterest: cached.TotalInterest,
		TotalPayable:  cached.TotalPayable,
		Entries:       make([]model.ScheduleEntry, 0, len(cached.Entries)),
	}
	for _, e := range cached.Entries {
		sched.Entries = append(sched.Entries, model.ScheduleEntry{
			Month:     e.Month,
			DueDate:   e.DueDate,
			Principal: e.Principal,
			Interest:  e.Interest,
			Total:     e.Total,
			Balance:   e.Balance,
		})
	}
	return sched, true, nil
}

// Set stores a schedule with the given TTL.
func (c *RedisScheduleCache) Set(ctx context.Context, loanID string, sched *model.Schedule, ttl time.Duration) error {
	cached := cachedSchedule{
		EMI:           sched.EMI,
		TotalInterest: sched.TotalInterest,
		TotalPayable:  sched.TotalPayable,
		Entries:       make([]cachedEntry, 0, len(sched.Entries)),
	}
	for _, e := range sched.Entries {
		cached.Entries = append(cached.Entries, cachedEntry{
			Month:     e.Month,
			DueDate:   e.DueDate,
			Principal: e.Principal,
			Interest:  e.Interest,
			Total:     e.Total,
			Balance:   e.Balance,
		})
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, scheduleKey(loanID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached schedule for a loan.
func (c *RedisScheduleCache) Invalidate(ctx context.Context, loanID string) error {
	if err := c.client.Del(ctx, scheduleKey(loanID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
