package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"challanmart/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Order caching, keyed by dc_no. Orders are immutable once written,
	// so there is no invalidation path.
	GetOrder(ctx context.Context, dcNo int64) (*models.Order, error)
	SetOrder(ctx context.Context, order *models.Order, ttl time.Duration) error

	// Health probing
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port style addresses as well as bare host:port
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func orderKey(dcNo int64) string {
	return fmt.Sprintf("challanmart:order:%d", dcNo)
}

func (r *redisCacheService) GetOrder(ctx context.Context, dcNo int64) (*models.Order, error) {
	data, err := r.client.Get(ctx, orderKey(dcNo)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *redisCacheService) SetOrder(ctx context.Context, order *models.Order, ttl time.Duration) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, orderKey(order.DCNo), data, ttl).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
