package repository

import (
	"context"
	"fmt"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
)

type Redis struct {
	cli *redis.Client
}

func NewRedis(cli *redis.Client) *Redis {
	return &Redis{
		cli: cli,
	}
}

// ConnectRedis opens a client and checks the server answers PING.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	cli := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := cli.WithContext(ctx).Ping().Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis couldn't Ping %s: %v", addr, err)
	}
	return cli, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.cli.WithContext(ctx).Get(key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("repository.Redis.Get key %s: %v", key, err)
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	logrus.Debugf("redis setting key: %s", key)
	if err := r.cli.WithContext(ctx).Set(key, value, 0).Err(); err != nil {
		return fmt.Errorf("repository.Redis.Set key %s: %v", key, err)
	}
	return nil
}
