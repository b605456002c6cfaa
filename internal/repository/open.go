package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/chucky-1/trackers/internal/config"
)

func noClose() {}

// Open connects the backend selected in cfg. The returned close function
// releases the connection and is never nil, even when err is not nil.
func Open(ctx context.Context, cfg config.Storage) (Storage, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		logrus.Info("storage: using process memory, data is lost on restart")
		return NewLocalStorage(), noClose, nil
	case config.BackendRedis:
		cli, err := ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, noClose, err
		}
		logrus.Infof("storage: connected to redis %s", cfg.RedisAddr)
		return NewRedis(cli), func() {
			if err := cli.Close(); err != nil {
				logrus.Errorf("redis couldn't Close: %v", err)
			}
		}, nil
	case config.BackendMongo:
		cli, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, noClose, err
		}
		logrus.Infof("storage: connected to mongo database %s", cfg.MongoDatabase)
		return NewMongoFromClient(cli, cfg.MongoDatabase), func() {
			if err := cli.Disconnect(context.Background()); err != nil {
				logrus.Errorf("mongo couldn't Disconnect: %v", err)
			}
		}, nil
	case config.BackendPostgres:
		pool, err := ConnectPostgres(ctx, cfg.PostgresEndpoint)
		if err != nil {
			return nil, noClose, err
		}
		logrus.Info("storage: connected to postgres")
		return NewPostgres(pool), pool.Close, nil
	default:
		return nil, noClose, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}
