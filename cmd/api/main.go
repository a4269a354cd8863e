package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"forum404/internal/config"
	"forum404/internal/pkg"
	"forum404/internal/repository/mysql"
	"forum404/internal/repository/redis"
	"forum404/internal/router"
	"forum404/internal/service"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	log, err := pkg.NewLogger(os.Getenv("FORUM404_ENV") == "dev")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := mysql.InitDB(cfg.MySQL.DSN); err != nil {
		log.Fatal("mysql connect failed", zap.Error(err))
	}
	if err := mysql.AutoMigrate(mysql.DB); err != nil {
		log.Fatal("auto migrate failed", zap.Error(err))
	}

	if err := redis.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Fatal("redis connect failed", zap.Error(err))
	}
	defer redis.Close()

	store, err := pkg.NewS3FileStore(pkg.S3Config{
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		log.Fatal("storage init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		if err != nil {
			log.Fatal("kafka init failed", zap.Error(err))
		}
		defer producer.Close()

		relayer := service.NewOutboxRelayer(mysql.DB, service.KafkaSender(producer),
			cfg.Outbox.BatchSize, cfg.Outbox.Interval, log)
		go relayer.Run(ctx)
	} else {
		log.Warn("kafka brokers not configured, engagement events stay in the outbox")
	}

	reconciler := service.NewLikeReconciler(mysql.DB, cfg.Reconciler.BatchSize, cfg.Reconciler.Interval, log)
	go reconciler.Run(ctx)

	r := router.InitRouter(mysql.DB, cfg, store, log)
	log.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := r.Run(cfg.HTTP.Addr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
