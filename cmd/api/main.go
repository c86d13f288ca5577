package main

import (
	"context"
	"log"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/config"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/handler"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/jobs"
	sleredis "github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/redis"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/repository"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/server"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/services"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/storage"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/database"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.AppMode)
	defer l.Sync()
	logger.SetGlobalLogger(l)

	database.Connect(cfg)

	sleredis.Initialize(sleredis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	redisClient := sleredis.GetClient()

	ctx := context.Background()

	s3Client, err := storage.NewClient(ctx, storage.S3Config{
		Region:     cfg.S3Region,
		Bucket:     cfg.S3Bucket,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		Endpoint:   cfg.S3Endpoint,
		PublicBase: cfg.S3PublicBase,
	})
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	companyRepo := repository.NewCompanyRepository(database.DB)
	inquiryRepo := repository.NewInquiryRepository(database.DB)
	messageRepo := repository.NewMessageRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)

	profileCache := sleredis.NewProfileCache(redisClient, sleredis.DefaultProfileCacheConfig())
	rateLimiter := sleredis.NewRateLimiter(redisClient, sleredis.RateLimitConfig{
		MessageLimit:  cfg.MessageLimit,
		MessageWindow: cfg.MessageWindow,
	})
	locker := sleredis.NewLocker(redisClient)

	messageService := services.NewMessageService(messageRepo)
	inquiryService := services.NewInquiryService(inquiryRepo, companyRepo, messageService, l)
	directoryService := services.NewDirectoryService(companyRepo, profileCache, l)
	conversationService := services.NewConversationService(inquiryRepo, orderRepo, messageRepo, directoryService, messageService, l)
	orderBridge := services.NewOrderBridge(inquiryService, orderRepo, l)

	sweeper := jobs.NewExpirySweeper(inquiryService, locker, cfg.SweepInterval, cfg.SweepBatchSize, l)
	sweeperCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	sweeper.Start(sweeperCtx)

	handlers := &server.Handlers{
		Inquiry:      handler.NewInquiryHandler(inquiryService, orderBridge),
		Conversation: handler.NewConversationHandler(conversationService),
		Message:      handler.NewMessageHandler(messageService),
		Upload:       handler.NewUploadHandler(s3Client),
		Directory:    handler.NewDirectoryHandler(directoryService),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, rateLimiter)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
