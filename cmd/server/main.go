package main

import (
	"context"
	"log"
	"os"
	"time"

	httpctl "storefront-service/internal/controllers/http"
	"storefront-service/internal/infra"
	mmysql "storefront-service/internal/infra/mysql"
	"storefront-service/internal/infra/rabbitmq"
	mysqlrepo "storefront-service/internal/repository/mysql"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	productRepo := mysqlrepo.NewProductRepository(db)
	orderRepo := mysqlrepo.NewOrderRepository(db)
	addressRepo := mysqlrepo.NewAddressRepository(db)
	onDemandRepo := mysqlrepo.NewOnDemandRepository(db)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "storefront.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	authClient := infra.NewAuthClient(os.Getenv("AUTH_SERVICE_URL"), 2*time.Second)

	catalog := services.NewCatalogService(productRepo)
	orders := services.NewOrderService(orderRepo, publisher)
	addresses := services.NewAddressService(addressRepo)
	onDemand := services.NewOnDemandService(onDemandRepo, publisher)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	catalog.SetRedisClient(redisClient)
	orders.SetRedisClient(redisClient)

	go func() {
		time.Sleep(5 * time.Second)
		if err := catalog.WarmupCache(context.Background(), []uint64{1, 2, 3, 4, 5}); err != nil {
			log.Printf("Failed to warm up product cache: %v", err)
		} else {
			log.Println("Product cache warmed up successfully")
		}
	}()

	handler := httpctl.NewHandler(catalog, orders, addresses, onDemand, authClient, redisClient)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpctl.RequestID())

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting storefront service on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
