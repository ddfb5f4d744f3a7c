package main

import (
	"fmt"
	"os"

	"orderdesk/cmd"
	httpadapter "orderdesk/internal/adapters/in/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	var gormDB *gorm.DB
	if configs.OrderStore == "postgres" {
		gormDB = mustOpenDB(configs)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)
	defer app.Close()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, jobManager.Baselines(), configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:                envOrDefault("HTTP_PORT", "8080"),
		OrderStore:              envOrDefault("ORDER_STORE", "memory"),
		DBHost:                  os.Getenv("DB_HOST"),
		DBPort:                  os.Getenv("DB_PORT"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               envOrDefault("DB_SSLMODE", "disable"),
		KafkaHost:               os.Getenv("KAFKA_HOST"),
		KafkaStatusChangedTopic: envOrDefault("KAFKA_STATUS_CHANGED_TOPIC", "order.status.changed"),
		VendorTimezone:          os.Getenv("VENDOR_TIMEZONE"),
		BulkConcurrency:         os.Getenv("BULK_CONCURRENCY"),
		BulkItemTimeout:         os.Getenv("BULK_ITEM_TIMEOUT"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func startWebServer(app *cmd.CompositionRoot, baselines httpadapter.BaselineSource, port string) {
	e := echo.New()

	listHandler := app.CreateListOrdersQueryHandler()
	server := httpadapter.NewServer(
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateAttachTrackingCommandHandler(),
		app.CreateBulkChangeStatusCommandHandler(),
		listHandler,
		app.CreateOrderStatisticsQueryHandler(),
		app.CreateActivityFeedQueryHandler(),
		app.CreateExportOrdersQueryHandler(),
		baselines,
		app.Location(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
