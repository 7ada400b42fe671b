// main.go
package main

import (
	"log"

	"github.com/mroy35034/woo-com-server/cmd"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/internal/wire"
	"github.com/mroy35034/woo-com-server/pkg/database"
	"github.com/mroy35034/woo-com-server/pkg/mailer"
	"github.com/mroy35034/woo-com-server/pkg/payment"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	if err := utils.InitIDNode(config.Snowflake.Node); err != nil {
		logger.Fatal("Failed to init id generator", zap.Error(err))
	}

	// Prices go out as numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)
	mail := mailer.NewSMTPSender(config.Email, logger)
	gateway := payment.NewStripeGateway(config.Stripe.SecretKey, logger)

	app := wire.Wiring(repos, mail, gateway, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
