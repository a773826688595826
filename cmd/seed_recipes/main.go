package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"os"

	"github.com/pageza/mise/backend/config"
	"github.com/pageza/mise/backend/internal/database"
	"github.com/pageza/mise/backend/internal/logging"
	"github.com/pageza/mise/backend/internal/model"
	"github.com/pageza/mise/backend/internal/service"
	"go.uber.org/zap"
)

//go:embed recipes.json
var sampleRecipes []byte

func main() {
	file := flag.String("file", "", "JSON file with recipes to seed instead of the built-in samples")
	flag.Parse()

	logger := logging.New(logging.Config{Level: "info", Format: "console"})
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	data := sampleRecipes
	if *file != "" {
		data, err = os.ReadFile(*file)
		if err != nil {
			logger.Fatal("failed to read recipe file", zap.String("file", *file), zap.Error(err))
		}
	}

	var recipes []model.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		logger.Fatal("failed to decode recipes", zap.Error(err))
	}

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()
	svc := service.NewRecipeService(db, logger)
	created, skipped := 0, 0
	for i := range recipes {
		var count int64
		if err := db.WithContext(ctx).Model(&model.Recipe{}).Where("name = ?", recipes[i].Name).Count(&count).Error; err != nil {
			logger.Fatal("failed to check existing recipe", zap.Error(err))
		}
		if count > 0 {
			skipped++
			continue
		}
		if _, err := svc.CreateRecipe(ctx, &recipes[i]); err != nil {
			logger.Error("failed to seed recipe", zap.String("name", recipes[i].Name), zap.Error(err))
			continue
		}
		created++
	}

	logger.Info("seeding complete", zap.Int("created", created), zap.Int("skipped", skipped))
}
