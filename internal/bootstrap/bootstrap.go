// Package bootstrap constructs the store and model collaborators from
// configuration. Both binaries share this wiring.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"agrishield/internal/config"
	"agrishield/internal/mlmodel"
	"agrishield/internal/store"
	"agrishield/models"
)

// NewRecordStore builds the record store selected by DATASET_FORMAT.
func NewRecordStore(cfg *config.Config) (models.RecordStore, error) {
	switch cfg.DatasetFormat {
	case "csv":
		return store.LoadCSV(cfg.DatasetPath)
	case "xlsx":
		return store.LoadExcel(cfg.DatasetPath)
	case "postgres":
		return store.NewPostgres(store.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", cfg.DatasetFormat)
	}
}

// NewModels builds the classifier and regressor selected by MODEL_MODE. In
// remote mode it waits for the serving process to become ready before
// returning; per-request calls stay fail-fast.
func NewModels(ctx context.Context, cfg *config.Config) (models.RiskClassifier, models.YieldRegressor, error) {
	switch cfg.ModelMode {
	case "local":
		classifier, err := mlmodel.LoadLocalClassifier(cfg.RiskModelPath)
		if err != nil {
			return nil, nil, err
		}
		regressor, err := mlmodel.LoadLocalRegressor(cfg.YieldModelPath)
		if err != nil {
			return nil, nil, err
		}
		return classifier, regressor, nil
	case "remote":
		client := mlmodel.NewRemoteClient(mlmodel.RemoteOptions{
			BaseURL:        cfg.ModelServerURL,
			Timeout:        time.Duration(cfg.ModelRequestTimeout) * time.Second,
			RequestsPerSec: cfg.ModelRateLimit,
		})
		if err := client.WaitReady(ctx); err != nil {
			return nil, nil, err
		}
		return client, client, nil
	default:
		return nil, nil, fmt.Errorf("unsupported model mode %q", cfg.ModelMode)
	}
}
