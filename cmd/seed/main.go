package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"riskdesk/internal/config"
	"riskdesk/internal/db"
	"riskdesk/internal/logger"
	"riskdesk/internal/model"
	"riskdesk/internal/repository"

	"gorm.io/gorm"
)

// ReferenceData mirrors the actuarial reference export produced from the
// underwriting workbooks.
type ReferenceData struct {
	Industries []struct {
		Name     string  `json:"name"`
		BaseRisk float64 `json:"base_risk"`
	} `json:"industries"`
	States []struct {
		Code   string  `json:"code"`
		Name   string  `json:"name"`
		Factor float64 `json:"factor"`
	} `json:"states"`
	EducationLevels []struct {
		Name   string  `json:"name"`
		Factor float64 `json:"factor"`
	} `json:"education_levels"`
	JobTitles []struct {
		Name             string  `json:"name"`
		ProfessionalRisk float64 `json:"professional_risk"`
	} `json:"job_titles"`
	Factors []struct {
		Category string  `json:"category"`
		Key      string  `json:"key"`
		Weight   float64 `json:"weight"`
	} `json:"factors"`
}

func main() {
	file := flag.String("file", "reference/risk_reference.json", "path to the reference data export")
	flag.Parse()

	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.L

	log.Infow("starting reference seed", "file", *file)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalw("connect database", "error", err)
	}

	if err := gormDB.AutoMigrate(
		&model.Industry{},
		&model.State{},
		&model.EducationLevel{},
		&model.JobTitle{},
		&model.RiskFactor{},
	); err != nil {
		log.Fatalw("auto-migrate", "error", err)
	}

	data, err := loadReferenceData(*file)
	if err != nil {
		log.Fatalw("load reference data", "error", err)
	}

	upserted, err := seedReference(gormDB, data)
	if err != nil {
		log.Fatalw("seed reference data", "error", err)
	}

	log.Infow("reference seed completed", "rows", upserted)
}

// loadReferenceData reads and decodes the JSON export.
func loadReferenceData(path string) (*ReferenceData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var data ReferenceData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &data, nil
}

// seedReference upserts every reference row, keyed on the natural key of
// each table, and returns the number of rows touched.
func seedReference(gormDB *gorm.DB, data *ReferenceData) (int, error) {
	count := 0

	for _, item := range data.Industries {
		row := model.Industry{Name: item.Name, BaseRisk: item.BaseRisk}
		if err := upsert(gormDB, &model.Industry{}, "name = ?", item.Name, &row, func(existing *model.Industry) {
			existing.BaseRisk = item.BaseRisk
		}); err != nil {
			return count, fmt.Errorf("industry %s: %w", item.Name, err)
		}
		count++
	}

	for _, item := range data.States {
		row := model.State{Code: item.Code, Name: item.Name, Factor: item.Factor}
		if err := upsert(gormDB, &model.State{}, "code = ?", item.Code, &row, func(existing *model.State) {
			existing.Name = item.Name
			existing.Factor = item.Factor
		}); err != nil {
			return count, fmt.Errorf("state %s: %w", item.Code, err)
		}
		count++
	}

	for _, item := range data.EducationLevels {
		row := model.EducationLevel{Name: item.Name, Factor: item.Factor}
		if err := upsert(gormDB, &model.EducationLevel{}, "name = ?", item.Name, &row, func(existing *model.EducationLevel) {
			existing.Factor = item.Factor
		}); err != nil {
			return count, fmt.Errorf("education level %s: %w", item.Name, err)
		}
		count++
	}

	for _, item := range data.JobTitles {
		row := model.JobTitle{Name: item.Name, ProfessionalRisk: item.ProfessionalRisk}
		if err := upsert(gormDB, &model.JobTitle{}, "name = ?", item.Name, &row, func(existing *model.JobTitle) {
			existing.ProfessionalRisk = item.ProfessionalRisk
		}); err != nil {
			return count, fmt.Errorf("job title %s: %w", item.Name, err)
		}
		count++
	}

	referenceRepo := repository.NewReferenceRepository(gormDB)
	ctx := context.Background()
	for _, item := range data.Factors {
		factor := model.RiskFactor{
			Category: item.Category,
			Key:      item.Key,
			Weight:   item.Weight,
			Active:   true,
		}
		if err := referenceRepo.UpsertFactor(ctx, &factor); err != nil {
			return count, fmt.Errorf("factor %s/%s: %w", item.Category, item.Key, err)
		}
		count++
	}

	return count, nil
}

// upsert finds a row by condition and either updates it via apply or
// creates the fresh row.
func upsert[T any](gormDB *gorm.DB, probe *T, query string, arg interface{}, fresh *T, apply func(*T)) error {
	err := gormDB.Where(query, arg).First(probe).Error
	if err == gorm.ErrRecordNotFound {
		return gormDB.Create(fresh).Error
	}
	if err != nil {
		return err
	}
	apply(probe)
	return gormDB.Save(probe).Error
}
