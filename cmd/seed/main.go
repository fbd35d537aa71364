// seed crea (o actualiza) el admin inicial y, con SEED_SAMPLE_DATA=1, maestros y
// servicios de ejemplo. Opcionalmente importa un catálogo CSV "nombre;precio".
//
// Uso: go run ./cmd/seed [-catalog servicios.csv] [-encoding windows-1251]
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jhoicas/taller-api/internal/application/seed"
	"github.com/jhoicas/taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/taller-api/pkg/config"
	"github.com/jhoicas/taller-api/pkg/logger"
)

func main() {
	catalogPath := flag.String("catalog", "", "CSV del catálogo de servicios (nombre;precio en rublos)")
	encoding := flag.String("encoding", seed.EncodingUTF8, "encoding del CSV: utf-8 | windows-1251")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	opts := seed.Options{
		AdminPassword:  cfg.Seed.AdminPassword,
		MasterPassword: cfg.Seed.MasterPassword,
		SampleData:     cfg.Seed.SampleData,
	}
	if *catalogPath != "" {
		f, err := os.Open(*catalogPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *catalogPath).Msg("abrir catálogo")
		}
		opts.Catalog, err = seed.ReadCatalogCSV(f, *encoding)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("leer catálogo")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	res, err := seed.Run(ctx, postgres.NewTxRunner(pool), opts, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().
		Int("users", res.Users).
		Int("services", res.Services).
		Bool("sample_data", opts.SampleData).
		Msg("seed completado")
}
