package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"jpchat/internal/citymigrate"
	"jpchat/internal/config"
	"jpchat/internal/db"
	"jpchat/internal/locality"
	"jpchat/internal/logger"
	"jpchat/internal/repository"
)

func main() {
	apply := flag.Bool("apply", false, "grava as correções (sem a flag, apenas simula)")
	report := flag.Bool("report", true, "mostra o total de leads por cidade ao final")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL não configurado")
	}

	ctx := context.Background()

	dbConn, err := db.New(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Erro ao conectar no banco de dados", zap.Error(err))
	}
	defer dbConn.Close()

	m := &citymigrate.Migrator{
		Store:      &repository.LeadRepository{DB: dbConn},
		Normalizer: locality.Default(),
		Workers:    cfg.WorkerCount,
		Apply:      *apply,
		Logger:     log,
	}
	if !*apply {
		log.Info("Modo simulação: nenhuma alteração será gravada (use -apply)")
	}

	stats, err := m.Run(ctx)
	if err != nil {
		log.Fatal("Erro na migração", zap.Error(err))
	}

	fmt.Fprintf(os.Stdout, "Analisados: %d\nCorrigidos: %d\nVariações de Palhoça corrigidas: %d\nSem alteração: %d\nErros: %d\n",
		stats.Analyzed, stats.Corrected, stats.PalhocaFixed, stats.Unchanged, stats.Errors)

	if !*report {
		return
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("Não foi possível gerar o relatório por cidade", zap.Error(err))
		return
	}
	defer pool.Close()

	counts, err := (&repository.ReportRepository{DB: pool}).CountByCity(ctx)
	if err != nil {
		log.Error("Erro ao gerar relatório", zap.Error(err))
		return
	}
	fmt.Fprintln(os.Stdout, "\nLeads por cidade:")
	for _, c := range counts {
		city := c.City
		if city == "" {
			city = "(vazio)"
		}
		fmt.Fprintf(os.Stdout, "  %-40s %d\n", city, c.Total)
	}
}
