package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ferreirogomes/chainequity/blockchain_listener"
	"github.com/ferreirogomes/chainequity/handlers"
	"github.com/ferreirogomes/chainequity/services"
	"github.com/ferreirogomes/chainequity/storage"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Falha fatal ao carregar configuração: %v", err)
	}

	db, err := storage.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Falha fatal ao conectar ao banco de dados e aplicar migrações: %v", err)
	}
	defer db.Close()

	ledger, err := services.NewSolanaLedgerService(cfg.SolanaRPCURL, cfg.FeePayerPrivateKey)
	if err != nil {
		log.Fatalf("Falha ao inicializar serviço Solana: %v", err)
	}

	notifier := services.NewNotificationService(db)

	allowlistService := services.NewAllowlistService(db, notifier)
	restrictionService := services.NewRestrictionService(db, notifier)
	transferService := services.NewTransferService(db, ledger, allowlistService, restrictionService, notifier)
	vestingService := services.NewVestingService(db, ledger, notifier, cfg.TreasuryWallet)
	dividendService := services.NewDividendService(db, ledger, notifier)
	corporateActionsService := services.NewCorporateActionsService(db, ledger, notifier)

	equityHandler := handlers.NewEquityHandler(corporateActionsService)
	allowlistHandler := handlers.NewAllowlistHandler(allowlistService)
	restrictionHandler := handlers.NewRestrictionHandler(restrictionService)
	transferHandler := handlers.NewTransferHandler(transferService)
	vestingHandler := handlers.NewVestingHandler(vestingService)
	dividendHandler := handlers.NewDividendHandler(dividendService)

	// Inicializa e inicia o listener da blockchain em uma goroutine separada
	listener, err := blockchain_listener.NewBlockchainListener(cfg.SolanaRPCURL, cfg.SolanaWSURL, db, cfg.FeePayerPrivateKey)
	if err != nil {
		log.Fatalf("Falha ao inicializar listener da blockchain: %v", err)
	}
	go listener.StartListening()
	log.Println("Listener da blockchain iniciado.")

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)

	r.Route("/equities", func(r chi.Router) {
		r.Post("/", equityHandler.CreateEquity)
		r.Get("/{id}", equityHandler.GetEquity)
		r.Patch("/{id}/symbol", equityHandler.ChangeSymbol)
		r.Patch("/{id}/paused", equityHandler.SetPaused)
		r.Post("/{id}/split", equityHandler.FinalizeSplit)
		r.Post("/{id}/split/batch", equityHandler.ExecuteSplitBatch)

		r.Post("/{id}/allowlist", allowlistHandler.Approve)
		r.Get("/{id}/allowlist/{wallet}", allowlistHandler.GetEntry)
		r.Patch("/{id}/allowlist/{wallet}", allowlistHandler.SetStatus)
		r.Delete("/{id}/allowlist/{wallet}", allowlistHandler.Revoke)

		r.Put("/{id}/restrictions/{wallet}", restrictionHandler.SetRestrictions)
		r.Get("/{id}/restrictions/{wallet}", restrictionHandler.GetRestrictions)

		r.Post("/{id}/transfers", transferHandler.Transfer)
		r.Post("/{id}/mint", transferHandler.Mint)

		r.Post("/{id}/vesting", vestingHandler.Create)
		r.Get("/{id}/vesting", vestingHandler.ListByBeneficiary)

		r.Post("/{id}/dividends", dividendHandler.CreateRound)
		r.Get("/{id}/dividends/{roundID}", dividendHandler.GetRound)
		r.Post("/{id}/dividends/{roundID}/claim", dividendHandler.Claim)
	})

	r.Route("/vesting", func(r chi.Router) {
		r.Get("/{scheduleID}", vestingHandler.GetSchedule)
		r.Post("/{scheduleID}/release", vestingHandler.Release)
		r.Post("/{scheduleID}/terminate", vestingHandler.Terminate)
	})

	addr := ":" + cfg.Port
	fmt.Printf("Servidor backend rodando na porta %s...\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
