package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	clientStore "github.com/rmaldonado/obrix/internal/client/store"
	"github.com/rmaldonado/obrix/internal/config"
	"github.com/rmaldonado/obrix/internal/database"
	employeeStore "github.com/rmaldonado/obrix/internal/employee/store"
	expenseStore "github.com/rmaldonado/obrix/internal/expense/store"
	obrixHttp "github.com/rmaldonado/obrix/internal/http"
	authHandler "github.com/rmaldonado/obrix/internal/http/auth"
	clientHandler "github.com/rmaldonado/obrix/internal/http/client"
	employeeHandler "github.com/rmaldonado/obrix/internal/http/employee"
	expenseHandler "github.com/rmaldonado/obrix/internal/http/expense"
	paymentHandler "github.com/rmaldonado/obrix/internal/http/payment"
	projectHandler "github.com/rmaldonado/obrix/internal/http/project"
	timeentryHandler "github.com/rmaldonado/obrix/internal/http/timeentry"
	paymentStore "github.com/rmaldonado/obrix/internal/payment/store"
	projectStore "github.com/rmaldonado/obrix/internal/project/store"
	timeentryStore "github.com/rmaldonado/obrix/internal/timeentry/store"
	userStore "github.com/rmaldonado/obrix/internal/user/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	handlers := obrixHttp.Handlers{
		Auth:      authHandler.NewHandler(userStore.New(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Projects:  projectHandler.NewHandler(projectStore.New(db)),
		Employees: employeeHandler.NewHandler(employeeStore.New(db)),
		Clients:   clientHandler.NewHandler(clientStore.New(db)),
		Expenses:  expenseHandler.NewHandler(expenseStore.New(db)),
		Times:     timeentryHandler.NewHandler(timeentryStore.New(db)),
		Payments:  paymentHandler.NewHandler(paymentStore.New(db)),
	}

	router := obrixHttp.New(handlers, cfg.Auth.JWTSecret)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
