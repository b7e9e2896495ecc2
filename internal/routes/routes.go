package routes

import (
	"financeiro-backend/internal/audit"
	"financeiro-backend/internal/auth"
	"financeiro-backend/internal/finance"
	"financeiro-backend/internal/logger"
	"financeiro-backend/internal/patrimonio"
	"financeiro-backend/internal/report"
	"financeiro-backend/internal/supplier"

	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	Stores    Stores
	JWTSecret string
	Report    report.Options
}

// Setup registra todas as rotas. Toda rota exige token válido e a permissão
// correspondente.
func Setup(app *fiber.App, d Deps) {
	s := d.Stores
	rec := audit.NewRecorder(audit.NewService(s.AuditLogs), logger.FromCtx)
	perm := auth.RequirePermission

	protected := app.Group("", auth.JWTMiddleware(d.JWTSecret))

	// Contas bancárias
	fin := protected.Group("/finance")
	fin.Post("/createBankAccount", perm(auth.PermBankAccountCreate), finance.CreateBankAccountHandler(s.BankAccounts, rec))
	fin.Get("/getBankAccount", perm(auth.PermBankAccountView), finance.ListBankAccountsHandler(s.BankAccounts))
	fin.Get("/bankAccount/:id", perm(auth.PermBankAccountView), finance.GetBankAccountHandler(s.BankAccounts))
	fin.Patch("/updateBankAccount/:id", perm(auth.PermBankAccountEdit), finance.UpdateBankAccountHandler(s.BankAccounts, rec))
	fin.Delete("/deleteBankAccount/:id", perm(auth.PermBankAccountDelete), finance.DeleteBankAccountHandler(s.BankAccounts, rec))

	// Movimentações financeiras e relatório
	fm := protected.Group("/financialMovements")
	fm.Post("/create", perm(auth.PermMovementCreate), finance.CreateMovementHandler(s.Movements, rec))
	fm.Post("/report", perm(auth.PermMovementView), report.ReportHandler(s.Movements, d.Report))
	fm.Get("", perm(auth.PermMovementView), finance.ListMovementsHandler(s.Movements))
	fm.Get("/:id", perm(auth.PermMovementView), finance.GetMovementHandler(s.Movements))
	fm.Patch("/update/:id", perm(auth.PermMovementEdit), finance.UpdateMovementHandler(s.Movements, rec))
	fm.Delete("/delete/:id", perm(auth.PermMovementDelete), finance.DeleteMovementHandler(s.Movements, rec))

	// Patrimônio
	pt := protected.Group("/patrimonio")
	pt.Post("/create", perm(auth.PermPatrimonioCreate), patrimonio.CreatePatrimonioHandler(s.Patrimonios, rec))
	pt.Get("", perm(auth.PermPatrimonioView), patrimonio.ListPatrimonioHandler(s.Patrimonios))
	pt.Get("/:id", perm(auth.PermPatrimonioView), patrimonio.GetPatrimonioHandler(s.Patrimonios))
	pt.Patch("/update/:id", perm(auth.PermPatrimonioEdit), patrimonio.UpdatePatrimonioHandler(s.Patrimonios, rec))
	pt.Delete("/delete/:id", perm(auth.PermPatrimonioDelete), patrimonio.DeletePatrimonioHandler(s.Patrimonios, rec))

	pl := protected.Group("/patrimonioLocalizacao")
	pl.Post("/create", perm(auth.PermPatrimonioCreate), patrimonio.CreateMovementHandler(s.LocationLogs, rec))
	pl.Get("", perm(auth.PermPatrimonioView), patrimonio.ListMovementsHandler(s.LocationLogs))
	pl.Get("/:id", perm(auth.PermPatrimonioView), patrimonio.GetMovementHandler(s.LocationLogs))
	pl.Patch("/update/:id", perm(auth.PermPatrimonioEdit), patrimonio.UpdateMovementHandler(s.LocationLogs, rec))
	pl.Delete("/delete/:id", perm(auth.PermPatrimonioDelete), patrimonio.DeleteMovementHandler(s.LocationLogs, rec))

	loc := protected.Group("/localizacao")
	loc.Post("/create", perm(auth.PermPatrimonioCreate), patrimonio.CreateLocalizacaoHandler(s.Locations, rec))
	loc.Get("", perm(auth.PermPatrimonioView), patrimonio.ListLocalizacaoHandler(s.Locations))
	loc.Get("/:id", perm(auth.PermPatrimonioView), patrimonio.GetLocalizacaoHandler(s.Locations))
	loc.Patch("/update/:id", perm(auth.PermPatrimonioEdit), patrimonio.UpdateLocalizacaoHandler(s.Locations, rec))
	loc.Delete("/delete/:id", perm(auth.PermPatrimonioDelete), patrimonio.DeleteLocalizacaoHandler(s.Locations, rec))

	// Fornecedores
	sup := protected.Group("/SupplierForm")
	sup.Post("/create", perm(auth.PermSupplierCreate), supplier.CreateSupplierHandler(s.Suppliers, rec))
	sup.Get("", perm(auth.PermSupplierView), supplier.ListSuppliersHandler(s.Suppliers))
	sup.Get("/:id", perm(auth.PermSupplierView), supplier.GetSupplierHandler(s.Suppliers))
	sup.Patch("/update/:id", perm(auth.PermSupplierEdit), supplier.UpdateSupplierHandler(s.Suppliers, rec))
	sup.Delete("/delete/:id", perm(auth.PermSupplierDelete), supplier.DeleteSupplierHandler(s.Suppliers, rec))

	// Histórico
	protected.Get("/audit-logs", perm(auth.PermAuditView), audit.ListAuditLogsHandler(s.AuditLogs))
}
