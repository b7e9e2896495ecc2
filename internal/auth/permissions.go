package auth

const (
	PermBankAccountCreate = "contas_bancarias_criar"
	PermBankAccountView   = "contas_bancarias_visualizar"
	PermBankAccountEdit   = "contas_bancarias_editar"
	PermBankAccountDelete = "contas_bancarias_deletar"

	PermMovementCreate = "movimentacao_financeira_criar"
	PermMovementView   = "movimentacao_financeira_visualizar"
	PermMovementEdit   = "movimentacao_financeira_editar"
	PermMovementDelete = "movimentacao_financeira_deletar"

	// patrimônio, localizações e histórico de localização
	PermPatrimonioCreate = "patrimonio_criar"
	PermPatrimonioView   = "patrimonio_visualizar"
	PermPatrimonioEdit   = "patrimonio_editar"
	PermPatrimonioDelete = "patrimonio_deletar"

	PermSupplierCreate = "fornecedores_criar"
	PermSupplierView   = "fornecedores_visualizar"
	PermSupplierEdit   = "fornecedores_editar"
	PermSupplierDelete = "fornecedores_deletar"

	PermAuditView = "usuarios_visualizar_historico"
)
