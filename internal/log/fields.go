package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldUserID    = "user_id"
	FieldUsername  = "username"
	FieldCategory  = "category"
	FieldKind      = "kind"
	FieldAmount    = "amount"
	FieldDate      = "date"
	FieldStart     = "start"
	FieldEnd       = "end"
	FieldMonth     = "month"
	FieldCount     = "count"
	FieldPath      = "path"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentStorage = "storage"
	ComponentTracker = "tracker"
	ComponentShell   = "shell"
)

// Operations defines standard operation names
const (
	OpRegister       = "register"
	OpLogin          = "login"
	OpLogout         = "logout"
	OpResume         = "resume"
	OpAddTransaction = "add_transaction"
	OpTransactions   = "get_transactions"
	OpReport         = "generate_report"
	OpSetBudget      = "set_budget"
	OpCheckBudget    = "check_budget"
	OpListBudgets    = "list_budgets"
	OpMigrate        = "migrate"
)
