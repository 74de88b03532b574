package dto

// ProjectStats tarjetas del panel de una obra: presencia de hoy, horas
// acumuladas, coste de mano de obra y consumo de presupuesto.
type ProjectStats struct {
	ProjectID      string       `json:"project_id"`
	PresentToday   int          `json:"present_today"`
	TotalHours     string       `json:"total_hours"`
	LaborCost      string       `json:"labor_cost"`
	BudgetHours    string       `json:"budget_hours"`
	BudgetProgress string       `json:"budget_progress"`
	OverBudget     bool         `json:"over_budget"`
	Tasks          TaskProgress `json:"tasks"`
	LowStockItems  int          `json:"low_stock_items"`
	ForgottenOpen  int          `json:"forgotten_open"`
	Warnings       []string     `json:"warnings,omitempty"`
}
