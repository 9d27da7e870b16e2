// Package core holds the domain model of the reporting service: the income
// statement calculator, the monthly cash-flow summary and the canonical
// period record that the history pipeline and exports are built on.
//
// Everything in this package is a pure function over explicit structs. The
// collecting form constrains all monetary inputs to be non-negative; the
// calculators do not re-validate and are total over the reals.
package core

// StatementInput is the flat set of categorized monetary fields collected
// for one reference month. Absent fields must be zero-filled upstream.
type StatementInput struct {
	// Gross revenue
	ProductSales     float64 `json:"product_sales"`
	ServicesRendered float64 `json:"services_rendered"`
	OtherRevenue     float64 `json:"other_revenue"`

	// Deductions
	Returns   float64 `json:"returns"`
	Discounts float64 `json:"discounts"`
	SalesTax  float64 `json:"sales_tax"`

	// Cost of goods / services
	ProductCost float64 `json:"product_cost"`
	ServiceCost float64 `json:"service_cost"`
	DirectLabor float64 `json:"direct_labor"`

	// Selling expenses
	Commissions  float64 `json:"commissions"`
	Marketing    float64 `json:"marketing"`
	OtherSelling float64 `json:"other_selling"`

	// Administrative expenses
	AdminSalaries  float64 `json:"admin_salaries"`
	Rent           float64 `json:"rent"`
	Utilities      float64 `json:"utilities"`
	OfficeSupplies float64 `json:"office_supplies"`
	Accounting     float64 `json:"accounting"`
	Insurance      float64 `json:"insurance"`

	// Other operating expenses
	Depreciation float64 `json:"depreciation"`
	Provisions   float64 `json:"provisions"`

	// Financial result
	InterestPaid     float64 `json:"interest_paid"`
	FinancialTax     float64 `json:"financial_tax"`
	BankFees         float64 `json:"bank_fees"`
	InterestReceived float64 `json:"interest_received"`
	InvestmentYield  float64 `json:"investment_yield"`

	// Taxes on profit
	IncomeTax          float64 `json:"income_tax"`
	SocialContribution float64 `json:"social_contribution"`
}

// Statement is the derived income statement. Every "=" line is the exact
// sum or difference of the lines above it; no rounding happens here.
type Statement struct {
	GrossRevenue      float64 `json:"gross_revenue"`
	Deductions        float64 `json:"deductions"`
	NetRevenue        float64 `json:"net_revenue"` // floored at zero
	COGS              float64 `json:"cogs"`
	GrossProfit       float64 `json:"gross_profit"`
	SellingExpenses   float64 `json:"selling_expenses"`
	AdminExpenses     float64 `json:"admin_expenses"`
	OtherOperating    float64 `json:"other_operating"`
	OperatingExpenses float64 `json:"operating_expenses"`
	EBIT              float64 `json:"ebit"`
	FinancialExpenses float64 `json:"financial_expenses"`
	FinancialIncome   float64 `json:"financial_income"`
	PreTaxResult      float64 `json:"pre_tax_result"`
	IncomeTaxes       float64 `json:"income_taxes"`
	NetResult         float64 `json:"net_result"`
}

// ComputeStatement maps the categorized inputs to the income statement.
// Negative inputs are a precondition violation; behavior is then undefined.
func ComputeStatement(in StatementInput) Statement {
	grossRevenue := in.ProductSales + in.ServicesRendered + in.OtherRevenue
	deductions := in.Returns + in.Discounts + in.SalesTax
	netRevenue := grossRevenue - deductions
	if netRevenue < 0 {
		netRevenue = 0
	}
	cogs := in.ProductCost + in.ServiceCost + in.DirectLabor
	grossProfit := netRevenue - cogs

	selling := in.Commissions + in.Marketing + in.OtherSelling
	admin := in.AdminSalaries + in.Rent + in.Utilities + in.OfficeSupplies + in.Accounting + in.Insurance
	otherOp := in.Depreciation + in.Provisions
	opex := selling + admin + otherOp

	ebit := grossProfit - opex

	finExpenses := in.InterestPaid + in.FinancialTax + in.BankFees
	finIncome := in.InterestReceived + in.InvestmentYield
	preTax := ebit - finExpenses + finIncome

	taxes := in.IncomeTax + in.SocialContribution

	return Statement{
		GrossRevenue:      grossRevenue,
		Deductions:        deductions,
		NetRevenue:        netRevenue,
		COGS:              cogs,
		GrossProfit:       grossProfit,
		SellingExpenses:   selling,
		AdminExpenses:     admin,
		OtherOperating:    otherOp,
		OperatingExpenses: opex,
		EBIT:              ebit,
		FinancialExpenses: finExpenses,
		FinancialIncome:   finIncome,
		PreTaxResult:      preTax,
		IncomeTaxes:       taxes,
		NetResult:         preTax - taxes,
	}
}

// CashFlowInput collects the current month's cash movements.
type CashFlowInput struct {
	OpeningBalance   float64 `json:"opening_balance"`
	SalesReceipts    float64 `json:"sales_receipts"`
	OtherInflows     float64 `json:"other_inflows"`
	SupplierPayments float64 `json:"supplier_payments"`
	Payroll          float64 `json:"payroll"`
	Taxes            float64 `json:"taxes"`
	LoanInstallments float64 `json:"loan_installments"`
	OtherOutflows    float64 `json:"other_outflows"`
}

// CashFlow is the month's cash summary: closing = opening + in - out.
type CashFlow struct {
	OpeningBalance float64 `json:"opening_balance"`
	Inflows        float64 `json:"inflows"`
	Outflows       float64 `json:"outflows"`
	ClosingBalance float64 `json:"closing_balance"`
}

// ComputeCashFlow sums the movement groups into the cash summary.
func ComputeCashFlow(in CashFlowInput) CashFlow {
	inflows := in.SalesReceipts + in.OtherInflows
	outflows := in.SupplierPayments + in.Payroll + in.Taxes + in.OtherOutflows + in.LoanInstallments
	return CashFlow{
		OpeningBalance: in.OpeningBalance,
		Inflows:        inflows,
		Outflows:       outflows,
		ClosingBalance: in.OpeningBalance + inflows - outflows,
	}
}

// Ratio returns part/whole as a percentage, or exactly zero when the whole
// is not positive. Margin math never divides by zero.
func Ratio(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
