package core

import "testing"

func TestComputeStatement(t *testing.T) {
	in := StatementInput{
		ProductSales: 10000,
		Returns:      1000,
		ProductCost:  4000,
		Marketing:    3000,
		InterestPaid: 200,
		InterestReceived: 100,
		IncomeTax:    500,
	}

	got := ComputeStatement(in)

	if got.NetRevenue != 9000 {
		t.Fatalf("net revenue = %v, want 9000", got.NetRevenue)
	}
	if got.GrossProfit != 5000 {
		t.Fatalf("gross profit = %v, want 5000", got.GrossProfit)
	}
	if got.EBIT != 2000 {
		t.Fatalf("ebit = %v, want 2000", got.EBIT)
	}
	if got.PreTaxResult != 1900 {
		t.Fatalf("pre-tax result = %v, want 1900", got.PreTaxResult)
	}
	if got.NetResult != 1400 {
		t.Fatalf("net result = %v, want 1400", got.NetResult)
	}
}

func TestComputeStatementNetRevenueFloor(t *testing.T) {
	got := ComputeStatement(StatementInput{ProductSales: 100, SalesTax: 500})
	if got.NetRevenue != 0 {
		t.Fatalf("net revenue = %v, want 0 (floored)", got.NetRevenue)
	}
	// Downstream lines keep summing exactly from the floored value.
	if got.GrossProfit != 0 || got.EBIT != 0 {
		t.Fatalf("expected zero gross profit and ebit, got %v / %v", got.GrossProfit, got.EBIT)
	}
}

func TestComputeStatementSubtotalsAreExactSums(t *testing.T) {
	in := StatementInput{
		ProductSales: 5000, ServicesRendered: 2500, OtherRevenue: 120.5,
		Returns: 30, Discounts: 45.25, SalesTax: 600,
		ProductCost: 900, ServiceCost: 400, DirectLabor: 350,
		Commissions: 100, Marketing: 200, OtherSelling: 50,
		AdminSalaries: 800, Rent: 600, Utilities: 150,
		OfficeSupplies: 40, Accounting: 90, Insurance: 60,
		Depreciation: 70, Provisions: 30,
		InterestPaid: 25, FinancialTax: 5, BankFees: 12,
		InterestReceived: 8, InvestmentYield: 15,
		IncomeTax: 110, SocialContribution: 40,
	}

	s := ComputeStatement(in)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"gross revenue", s.GrossRevenue, in.ProductSales + in.ServicesRendered + in.OtherRevenue},
		{"deductions", s.Deductions, in.Returns + in.Discounts + in.SalesTax},
		{"net revenue", s.NetRevenue, s.GrossRevenue - s.Deductions},
		{"gross profit", s.GrossProfit, s.NetRevenue - s.COGS},
		{"operating expenses", s.OperatingExpenses, s.SellingExpenses + s.AdminExpenses + s.OtherOperating},
		{"ebit", s.EBIT, s.GrossProfit - s.OperatingExpenses},
		{"pre-tax", s.PreTaxResult, s.EBIT - s.FinancialExpenses + s.FinancialIncome},
		{"net result", s.NetResult, s.PreTaxResult - s.IncomeTaxes},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestComputeCashFlow(t *testing.T) {
	cf := ComputeCashFlow(CashFlowInput{
		OpeningBalance:   1000,
		SalesReceipts:    2000,
		OtherInflows:     500,
		SupplierPayments: 1200,
		Payroll:          800,
		Taxes:            300,
		LoanInstallments: 150,
		OtherOutflows:    50,
	})

	if cf.Inflows != 2500 {
		t.Fatalf("inflows = %v, want 2500", cf.Inflows)
	}
	if cf.Outflows != 2500 {
		t.Fatalf("outflows = %v, want 2500", cf.Outflows)
	}
	if cf.ClosingBalance != 1000 {
		t.Fatalf("closing = %v, want 1000", cf.ClosingBalance)
	}
}

func TestRatio(t *testing.T) {
	cases := []struct {
		part, whole, want float64
	}{
		{50, 200, 25},
		{1400, 9000, 1400.0 / 9000 * 100},
		{100, 0, 0},
		{-100, 0, 0},
		{100, -5, 0},
	}
	for _, c := range cases {
		if got := Ratio(c.part, c.whole); got != c.want {
			t.Errorf("Ratio(%v, %v) = %v, want %v", c.part, c.whole, got, c.want)
		}
	}
}
