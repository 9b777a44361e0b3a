package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/Trujillofa/depotru-database-sub000/pkg/adapters"
	"github.com/Trujillofa/depotru-database-sub000/pkg/insights"
	"github.com/Trujillofa/depotru-database-sub000/pkg/models/api"
	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
)

// Reporter outputs reports to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report domain.Report) error {
	tmpl := `
Business Analysis Report ({{.Records}} lines, generated {{.GeneratedAt.Format "2006-01-02 15:04"}})

=== Financial ===
Revenue (with tax):    {{.Financial.RevenueWithTax}}
Revenue (without tax): {{.Financial.RevenueWithoutTax}}
Total cost:            {{.Financial.TotalCost}}
Gross profit:          {{.Financial.GrossProfit}} ({{printf "%.1f" .Financial.GrossMarginPct}}%)
Avg order value:       {{.Financial.AvgOrderValue}}
Median order value:    {{.Financial.MedianOrderValue}}

=== Customers ({{.Customers.TotalCustomers}}) ===
{{range $i, $c := .Customers.TopCustomers}}{{if lt $i 5}}{{$c.Name}}: {{$c.Revenue}} ({{$c.Orders}} orders, {{$c.Segment}})
{{end}}{{end}}{{range .Customers.Concentration}}Top-{{.TopN}} concentration: {{printf "%.1f" .SharePct}}%
{{end}}
=== Products ({{.Products.TotalProducts}}) ===
{{range $i, $p := .Products.TopProducts}}{{if lt $i 5}}{{$p.Name}}: {{$p.Revenue}} (margin {{printf "%.1f" $p.MarginPct}}%)
{{end}}{{end}}Star products: {{len .Products.StarProducts}}, underperformers: {{len .Products.Underperformers}}

=== Categories ({{.Categories.TotalCategories}}) ===
{{range .Categories.Categories}}{{.Name}}: {{.Revenue}} (margin {{printf "%.1f" .MarginPct}}%, risk {{.RiskLevel}})
{{end}}
=== Operations ===
Transactions: {{.Operational.TotalTransactions}} over {{.Operational.ActiveDays}} days ({{printf "%.1f" .Operational.TransactionsPerDay}}/day)
Return rate: {{printf "%.1f" .Operational.ReturnRatePct}}%
{{if .Recommendations}}
=== Recommendations ===
{{range .Recommendations}}- {{.}}
{{end}}{{end}}`

	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, c.view(report))
}

// WriteJSON exports the full report to a file in its serialized API form.
func (c *Reporter) WriteJSON(report domain.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.view(report)); err != nil {
		return fmt.Errorf("failed to write report JSON: %w", err)
	}
	return nil
}

func (c *Reporter) view(report domain.Report) api.Report {
	view := adapters.MapReportDomainToAPI(report)
	view.Recommendations = insights.Recommendations(report)
	return view
}
