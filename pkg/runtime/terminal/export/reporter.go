package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/energy-labeler/pkg/models/domain"
)

type TableConfig struct {
	IDWidth    int
	NameWidth  int
	CountWidth int
	LabelWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		IDWidth:    38,
		NameWidth:  30,
		CountWidth: 6,
		LabelWidth: 5,
	}
}

// Reporter prints a labeling run as a text table on the terminal.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.TenantReport) error {
	funcMap := template.FuncMap{
		"formatRow": func(id, name, highs, mediums, lows, label any) string {
			return fmt.Sprintf("| %-*v | %-*v | %*v | %*v | %*v | %-*v |",
				c.config.IDWidth, id,
				c.config.NameWidth, name,
				c.config.CountWidth, highs,
				c.config.CountWidth, mediums,
				c.config.CountWidth, lows,
				c.config.LabelWidth, label)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.IDWidth+2),
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.CountWidth+2),
				strings.Repeat("-", c.config.CountWidth+2),
				strings.Repeat("-", c.config.CountWidth+2),
				strings.Repeat("-", c.config.LabelWidth+2))
		},
	}

	tmpl := `
Tenant {{.TenantID}}

Energy Label: {{.EnergyLabel.Label}} (best {{.EnergyLabel.BestLabel}}, worst {{.EnergyLabel.WorstLabel}})
Coverage: {{printf "%.2f%%" .EnergyLabel.Coverage}}
Subscriptions labeled: {{.AggregateLabel.Population}}
Findings: {{len .Findings}}

{{separator}}
{{formatRow "Subscription" "Name" "High" "Medium" "Low" "Label"}}
{{separator}}
{{range .Subscriptions}}{{formatRow .Subscription.ID .Subscription.DisplayName .EnergyLabel.Highs .EnergyLabel.Mediums .EnergyLabel.Lows .EnergyLabel.Label}}
{{end}}{{separator}}
{{if .ResourceGroups}}
{{separator}}
{{formatRow "Subscription" "Resource Group" "High" "Medium" "Low" "Label"}}
{{separator}}
{{range .ResourceGroups}}{{formatRow .SubscriptionID .ResourceGroup.Name .EnergyLabel.Highs .EnergyLabel.Mediums .EnergyLabel.Lows .EnergyLabel.Label}}
{{end}}{{separator}}
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
