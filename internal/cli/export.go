package cli

import (
	"fmt"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/shopping"
	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/spf13/cobra"
)

var exportCmd = LeafCommand{
	Use:   "export",
	Short: "Export a week's meal plan and shopping list as PDF",
	StrFlags: []StringFlag{
		{Name: "week", Short: "w", Usage: "any date in the week to export, or an ISO week number (default: this week)"},
		{Name: "output", Short: "o", Usage: "output file (default: meal-plan-<monday>.pdf)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		weekFlag, _ := cmd.Flags().GetString("week")
		outputFlag, _ := cmd.Flags().GetString("output")

		return runExport(cmd, a, weekFlag, outputFlag, time.Now)
	},
}.Build()

func runExport(cmd *cobra.Command, a *app, weekFlag, outputFlag string, nowFn func() time.Time) error {
	ctx := cmdContext(cmd)

	day, err := resolveWeek(weekFlag, nowFn())
	if err != nil {
		return err
	}
	ctrl, err := a.loadWeek(ctx, day, nowFn)
	if err != nil {
		return err
	}
	rows, err := loadDeficits(ctx, a, false)
	if err != nil {
		return err
	}

	data := exportData{Grid: ctrl.Grid(), Generated: nowFn()}
	for _, r := range rows {
		data.Deficits = append(data.Deficits, r.Deficit)
	}

	out := outputFlag
	if out == "" {
		out = fmt.Sprintf("meal-plan-%s.pdf", week.FormatISO(ctrl.Week()))
	}
	if err := renderExportPDF(data, out); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n",
		Primary(week.FormatRange(ctrl.Week())), Primary(out))
	return nil
}

// exportData is everything printed in an exported plan.
type exportData struct {
	Grid      *plan.Grid
	Deficits  []shopping.Deficit
	Generated time.Time
}

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
)

// renderExportPDF writes the week plan followed by the shopping list to outputPath.
func renderExportPDF(data exportData, outputPath string) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Meal plan", props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(8, week.FormatRange(data.Grid.Monday), props.Text{
			Size:  12,
			Color: &pdfMutedColor,
		}),
		text.NewCol(4, "Generated "+data.Generated.Format("Jan 2, 2006"), props.Text{
			Size:  8,
			Align: align.Right,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(4)

	for d, date := range data.Grid.Dates {
		m.AddRow(8,
			text.NewCol(12, date.Format("Monday, Jan 2"), props.Text{
				Style: fontstyle.Bold,
				Size:  10,
				Color: &pdfHeaderColor,
			}),
		)
		for slot, mt := range plan.MealTypes {
			meals := data.Grid.Cell(d, slot)
			titles := "-"
			if len(meals) > 0 {
				titles = ""
				for i, meal := range meals {
					if i > 0 {
						titles += ", "
					}
					titles += mealTitle(meal)
				}
			}
			m.AddRow(6,
				text.NewCol(3, "  "+mt.Label(), props.Text{
					Size:  9,
					Color: &pdfMutedColor,
				}),
				text.NewCol(9, titles, props.Text{Size: 9}),
			)
		}
		m.AddRow(4)
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(10,
		text.NewCol(12, "Shopping list", props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Color: &pdfHeaderColor,
		}),
	)
	if len(data.Deficits) == 0 {
		m.AddRow(6, text.NewCol(12, "Nothing to buy.", props.Text{
			Size:  9,
			Color: &pdfMutedColor,
		}))
	}
	for _, d := range data.Deficits {
		m.AddRow(6,
			text.NewCol(9, "  "+ingredientName(d), props.Text{Size: 9}),
			text.NewCol(3, shopping.FormatBuy(d), props.Text{
				Size:  9,
				Align: align.Right,
			}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}

	return doc.Save(outputPath)
}
