package writer

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/decryp7/credit-card-billsplit/internal/models"
)

// TableWriter renders transactions and their totals as a text table.
type TableWriter struct {
	// Markdown switches to pipe-table output.
	Markdown bool
}

// Write renders the transactions followed by the tag totals.
func (w *TableWriter) Write(out io.Writer, txns []models.Transaction) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Date", "Description", "Amount", "Card", "Tag"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})
	if w.Markdown {
		table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		table.SetCenterSeparator("|")
	}

	for i := range txns {
		txn := &txns[i]
		table.Append([]string{
			txn.Date,
			txn.Description,
			formatAmount(txn.Amount),
			txn.Card,
			string(txn.Tag()),
		})
	}
	table.Render()

	w.writeSummary(out, models.Summarize(txns))
	return nil
}

func (w *TableWriter) writeSummary(out io.Writer, s models.Summary) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Total", "Amount"})
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	if w.Markdown {
		table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		table.SetCenterSeparator("|")
	}

	table.Append([]string{string(models.TagPersonal), formatAmount(s.Personal)})
	table.Append([]string{string(models.TagJoint), formatAmount(s.Joint)})
	table.Append([]string{"UNTAGGED", formatAmount(s.Untagged)})
	table.SetFooter([]string{"ALL", formatAmount(s.Total)})
	table.Render()
}
