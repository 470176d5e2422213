package mimic

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteHistory renders recorded invocations to w as a text table, one row per
// dispatch in sequence order. It backs assertion failure messages and is
// exported for ad-hoc debugging of a session's history.
func WriteHistory(w io.Writer, invocations []*Invocation) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Seq", "Command", "Scope", "Args", "Served By"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	for _, inv := range invocations {
		scope := "-"
		if inv.Scope != nil {
			scope = inv.Scope.String()
		}

		args := inv.Args.String()
		if args == "" {
			args = "-"
		}

		served := "original"
		if inv.Registration != nil {
			served = "mock #" + strconv.FormatUint(inv.Registration.Seq, 10)
		}

		table.Append([]string{
			strconv.FormatUint(inv.Seq, 10),
			inv.Command,
			scope,
			args,
			served,
		})
	}

	table.Render()
}
