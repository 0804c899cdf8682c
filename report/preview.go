package report

import (
	"strconv"

	"github.com/arloliu/potency/assay"
)

// PreviewHeader is the header row matching Preview rows.
var PreviewHeader = []string{"#", "Dose", "Response", "Group"}

// Preview returns the first limit observations as table rows in input order.
// A limit <= 0 returns every row.
func Preview(obs []assay.Observation, limit int) [][]string {
	n := len(obs)
	if limit > 0 && limit < n {
		n = limit
	}

	rows := make([][]string, n)
	for i, o := range obs[:n] {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(o.Dose, 'g', -1, 64),
			strconv.FormatFloat(o.Response, 'g', -1, 64),
			o.Group.String(),
		}
	}

	return rows
}
