package tetris

// LineClearResult reports one clear pass. Rows holds the row index at which
// each elimination happened, bottom first; a row index repeats when content
// shifted into a just-cleared row completed it again.
type LineClearResult struct {
	Rows   []int
	Count  int
	Points int
}

var linePoints = [...]int{0, 100, 300, 500, 800}

// LinePoints returns the award for clearing count rows in one pass.
func LinePoints(count int) int {
	if count <= 0 {
		return 0
	}
	if count >= len(linePoints) {
		return linePoints[len(linePoints)-1]
	}
	return linePoints[count]
}

// ClearLines scans g bottom-up, removes every full row and collapses the
// rows above it. After a removal the same row index is tested again, since
// the row shifted into it may be full as well.
func ClearLines(g *Grid) LineClearResult {
	var res LineClearResult
	bounds := g.Bounds()

	row := bounds.YMin
	for row < bounds.YMax {
		if !g.IsRowFull(row) {
			row++
			continue
		}
		g.ClearRow(row)
		for r := row; r < bounds.YMax; r++ {
			g.ShiftRowDown(r)
		}
		res.Rows = append(res.Rows, row)
		res.Count++
	}

	res.Points = LinePoints(res.Count)
	return res
}
