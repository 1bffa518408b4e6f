package layout

// SplitColumns divides a page's body elements into left and right
// columns for rendering, fed by the same height estimates the paginator
// used. Elements fill the left column top-to-bottom until it reaches
// its share of the page's used height, then continue into the right
// column; document order is preserved across the two slices.
//
// The split is a rendering-time concern: the paginator only decides
// which elements belong to the page, and this helper decides where the
// column boundary falls. The left column never exceeds the physical
// column capacity below the header even on an unbalanced page.
func SplitColumns(p Page, est Estimator, geom Geometry) (left, right []Element) {
	if len(p.Body) == 0 {
		return nil, nil
	}

	colWidth := geom.ColumnWidth()
	capacity := geom.ContentHeight() - p.HeaderHeight

	// Balance target: half of the height actually used, so a lightly
	// filled final page splits evenly instead of stacking everything
	// on the left.
	target := p.BodyHeight / 2
	if target > capacity {
		target = capacity
	}

	var used float64
	for i, el := range p.Body {
		if i > 0 && used >= target {
			return p.Body[:i], p.Body[i:]
		}
		used += est.Estimate(el, colWidth)
	}
	return p.Body, nil
}
