package layout

// =============================================================================
// Paginator
// =============================================================================

// Page is one laid-out physical page. Header elements span the full
// content width; body elements flow through the two-column region and
// are split into left/right columns by the renderer (see SplitColumns).
// Pages are immutable once produced - a new layout pass builds an
// entirely new sequence.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Header holds the full-width elements, in document order.
	// Only the first page carries a header in this layout.
	Header []Element

	// Body holds the column-class elements, in document order.
	Body []Element

	// HeaderHeight and BodyHeight are the used-height counters the
	// paginator accumulated while filling the page, in points.
	HeaderHeight float64
	BodyHeight   float64
}

// Paginate assigns the normalized element list to pages using strict
// capacity-based breaking.
//
// Processing is a single pass in element order. Full-width elements
// fill the header region and must precede body content on their page;
// column-class elements fill the two-column body, whose capacity is
// twice the content height remaining below the header. The body shares
// the first page with the header: the transition is a region switch
// within the page, so a short document lays out entirely on page 1.
// Break hints are honored as follows: ForceBreakBefore closes a
// non-empty page before placing; ForceBreakAfter on a full-width
// element seals the header region (later full-width elements start a
// new page, body content flows into the remaining space) while on a
// column-class element it closes the page; KeepWithNext breaks early
// when the element and its successor would not fit together - unless
// the successor alone exceeds a whole page, in which case the pair is
// allowed to separate.
//
// Degenerate inputs never fail: zero elements produce a single empty
// page, and an element taller than a whole page's body capacity is
// placed alone on its own page rather than looping.
//
// The engine never reorders content: concatenating Header then Body
// across pages in page order reproduces the input order exactly, and
// every element appears on exactly one page.
func Paginate(els []Element, est Estimator, geom Geometry) []Page {
	p := paginator{est: est, geom: geom, cur: Page{Number: 1}}

	for i, el := range els {
		if el.ForceBreakBefore {
			p.closePage()
		}

		if el.FullWidth() {
			p.placeHeader(el)
		} else {
			p.placeBody(el, peekBody(els, i))
		}

		if el.ForceBreakAfter {
			if el.FullWidth() {
				p.sealHeader()
			} else {
				p.closePage()
			}
		}
	}

	// The final page is emitted even partially filled. If everything
	// ended on a forced break (or there was nothing at all), the
	// preview still gets one page rather than none.
	if p.hasContent() || len(p.pages) == 0 {
		p.pages = append(p.pages, p.cur)
	}
	return p.pages
}

// peekBody returns the successor of els[i] if it is a column-class
// element, for keep-with-next pairing.
func peekBody(els []Element, i int) *Element {
	if i+1 >= len(els) || els[i+1].FullWidth() {
		return nil
	}
	return &els[i+1]
}

type paginator struct {
	est   Estimator
	geom  Geometry
	pages []Page
	cur   Page

	// sealed marks the current page's header region as closed: body
	// content may still flow in below it, but any further full-width
	// element must start a new page.
	sealed bool
}

func (p *paginator) hasContent() bool {
	return len(p.cur.Header) > 0 || len(p.cur.Body) > 0
}

// closePage finalizes the current page and starts a fresh one. Closing
// an empty page is a no-op so stacked break hints cannot emit blanks.
func (p *paginator) closePage() {
	if !p.hasContent() {
		return
	}
	p.pages = append(p.pages, p.cur)
	p.cur = Page{Number: len(p.pages) + 1}
	p.sealed = false
}

// sealHeader closes the header region of the current page without
// ending the page, so the two-column body starts in the space below.
func (p *paginator) sealHeader() {
	p.sealed = true
}

// bodyCapacity returns the current page's total two-column body
// capacity: both columns share the region below the header.
func (p *paginator) bodyCapacity() float64 {
	return 2 * (p.geom.ContentHeight() - p.cur.HeaderHeight)
}

// fullPageBodyCapacity is the body capacity of a headerless page, the
// yardstick for the oversized-element and keep-with-next edge cases.
func (p *paginator) fullPageBodyCapacity() float64 {
	return 2 * p.geom.ContentHeight()
}

// placeHeader places a full-width element in the header region. Header
// content must precede body content on a page, so if body elements are
// already placed, the region is sealed, or the header is out of room,
// the page is closed first.
func (p *paginator) placeHeader(el Element) {
	h := p.est.Estimate(el, p.geom.ContentWidth())

	if len(p.cur.Body) > 0 || p.sealed {
		p.closePage()
	}
	if p.cur.HeaderHeight+h > p.geom.ContentHeight() {
		p.closePage()
	}

	p.cur.Header = append(p.cur.Header, el)
	p.cur.HeaderHeight += h
}

// placeBody places a column-class element in the body region, breaking
// to a new page when capacity runs out. next is the element's successor
// for keep-with-next pairing, or nil.
func (p *paginator) placeBody(el Element, next *Element) {
	colWidth := p.geom.ColumnWidth()
	h := p.est.Estimate(el, colWidth)

	need := h
	if el.KeepWithNext && next != nil {
		nh := p.est.Estimate(*next, colWidth)
		// Pair with the successor unless it alone would already
		// need a new page regardless of break rules.
		if nh <= p.fullPageBodyCapacity() {
			need = h + nh
		}
	}

	// Break only if the page already holds body content; an element
	// that overflows an otherwise empty body region is placed anyway,
	// isolated on its own page, so pagination always terminates.
	if p.cur.BodyHeight+need > p.bodyCapacity() && len(p.cur.Body) > 0 {
		p.closePage()
	}

	p.cur.Body = append(p.cur.Body, el)
	p.cur.BodyHeight += h
}
