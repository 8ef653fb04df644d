package view

// CaseStudy is one entry of the case-study grid. It is either a StandardCase,
// which opens the detail overlay, or a CallToAction, which sends the visitor
// to an external page instead.
type CaseStudy interface {
	Summary() Card
	caseStudy()
}

// Card holds the fields shown on the grid for every kind of entry.
type Card struct {
	Sector      string
	Title       string
	Impact      string
	Description string
	Icon        string
}

// StandardCase is a case study with a detail overlay.
type StandardCase struct {
	Card
	LongDescription string
	Features        []string
	AppURL          string
}

// CallToAction is the grid entry that opens an external booking page.
type CallToAction struct {
	Card
	URL string
}

// Summary returns the grid fields.
func (c StandardCase) Summary() Card { return c.Card }

// Summary returns the grid fields.
func (c CallToAction) Summary() Card { return c.Card }

func (StandardCase) caseStudy() {}
func (CallToAction) caseStudy() {}
