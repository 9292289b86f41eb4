package domain

type Outcome string

const (
	OutcomeAllow    Outcome = "allow"
	OutcomeRedirect Outcome = "redirect"
)

// PageData is what an allowed route hands to the page.
type PageData struct {
	User            *UserProfile
	IsAuthenticated bool
	IsAdmin         bool
}

type Decision struct {
	Outcome  Outcome
	Location string
	Page     PageData
}

func Allow(page PageData) Decision {
	return Decision{Outcome: OutcomeAllow, Page: page}
}

func RedirectTo(location string) Decision {
	return Decision{Outcome: OutcomeRedirect, Location: location}
}

func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}
