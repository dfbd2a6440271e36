package recipe

// Unknown is the sentinel for timing fields the source material does not
// reveal. Downstream code never branches on a missing field; it is always
// present with this value instead.
const Unknown = "unknown"

// UnknownTitle is the sentinel used when the video provider supplies no title.
const UnknownTitle = "unknown title"

// Structured is the canonical extracted recipe shape. Ingredient entries are
// already display-normalized ("name (quantity)" or bare "name"); steps hold
// one instruction each; utensil order carries no meaning.
type Structured struct {
	Ingredients []string
	Steps       []string
	Utensils    []string
	CookTime    string
	PrepTime    string
}

// NewStructured returns a Structured with every field present: empty lists
// and the Unknown sentinel for timings.
func NewStructured() Structured {
	return Structured{
		Ingredients: []string{},
		Steps:       []string{},
		Utensils:    []string{},
		CookTime:    Unknown,
		PrepTime:    Unknown,
	}
}

// Normalized is the flattened persistence row shape. A human reviewer may
// overwrite any field before the final persist call; edits are authoritative
// and are not re-validated against the original transcript.
type Normalized struct {
	VideoURL        string
	Title           string
	IngredientsText string
	StepsText       string
	UtensilsText    string
	CookTime        string
	PrepTime        string
}
