package lexer

// keywords is the set of post-transliteration, case-sensitive spellings
// recognized as KEYWORD tokens rather than IDENTIFIER tokens. Both the
// diacritic-preserving ITRANS spelling and a simplified ASCII-only spelling
// are accepted for each keyword, per spec.md §3.
var keywords = map[string]bool{
	// variable declaration
	"charaH": true, "charah": true,
	// logical and / or / not
	"tathA": true, "tatha": true,
	"vA": true, "va": true,
	"nahi": true,
	// if / elif / else / end
	"yadi": true,
	"anyadi": true,
	"uta":    true,
	"aMta": true, "anta": true, "amta": true,
	// for / to / step
	"kRRite": true, "krrite": true,
	"ityasmai": true,
	"charaNa": true, "charana": true,
	// while
	"sopAnaH": true, "sopanah": true,
	// function def
	"niyoga": true,
	// return / break / continue
	"pratyAvartanam": true, "pratyavartanam": true,
	"viramah": true, "virAmaH": true,
	"anuvartanam": true,
}

// LookupIdentifier returns KEYWORD if literal is a recognized keyword
// spelling, otherwise IDENTIFIER.
func LookupIdentifier(literal string) Kind {
	if keywords[literal] {
		return KEYWORD
	}
	return IDENTIFIER
}
