// Package translit implements the Devanāgarī→ITRANS transliteration hook
// spec.md §1 and §6 describe as an external, pure `normalize(text) ->
// text` collaborator: a standard table-driven character mapping, applied
// uniformly across the whole source text and idempotent on already-ASCII
// input. It does not understand lexical structure (strings, comments,
// keywords) — it is purely a Unicode code-point transducer, same as the
// `indic_transliteration` library the original script used.
package translit

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// independentVowels map Devanāgarī vowel letters (used word-initially or
// standalone) to ITRANS.
var independentVowels = map[rune]string{
	'अ': "a", 'आ': "A", 'इ': "i", 'ई': "I", 'उ': "u", 'ऊ': "U",
	'ऋ': "RRi", 'ॠ': "RRI", 'ऌ': "LLi", 'ॡ': "LLI",
	'ए': "e", 'ऐ': "ai", 'ओ': "o", 'औ': "au",
}

// matras map dependent vowel signs, which attach to a preceding
// consonant and replace its inherent "a".
var matras = map[rune]string{
	'ा': "A", 'ि': "i", 'ी': "I", 'ु': "u", 'ू': "U",
	'ृ': "RRi", 'ॄ': "RRI", 'ॢ': "LLi", 'ॣ': "LLI",
	'े': "e", 'ै': "ai", 'ो': "o", 'ौ': "au",
}

// consonants map Devanāgarī consonant letters to their ITRANS form
// including the inherent "a" vowel; readRune strips the trailing "a"
// when a virama or matra follows.
var consonants = map[rune]string{
	'क': "ka", 'ख': "kha", 'ग': "ga", 'घ': "gha", 'ङ': "~Na",
	'च': "cha", 'छ': "Cha", 'ज': "ja", 'झ': "jha", 'ञ': "~na",
	'ट': "Ta", 'ठ': "Tha", 'ड': "Da", 'ढ': "Dha", 'ण': "Na",
	'त': "ta", 'थ': "tha", 'द': "da", 'ध': "dha", 'न': "na",
	'प': "pa", 'फ': "pha", 'ब': "ba", 'भ': "bha", 'म': "ma",
	'य': "ya", 'र': "ra", 'ल': "la", 'व': "va",
	'श': "sha", 'ष': "Sha", 'स': "sa", 'ह': "ha",
	'ळ': "La",
}

const (
	virama      = '्'
	anusvara    = 'ं'
	visarga     = 'ः'
	chandrabind = 'ँ'
	avagraha    = 'ऽ'
)

// Normalize transliterates Devanāgarī code points in src to ITRANS ASCII
// and passes everything else (ASCII text, Devanāgarī digits, whitespace,
// punctuation) through unchanged. It is idempotent: running it twice
// gives the same result as running it once, since its own output
// contains no Devanāgarī code points.
func Normalize(src string) string {
	runes := []rune(norm.NFC.String(src))
	var out strings.Builder
	out.Grow(len(runes))

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if stem, ok := consonants[r]; ok {
			bare := strings.TrimSuffix(stem, "a")
			if i+1 < len(runes) && runes[i+1] == virama {
				out.WriteString(bare)
				i++
				continue
			}
			if i+1 < len(runes) {
				if matra, ok2 := matras[runes[i+1]]; ok2 {
					out.WriteString(bare)
					out.WriteString(matra)
					i++
					continue
				}
			}
			out.WriteString(stem)
			continue
		}

		if v, ok := independentVowels[r]; ok {
			out.WriteString(v)
			continue
		}

		switch r {
		case anusvara:
			out.WriteString("M")
		case visarga:
			out.WriteString("H")
		case chandrabind:
			out.WriteString(".N")
		case avagraha:
			out.WriteString(".a")
		case virama:
			// stray virama with no preceding consonant: drop it
		default:
			out.WriteRune(r)
		}
	}

	return out.String()
}
