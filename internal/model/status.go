package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// The factory service speaks upper-case enums in Portuguese or English
// (ATIVO, ACTIVE, OPERANDO, OPERATING) while forms and the demo store use
// display labels (Active, Operando). Each group below is one status.
var statusSynonyms = [][]string{
	{"ativo", "active"},
	{"inativo", "inactive"},
	{"operando", "operating", "running"},
	{"parada", "parado", "stopped", "idle"},
	{"manutencao", "em manutencao", "maintenance", "under maintenance"},
	{"afastado", "on leave", "licenca", "de licenca"},
	{"ferias", "vacation"},
	{"desligado", "terminated", "dismissed"},
	{"ok", "disponivel", "available"},
	{"atencao", "attention", "warning"},
	{"critico", "critical"},
	{"sem estoque", "out of stock", "indisponivel", "unavailable"},
}

var statusCanon = func() map[string]string {
	m := make(map[string]string)
	for _, group := range statusSynonyms {
		for _, s := range group {
			m[s] = group[0]
		}
	}
	return m
}()

// FoldStatus lower-cases a status, strips accents and treats '_' and '-'
// as spaces, so "SEM_ESTOQUE", "Sem estoque" and "sem-estoque" fold alike.
func FoldStatus(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	folded = strings.NewReplacer("_", " ", "-", " ").Replace(folded)
	return strings.Join(strings.Fields(folded), " ")
}

// CanonicalStatus maps any known spelling onto the first entry of its
// synonym group; unknown statuses are returned folded.
func CanonicalStatus(s string) string {
	f := FoldStatus(s)
	if c, ok := statusCanon[f]; ok {
		return c
	}
	return f
}

// SameStatus reports whether two status spellings name the same status.
func SameStatus(a, b string) bool {
	return CanonicalStatus(a) == CanonicalStatus(b)
}

// Common statuses checked by the screens.
const (
	StatusActive    = "ATIVO"
	StatusOperating = "OPERANDO"
)
