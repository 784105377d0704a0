// Package i18n holds the localized combat message catalog.
package i18n

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a catalog message.
type Key string

const (
	MutedMale     Key = "muted_male"
	MutedFemale   Key = "muted_female"
	MuteTime      Key = "mute_time"
	CantAttack    Key = "cant_attack"
	NotEnoughMP   Key = "not_enough_mp"
	ItemBoundTo   Key = "item_bound_to"
	DroppedItem   Key = "dropped_item"
	MaxGold       Key = "max_gold"
	ItemAcquired  Key = "item_acquired"
	GoldAcquired  Key = "gold_acquired"
	SkillNotReady Key = "skill_not_ready"
)

// entries is keyed by language, then message key. Arguments use fmt verbs;
// integers are rendered with the language's digit grouping.
var entries = map[language.Tag]map[Key]string{
	language.English: {
		MutedMale:     "This gentleman is muted and cannot fight.",
		MutedFemale:   "This lady is muted and cannot fight.",
		MuteTime:      "Remaining mute time: %s",
		CantAttack:    "You cannot attack yet.",
		NotEnoughMP:   "Not enough MP.",
		ItemBoundTo:   "%[1]s x%[2]d is bound to %[3]s.",
		DroppedItem:   "%[1]s x%[2]d dropped.",
		MaxGold:       "You cannot carry more gold.",
		ItemAcquired:  "Acquired: %[1]s x%[2]d",
		GoldAcquired:  "Acquired %[1]d gold.",
		SkillNotReady: "That skill is not ready yet.",
	},
	language.French: {
		MutedMale:     "Ce monsieur est réduit au silence et ne peut pas combattre.",
		MutedFemale:   "Cette dame est réduite au silence et ne peut pas combattre.",
		MuteTime:      "Temps de silence restant : %s",
		CantAttack:    "Vous ne pouvez pas encore attaquer.",
		NotEnoughMP:   "PM insuffisants.",
		ItemBoundTo:   "%[1]s x%[2]d est attribué à %[3]s.",
		DroppedItem:   "%[1]s x%[2]d est tombé.",
		MaxGold:       "Vous ne pouvez pas porter plus d'or.",
		ItemAcquired:  "Obtenu : %[1]s x%[2]d",
		GoldAcquired:  "Vous obtenez %[1]d pièces d'or.",
		SkillNotReady: "Cette compétence n'est pas encore prête.",
	},
}

// Messages renders catalog entries for one language.
// Safe for concurrent use.
type Messages struct {
	tag     language.Tag
	printer *message.Printer
}

// New builds the catalog and selects the best match for lang.
// Unknown languages fall back to English.
func New(lang string) (*Messages, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range entries {
		for key, msg := range msgs {
			if err := b.SetString(tag, string(key), msg); err != nil {
				return nil, fmt.Errorf("setting message %s/%s: %w", tag, key, err)
			}
		}
	}

	want, err := language.Parse(lang)
	if err != nil {
		want = language.English
	}
	matcher := language.NewMatcher(b.Languages())
	_, idx, _ := matcher.Match(want)
	tag := b.Languages()[idx]

	return &Messages{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b)),
	}, nil
}

// Language returns the selected language tag.
func (m *Messages) Language() language.Tag {
	return m.tag
}

// Text renders the message for key with args.
func (m *Messages) Text(key Key, args ...any) string {
	return m.printer.Sprintf(string(key), args...)
}

// Clock formats a duration as hh:mm:ss. Negative durations render as 00:00:00.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
