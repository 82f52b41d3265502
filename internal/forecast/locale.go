package forecast

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

var (
	supportedLocales = []language.Tag{language.Romanian, language.English}
	localeMatcher    = language.NewMatcher(supportedLocales)
)

var monthNames = map[language.Tag][12]string{
	language.Romanian: {
		"ianuarie", "februarie", "martie", "aprilie", "mai", "iunie",
		"iulie", "august", "septembrie", "octombrie", "noiembrie", "decembrie",
	},
	language.English: {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

// MatchLocale picks the best supported locale for the given preferences.
// Each preference may be a single tag or a full Accept-Language value.
// fallback is returned when nothing matches.
func MatchLocale(fallback language.Tag, prefs ...string) language.Tag {
	var tags []language.Tag
	for _, p := range prefs {
		if p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return fallback
	}

	_, idx, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return supportedLocales[idx]
}

// MonthLabel formats the month of t as "<month name> <year>" in the locale.
// Regional tags use their base locale; unsupported ones get English names.
func MonthLabel(t time.Time, tag language.Tag) string {
	names, ok := monthNames[tag]
	if !ok {
		names = monthNames[MatchLocale(language.English, tag.String())]
	}
	return fmt.Sprintf("%s %d", names[t.Month()-1], t.Year())
}
