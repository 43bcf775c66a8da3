package cli

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// resolveDate turns a user-supplied date argument into a UTC calendar date
// key. Accepts natural language ("yesterday", "last monday") and standard
// formats; an empty argument means today.
func resolveDate(arg string) (string, error) {
	if arg == "" {
		return time.Now().UTC().Format("2006-01-02"), nil
	}

	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, arg); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	result, err := w.Parse(arg, time.Now())
	if err == nil && result != nil {
		return result.Time.UTC().Format("2006-01-02"), nil
	}

	return "", fmt.Errorf("could not parse date %q", arg)
}
