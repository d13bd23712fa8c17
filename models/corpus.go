package models

// Record is one entry of the static corpus file. Every field is optional;
// use the resolution helpers rather than reading Text/Body or Source/URL directly.
type Record struct {
	Text   string `json:"text"`
	Body   string `json:"body"`
	Source string `json:"source"`
	URL    string `json:"url"`
	Title  string `json:"title"`
}

// EffectiveText is Text, falling back to Body. ok is false when both are empty.
func (r Record) EffectiveText() (string, bool) {
	return firstNonEmpty(r.Text, r.Body)
}

// Link is Source, falling back to URL. ok is false when both are empty.
func (r Record) Link() (string, bool) {
	return firstNonEmpty(r.Source, r.URL)
}

func firstNonEmpty(values ...string) (string, bool) {
	for _, v := range values {
		if v != "" {
			return v, true
		}
	}
	return "", false
}
