// Package dict provides dictionary lookups against the Jisho API with a
// local sqlite cache.
package dict

// Entry is one dictionary entry as returned by the Jisho words API.
type Entry struct {
	Slug     string     `json:"slug"`
	IsCommon bool       `json:"is_common"`
	JLPT     []string   `json:"jlpt"`
	Japanese []Japanese `json:"japanese"`
	Senses   []Sense    `json:"senses"`
}

// Japanese is one written/read form of an entry.
type Japanese struct {
	Word    string `json:"word"`
	Reading string `json:"reading"`
}

// Sense is one meaning of an entry.
type Sense struct {
	EnglishDefinitions []string `json:"english_definitions"`
	PartsOfSpeech      []string `json:"parts_of_speech"`
	Tags               []string `json:"tags"`
}

// searchResponse is the wire shape of the words endpoint.
type searchResponse struct {
	Meta struct {
		Status int `json:"status"`
	} `json:"meta"`
	Data []Entry `json:"data"`
}
