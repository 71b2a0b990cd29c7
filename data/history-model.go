package data

// Exchange is one question/answer pair as stored in the transcript database.
type Exchange struct {
	Id       int64  `json:"id"`
	Mode     string `json:"mode"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Strategy string `json:"strategy"`
	Created  string `json:"created"`
}

// SessionFile is the on-disk format written by Session.Save.
type SessionFile struct {
	Timestamp  string   `json:"timestamp"`
	ModelsUsed []string `json:"models_used,omitempty"`
	History    []string `json:"history"`
}
