package models

// Credentials is the project URL and anon key captured during setup.
type Credentials struct {
	ProjectURL string `json:"url"`
	AnonKey    string `json:"anon_key"`
}
