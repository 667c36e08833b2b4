package repository

// SectionRecord is one persisted wizard section for one named configuration.
// Payload is an opaque nested mapping; the store is responsible for its
// serialization and callers never see the encoded form.
type SectionRecord struct {
	Name        string                 `json:"name"`
	Section     string                 `json:"section"`
	Validated   bool                   `json:"validated"`
	UserEntered bool                   `json:"user_entered"`
	Payload     map[string]interface{} `json:"payload"`
}
