package shared

type Error string

// Implement the error interface
func (e Error) Error() string { return string(e) }

//------------
// Definitions
//------------

// schema loader errors
const ErrSchemaUnavailable = Error("schema files unavailable")
