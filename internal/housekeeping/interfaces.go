package housekeeping

// SchemaMirror defines the schema loader methods required by the
// housekeeping service. This decouples the refresh loop from the concrete
// loader implementation.
type SchemaMirror interface {
	EnsureCurrent(branch string) error
}
