package ir

// Version constants for the resolved configuration schema.
const (
	// SchemaVersion is the version of the resolved configuration layout.
	SchemaVersion = "1"

	// ToolVersion is the phpunitxml release version.
	ToolVersion = "0.1.0"
)
