package domain

// DirectoryRecord is the authorization metadata the directory holds for an
// email address. The directory owns these; we only read them.
type DirectoryRecord struct {
	Roles []string

	// TenantID empty means no tenant assigned.
	TenantID   string
	TenantName string
}

// DefaultDirectoryRecord is the record synthesized when the directory has no
// entry for an email. New users start with minimal privilege; absence of a
// record is never a rejection.
func DefaultDirectoryRecord() DirectoryRecord {
	return DirectoryRecord{
		Roles:      []string{"user"},
		TenantID:   "",
		TenantName: "",
	}
}
