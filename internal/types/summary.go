package types

// LicenseGroup lists the modules that declare one license string.
type LicenseGroup struct {
	License string
	Modules []ModuleKey
}

func (g LicenseGroup) Count() int {
	return len(g.Modules)
}

// Summary buckets every flattened module by compliance status.
type Summary struct {
	Approved    []LicenseGroup
	Unapproved  []LicenseGroup
	Unprocessed []LicenseGroup
}

func (s Summary) Groups(status ComplianceStatus) []LicenseGroup {
	switch status {
	case ComplianceApproved:
		return s.Approved
	case ComplianceUnapproved:
		return s.Unapproved
	case ComplianceUnprocessed:
		return s.Unprocessed
	default:
		return nil
	}
}

func (s Summary) ModuleCount(status ComplianceStatus) int {
	total := 0
	for _, group := range s.Groups(status) {
		total += group.Count()
	}
	return total
}
