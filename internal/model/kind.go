// Package model defines the record types of a gigdash snapshot and the
// summary records derived from them.
package model

// Kind names a record collection.
type Kind string

const (
	KindProject      Kind = "projects"
	KindClient       Kind = "clients"
	KindInvoice      Kind = "invoices"
	KindTask         Kind = "tasks"
	KindNotification Kind = "notifications"
	KindActivity     Kind = "activity"
)

// AllKinds lists every collection in display order.
var AllKinds = []Kind{
	KindProject, KindClient, KindInvoice, KindTask, KindNotification, KindActivity,
}

// Valid reports whether k is a known collection.
func (k Kind) Valid() bool {
	for _, v := range AllKinds {
		if k == v {
			return true
		}
	}
	return false
}

// FilterAll is the categorical filter value that matches every record.
const FilterAll = "all"
