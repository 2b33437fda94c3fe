package domain

// RosterPort is the enrolled-subject lookup the loop uses to recompute the
// absent set each cycle
type RosterPort interface {
	Names() []string
	Count() int
	Known(name string) bool
}
