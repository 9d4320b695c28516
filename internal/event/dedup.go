package event

// Deduper collapses listings that appear on multiple source platforms.
// First seen wins, so source order determines which platform's metadata is
// kept for a duplicated listing.
type Deduper struct {
	seen map[string]bool
}

// NewDeduper creates an empty dedup set.
func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]bool)}
}

// Deduplicate returns events whose identity hash has not been seen before.
// The set persists across calls, so feeding one source at a time works too.
func (d *Deduper) Deduplicate(events []*Event) []*Event {
	unique := make([]*Event, 0, len(events))
	for _, e := range events {
		h := e.DedupHash()
		if d.seen[h] {
			continue
		}
		d.seen[h] = true
		unique = append(unique, e)
	}
	return unique
}

// Reset clears the seen set.
func (d *Deduper) Reset() {
	d.seen = make(map[string]bool)
}
