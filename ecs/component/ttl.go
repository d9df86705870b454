package component

// TTL destroys its entity after the given number of ticks.
type TTL struct {
	Ticks int
}

var TTLComponent = NewComponent[TTL]()
