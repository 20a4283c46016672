package component

// TTL destroys the entity after the given number of milliseconds.
type TTL struct {
	Ms float64
}

var TTLComponent = NewComponent[TTL]()

// Warning is a telegraph marker drawn before a spawn.
type Warning struct {
	Radius float64
}

var WarningComponent = NewComponent[Warning]()
