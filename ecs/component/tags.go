package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type BadnikTag struct{}

var BadnikTagComponent = NewComponent[BadnikTag]()

type RingTag struct{}

var RingTagComponent = NewComponent[RingTag]()

// Name is the stage-facing identifier of an entity.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
