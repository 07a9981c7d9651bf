package partial

type Base struct {
	ID int
}

//dsl:generate root
type Mixed struct {
	Base
	Name   string
	Hook   func()
	Any    any
	Lines  *[]string
	Index  *map[string]int
	hidden int
}

//dsl:generate
type Holder struct {
	Mixed Mixed
}

//dsl:generates
type NotADirective struct {
	Name string
}
