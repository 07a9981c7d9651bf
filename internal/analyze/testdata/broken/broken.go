package broken

//dsl:generate map_group=some
type Bad struct {
	Name string
}

//dsl:generate
type NotStruct int

//dsl:generate
type Generic[T any] struct {
	Value T
}

//dsl:generate
type Fields struct {
	Tagged string `dsl:"color=red"`
}

//dsl:transform input=NoSuchType
type Code string
