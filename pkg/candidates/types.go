package candidates

// EmptyClass has no state at all.
type EmptyClass struct{}

// NoConstructor has state but no constructor.
type NoConstructor struct {
	Value int
}

// PrivateConstructor is normally built only by an unexported constructor.
type PrivateConstructor struct {
	secret string
}

func newPrivateConstructor(p *PrivateConstructor) { p.secret = "constructed" }

// Constructed reports whether the constructor ran.
func (p *PrivateConstructor) Constructed() bool { return p.secret != "" }

// ConstructorThrowing panics whenever its constructor runs.
type ConstructorThrowing struct {
	Value int
}

// Shape is implemented by concrete shapes; abstractShape leaves it unset.
type Shape interface {
	Area() float64
}

// abstractShape is an incomplete base: its Shape behaviour comes from the embedder.
type abstractShape struct {
	Shape
	baseReady bool
}

// ExtendsAbstractClass embeds an abstract base.
type ExtendsAbstractClass struct {
	abstractShape
	Sides int
}

// BaseReady reports whether the abstract base constructor ran.
func (e *ExtendsAbstractClass) BaseReady() bool { return e.baseReady }

// ExtendsConstructorThrowing inherits a panicking constructor.
type ExtendsConstructorThrowing struct {
	ConstructorThrowing
	Extra string
}

type unexportedClass struct {
	n int
}

// Box is a generic container; Box[int] is the candidate.
type Box[T any] struct {
	Value T
}

// Celsius is a named non-struct type.
type Celsius float64

// Ring is a named slice type.
type Ring []int

// SerializableNoConstructor is serializable with no constructors anywhere.
type SerializableNoConstructor struct {
	Value int
}

// SerializableConstructorThrowing is serializable; its own constructor panics.
type SerializableConstructorThrowing struct {
	Value int
}

// SuperClass sets a flag from its constructor.
type SuperClass struct {
	superConstructorCalled bool
}

// SuperConstructorCalled reports whether the SuperClass constructor ran.
func (s *SuperClass) SuperConstructorCalled() bool { return s.superConstructorCalled }

// SerializableSubClass is serializable and extends SuperClass.
type SerializableSubClass struct {
	SuperClass
	constructorCalled bool
}

// ConstructorCalled reports whether the SerializableSubClass constructor ran.
func (s *SerializableSubClass) ConstructorCalled() bool { return s.constructorCalled }

// SerializableExtendsThrowing is serializable, panics in its own constructor
// and extends a type whose constructor must run.
type SerializableExtendsThrowing struct {
	SuperClass
	Value int
}
