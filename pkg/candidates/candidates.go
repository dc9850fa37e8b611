// Package candidates is the battery of types every strategy is tested against.
//
// Two lists are embedded: General for strategies that only allocate, and
// Serializable for serialization-compatible strategies. Default returns a
// class path on which every listed name resolves.
package candidates

import (
	"bytes"
	_ "embed"
	"errors"

	"github.com/dkoosis/tck/pkg/candidatelist"
	"github.com/dkoosis/tck/pkg/classpath"
)

// ErrConstructorCalled is the panic value of constructors that must never run.
var ErrConstructorCalled = errors.New("constructor should not have been called")

//go:embed candidates.properties
var generalList []byte

//go:embed serializable-candidates.properties
var serializableList []byte

// General returns the candidate list for plain allocation strategies.
func General() []candidatelist.Entry {
	return mustParse(generalList)
}

// Serializable returns the candidate list for serialization-compatible strategies.
func Serializable() []candidatelist.Entry {
	return mustParse(serializableList)
}

func mustParse(data []byte) []candidatelist.Entry {
	entries, err := candidatelist.Parse(bytes.NewReader(data), candidatelist.FormatProperties)
	if err != nil {
		panic("candidates: embedded list: " + err.Error())
	}
	return entries
}

// Default defines every candidate type on a new class path.
func Default() *classpath.ClassPath {
	cp := classpath.New()
	Define(cp)
	return cp
}

// Define adds every candidate type to cp.
func Define(cp *classpath.ClassPath) {
	classpath.Define[EmptyClass](cp)
	classpath.Define[NoConstructor](cp)
	classpath.Define[PrivateConstructor](cp, classpath.Constructor(newPrivateConstructor))
	classpath.Define[ConstructorThrowing](cp, classpath.Constructor(func(*ConstructorThrowing) {
		panic(ErrConstructorCalled)
	}))
	classpath.Define[abstractShape](cp, classpath.Constructor(func(s *abstractShape) { s.baseReady = true }))
	classpath.Define[ExtendsAbstractClass](cp, classpath.Constructor(func(s *ExtendsAbstractClass) { s.Sides = 4 }))
	classpath.Define[ExtendsConstructorThrowing](cp, classpath.Constructor(func(e *ExtendsConstructorThrowing) {
		e.Extra = "set"
	}))
	classpath.Define[unexportedClass](cp)
	classpath.Define[Box[int]](cp)
	classpath.Define[Celsius](cp)
	classpath.Define[Ring](cp)

	classpath.Define[SerializableNoConstructor](cp, classpath.Serializable())
	classpath.Define[SerializableConstructorThrowing](cp, classpath.Serializable(),
		classpath.Constructor(func(*SerializableConstructorThrowing) { panic(ErrConstructorCalled) }))
	classpath.Define[SuperClass](cp, classpath.Constructor(func(s *SuperClass) { s.superConstructorCalled = true }))
	classpath.Define[SerializableSubClass](cp, classpath.Serializable(),
		classpath.Constructor(func(s *SerializableSubClass) { s.constructorCalled = true }))
	classpath.Define[SerializableExtendsThrowing](cp, classpath.Serializable(),
		classpath.Constructor(func(*SerializableExtendsThrowing) { panic(ErrConstructorCalled) }))
}
