// Package instantiator provides construction strategies to run through the TCK.
//
//	Std          allocates a zero value; no constructor runs
//	Serializer   allocates, then runs superclass constructors but not the
//	             type's own (serialization-compatible construction)
//	Constructor  allocates and runs every constructor, like ordinary code
//
// All strategies return a *T for the requested type T.
package instantiator

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/dkoosis/tck/pkg/classpath"
)

var (
	// ErrAbstract is returned for interface types, which have no instances.
	ErrAbstract = errors.New("cannot instantiate abstract type")
	// ErrNotSerializable is returned by Serializer for types not marked serializable.
	ErrNotSerializable = errors.New("type is not serializable")
	// ErrUnknownClass is returned when a strategy needs class metadata that was never defined.
	ErrUnknownClass = errors.New("type is not defined on the class path")
)

func allocate(t reflect.Type) (reflect.Value, error) {
	if t == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil type", ErrAbstract)
	}
	if t.Kind() == reflect.Interface {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrAbstract, t)
	}
	return reflect.New(t), nil
}

// Std allocates zero values without running any constructor.
type Std struct{}

// NewInstance implements tck.Instantiator.
func (Std) NewInstance(t reflect.Type) (any, error) {
	v, err := allocate(t)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// Serializer builds instances the way deserialization does: ancestors are
// constructed, the type itself is not.
type Serializer struct {
	Classes *classpath.ClassPath
}

// NewInstance implements tck.Instantiator.
func (s Serializer) NewInstance(t reflect.Type) (any, error) {
	c, ok := s.Classes.Lookup(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, t)
	}
	if !c.Serializable {
		return nil, fmt.Errorf("%w: %s", ErrNotSerializable, c.Name)
	}
	v, err := allocate(t)
	if err != nil {
		return nil, err
	}
	constructAncestors(s.Classes, v)
	return v.Interface(), nil
}

// Constructor runs every constructor from the outermost ancestor down to the
// type itself. Types never defined on the class path are zero-allocated.
type Constructor struct {
	Classes *classpath.ClassPath
}

// NewInstance implements tck.Instantiator.
func (s Constructor) NewInstance(t reflect.Type) (any, error) {
	v, err := allocate(t)
	if err != nil {
		return nil, err
	}
	constructAncestors(s.Classes, v)
	if c, ok := s.Classes.Lookup(t); ok {
		c.Construct(v)
	}
	return v.Interface(), nil
}

// constructAncestors runs defined ancestor constructors on *root, outermost first.
func constructAncestors(cp *classpath.ClassPath, root reflect.Value) {
	chain := classpath.Ancestors(root.Type().Elem())
	for i := len(chain) - 1; i >= 0; i-- {
		a := chain[i]
		c, ok := cp.Lookup(a.Type)
		if !ok || !c.HasConstructor() {
			continue
		}
		c.Construct(classpath.FieldPointer(root, a.Index))
	}
}
