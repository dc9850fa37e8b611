// Package classpath is a name-addressable registry of Go types.
//
// Go cannot look a type up by name at run time, so candidates are defined up
// front: each Class records its reflect.Type, an optional constructor and
// whether it opts into serialization-compatible construction. A ClassPath
// is the TypeResolver the TCK loader resolves candidate names against.
package classpath

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/dkoosis/tck/pkg/tck"
)

// Class describes one defined type.
type Class struct {
	Name         string
	Type         reflect.Type
	Serializable bool
	ctor         func(ptr reflect.Value)
}

// HasConstructor reports whether a constructor was defined for the class.
func (c *Class) HasConstructor() bool { return c.ctor != nil }

// Construct runs the class constructor on ptr, which must be a *T for the
// class type T. Constructors may panic; Construct does not recover.
func (c *Class) Construct(ptr reflect.Value) {
	if c.ctor == nil {
		return
	}
	if ptr.Type() != reflect.PointerTo(c.Type) {
		panic(fmt.Sprintf("classpath: construct %s with %s", c.Name, ptr.Type()))
	}
	c.ctor(Writable(ptr))
}

// Option configures a Class at definition time.
type Option func(*Class)

// Serializable marks the class as eligible for serialization-compatible construction.
func Serializable() Option {
	return func(c *Class) { c.Serializable = true }
}

// Named registers the class under name instead of its derived name.
func Named(name string) Option {
	return func(c *Class) { c.Name = name }
}

// Constructor sets the function run when the class is constructed normally.
func Constructor[T any](fn func(*T)) Option {
	return func(c *Class) {
		c.ctor = func(ptr reflect.Value) { fn(ptr.Interface().(*T)) }
	}
}

// ClassPath maps fully-qualified names to classes. It is safe for concurrent use.
type ClassPath struct {
	mu     sync.RWMutex
	byName map[string]*Class
	byType map[reflect.Type]*Class
	order  []string
}

// New returns an empty class path.
func New() *ClassPath {
	return &ClassPath{
		byName: make(map[string]*Class),
		byType: make(map[reflect.Type]*Class),
	}
}

// Define adds T to cp and returns its class. Defining a name twice replaces
// the earlier class. A type has one class: defining it again under another
// name (see Named) retires the earlier name, which then no longer resolves.
func Define[T any](cp *ClassPath, opts ...Option) *Class {
	t := reflect.TypeFor[T]()
	c := &Class{Name: NameOf(t), Type: t}
	for _, opt := range opts {
		opt(c)
	}
	cp.add(c)
	return c
}

func (cp *ClassPath) add(c *Class) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	if prev, ok := cp.byType[c.Type]; ok && prev.Name != c.Name {
		delete(cp.byName, prev.Name)
		cp.order = slices.DeleteFunc(cp.order, func(n string) bool { return n == prev.Name })
	}
	if old, ok := cp.byName[c.Name]; ok {
		if cp.byType[old.Type] == old {
			delete(cp.byType, old.Type)
		}
	} else {
		cp.order = append(cp.order, c.Name)
	}
	cp.byName[c.Name] = c
	cp.byType[c.Type] = c
}

// NameOf returns the fully-qualified name of t: import path, a dot, and the
// type name. Unnamed types use their type literal.
func NameOf(t reflect.Type) string {
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Resolve implements tck.TypeResolver.
func (cp *ClassPath) Resolve(name tck.ClassIdentifier) (reflect.Type, error) {
	cp.mu.RLock()
	defer cp.mu.RUnlock()
	c, ok := cp.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", tck.ErrClassNotFound, name)
	}
	return c.Type, nil
}

// Lookup returns the class defined for t.
func (cp *ClassPath) Lookup(t reflect.Type) (*Class, bool) {
	if cp == nil {
		return nil, false
	}
	cp.mu.RLock()
	defer cp.mu.RUnlock()
	c, ok := cp.byType[t]
	return c, ok
}

// Names returns every defined name in definition order.
func (cp *ClassPath) Names() []string {
	cp.mu.RLock()
	defer cp.mu.RUnlock()
	out := make([]string, len(cp.order))
	copy(out, cp.order)
	return out
}

// Ancestor is an embedded struct standing in for a superclass.
type Ancestor struct {
	Type  reflect.Type
	Index []int
}

// Ancestors returns the superclass chain of t, nearest first. The superclass
// of a struct is its first embedded non-pointer struct field.
func Ancestors(t reflect.Type) []Ancestor {
	var chain []Ancestor
	var index []int
	for cur := t; cur.Kind() == reflect.Struct; {
		next := -1
		for i := 0; i < cur.NumField(); i++ {
			f := cur.Field(i)
			if f.Anonymous && f.Type.Kind() == reflect.Struct {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}
		index = append(index, next)
		cur = cur.Field(next).Type
		chain = append(chain, Ancestor{Type: cur, Index: append([]int(nil), index...)})
	}
	return chain
}

// Writable returns a pointer equivalent to ptr with read-only flags cleared,
// so values reached through unexported fields can be handed to constructors.
func Writable(ptr reflect.Value) reflect.Value {
	return reflect.NewAt(ptr.Type().Elem(), ptr.UnsafePointer())
}

// FieldPointer returns a writable pointer to the field of *root at index.
func FieldPointer(root reflect.Value, index []int) reflect.Value {
	f := root.Elem().FieldByIndex(index)
	return reflect.NewAt(f.Type(), f.Addr().UnsafePointer())
}
