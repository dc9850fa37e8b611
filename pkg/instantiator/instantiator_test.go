package instantiator_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/tck/pkg/candidates"
	"github.com/dkoosis/tck/pkg/classpath"
	"github.com/dkoosis/tck/pkg/instantiator"
)

func TestStd_AllocatesWithoutConstructor(t *testing.T) {
	obj, err := instantiator.Std{}.NewInstance(reflect.TypeFor[candidates.PrivateConstructor]())
	require.NoError(t, err)
	p, ok := obj.(*candidates.PrivateConstructor)
	require.True(t, ok)
	assert.False(t, p.Constructed())
}

func TestStd_RejectsInterfaces(t *testing.T) {
	_, err := instantiator.Std{}.NewInstance(reflect.TypeFor[candidates.Shape]())
	assert.ErrorIs(t, err, instantiator.ErrAbstract)
	_, err = instantiator.Std{}.NewInstance(nil)
	assert.ErrorIs(t, err, instantiator.ErrAbstract)
}

func TestSerializer_RunsSuperButNotOwnConstructor(t *testing.T) {
	cp := candidates.Default()
	obj, err := instantiator.Serializer{Classes: cp}.NewInstance(reflect.TypeFor[candidates.SerializableSubClass]())
	require.NoError(t, err)

	require.IsType(t, &candidates.SerializableSubClass{}, obj)
	sub := obj.(*candidates.SerializableSubClass)
	assert.True(t, sub.SuperConstructorCalled())
	assert.False(t, sub.ConstructorCalled())
}

func TestSerializer_SkipsPanickingOwnConstructor(t *testing.T) {
	cp := candidates.Default()
	s := instantiator.Serializer{Classes: cp}
	assert.NotPanics(t, func() {
		_, err := s.NewInstance(reflect.TypeFor[candidates.SerializableConstructorThrowing]())
		assert.NoError(t, err)
	})
}

func TestSerializer_RequiresSerializableClass(t *testing.T) {
	s := instantiator.Serializer{Classes: candidates.Default()}
	_, err := s.NewInstance(reflect.TypeFor[candidates.EmptyClass]())
	assert.ErrorIs(t, err, instantiator.ErrNotSerializable)

	_, err = s.NewInstance(reflect.TypeFor[struct{}]())
	assert.ErrorIs(t, err, instantiator.ErrUnknownClass)
}

func TestConstructor_RunsEveryConstructor(t *testing.T) {
	c := instantiator.Constructor{Classes: candidates.Default()}

	obj, err := c.NewInstance(reflect.TypeFor[candidates.SerializableSubClass]())
	require.NoError(t, err)
	sub := obj.(*candidates.SerializableSubClass)
	assert.True(t, sub.SuperConstructorCalled())
	assert.True(t, sub.ConstructorCalled())

	obj, err = c.NewInstance(reflect.TypeFor[candidates.ExtendsAbstractClass]())
	require.NoError(t, err)
	ext := obj.(*candidates.ExtendsAbstractClass)
	assert.True(t, ext.BaseReady())
	assert.Equal(t, 4, ext.Sides)
}

func TestConstructor_PropagatesConstructorPanic(t *testing.T) {
	c := instantiator.Constructor{Classes: candidates.Default()}
	assert.PanicsWithValue(t, candidates.ErrConstructorCalled, func() {
		_, _ = c.NewInstance(reflect.TypeFor[candidates.ExtendsConstructorThrowing]())
	})
}

func TestConstructor_ZeroAllocatesUndefinedTypes(t *testing.T) {
	c := instantiator.Constructor{Classes: classpath.New()}
	obj, err := c.NewInstance(reflect.TypeFor[candidates.NoConstructor]())
	require.NoError(t, err)
	assert.Equal(t, &candidates.NoConstructor{}, obj)
}
