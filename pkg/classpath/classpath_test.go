package classpath

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/tck/pkg/tck"
)

type base struct{ ready bool }

type middle struct {
	base
	level int
}

type leaf struct {
	*base // pointer embeds are not ancestors
	middle
	name string
}

type generic[T any] struct{ v T }

func TestDefine_RegistersUnderDerivedName(t *testing.T) {
	cp := New()
	c := Define[leaf](cp)

	assert.Equal(t, "github.com/dkoosis/tck/pkg/classpath.leaf", c.Name)
	got, err := cp.Resolve(c.Name)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[leaf](), got)

	looked, ok := cp.Lookup(got)
	require.True(t, ok)
	assert.Same(t, c, looked)
}

func TestDefine_GenericAndNamedOverride(t *testing.T) {
	cp := New()
	Define[generic[int]](cp)
	Define[base](cp, Named("legacy.Base"))

	assert.Equal(t, []string{
		"github.com/dkoosis/tck/pkg/classpath.generic[int]",
		"legacy.Base",
	}, cp.Names())
}

func TestDefine_ReplacesEarlierDefinition(t *testing.T) {
	cp := New()
	Define[base](cp)
	c := Define[base](cp, Serializable())
	assert.Len(t, cp.Names(), 1)
	got, _ := cp.Lookup(reflect.TypeFor[base]())
	assert.Same(t, c, got)
	assert.True(t, got.Serializable)
}

func TestDefine_SecondNameRetiresFirst(t *testing.T) {
	cp := New()
	Define[middle](cp)
	first := Define[base](cp)
	renamed := Define[base](cp, Named("legacy.Base"))

	assert.Equal(t, []string{NameOf(reflect.TypeFor[middle]()), "legacy.Base"}, cp.Names())
	_, err := cp.Resolve(first.Name)
	assert.ErrorIs(t, err, tck.ErrClassNotFound)

	got, err := cp.Resolve("legacy.Base")
	require.NoError(t, err)
	looked, ok := cp.Lookup(got)
	require.True(t, ok)
	assert.Same(t, renamed, looked)
}

func TestDefine_NameMovedToAnotherType(t *testing.T) {
	cp := New()
	Define[base](cp, Named("shared"))
	Define[middle](cp, Named("shared"))

	got, err := cp.Resolve("shared")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[middle](), got)
	_, ok := cp.Lookup(reflect.TypeFor[base]())
	assert.False(t, ok)
	assert.Equal(t, []string{"shared"}, cp.Names())
}

func TestResolve_UnknownName(t *testing.T) {
	_, err := New().Resolve("nope.Nope")
	assert.ErrorIs(t, err, tck.ErrClassNotFound)
}

func TestAncestors_FollowsFirstEmbeddedStruct(t *testing.T) {
	chain := Ancestors(reflect.TypeFor[leaf]())
	require.Len(t, chain, 2)
	assert.Equal(t, reflect.TypeFor[middle](), chain[0].Type)
	assert.Equal(t, []int{1}, chain[0].Index)
	assert.Equal(t, reflect.TypeFor[base](), chain[1].Type)
	assert.Equal(t, []int{1, 0}, chain[1].Index)

	assert.Empty(t, Ancestors(reflect.TypeFor[int]()))
}

func TestConstruct_ReachesUnexportedEmbeddedField(t *testing.T) {
	cp := New()
	c := Define[base](cp, Constructor(func(b *base) { b.ready = true }))
	require.True(t, c.HasConstructor())

	v := reflect.New(reflect.TypeFor[leaf]())
	c.Construct(FieldPointer(v, []int{1, 0}))
	assert.True(t, v.Interface().(*leaf).middle.base.ready)
}

func TestConstruct_PanicsOnWrongPointerType(t *testing.T) {
	c := Define[base](New(), Constructor(func(*base) {}))
	assert.Panics(t, func() { c.Construct(reflect.ValueOf(&middle{})) })
}

func TestLookup_NilClassPath(t *testing.T) {
	var cp *ClassPath
	_, ok := cp.Lookup(reflect.TypeFor[base]())
	assert.False(t, ok)
}
